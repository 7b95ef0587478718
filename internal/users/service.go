package users

import (
	"context"
	"sort"
	"strings"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
}

// Directory is the user list with headline counts.
type Directory struct {
	Users       []User
	Active      int
	SuperAdmins int
}

// Service assembles the user directory.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Directory lists active users first, then by email.
func (s *Service) Directory(ctx context.Context) (Directory, error) {
	loaded, err := s.repo.ListUsers(ctx)
	if err != nil {
		return Directory{}, err
	}
	list := append([]User(nil), loaded...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsActive != list[j].IsActive {
			return list[i].IsActive
		}
		return strings.ToLower(list[i].Email) < strings.ToLower(list[j].Email)
	})
	dir := Directory{Users: list}
	for _, u := range list {
		if u.IsActive {
			dir.Active++
		}
		if u.IsSuperAdmin {
			dir.SuperAdmins++
		}
	}
	return dir, nil
}
