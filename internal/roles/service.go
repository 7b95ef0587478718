package roles

import (
	"context"

	"github.com/odyssey-erp/odyssey-portal/internal/shared"
)

// RepositoryPort defines data access methods for roles.
type RepositoryPort interface {
	ListRoles(ctx context.Context) ([]Role, error)
}

// Service handles role listing.
type Service struct {
	repo  RepositoryPort
	known map[string]struct{}
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	known := make(map[string]struct{})
	for _, name := range shared.PortalScopes() {
		known[name] = struct{}{}
	}
	return &Service{repo: repo, known: known}
}

// ListRoles returns all roles and flags permissions the portal never checks.
func (s *Service) ListRoles(ctx context.Context) ([]Role, error) {
	roles, err := s.repo.ListRoles(ctx)
	if err != nil {
		return nil, err
	}
	for i := range roles {
		roles[i].Unchecked = nil
		for _, name := range roles[i].Permissions {
			if _, ok := s.known[name]; !ok {
				roles[i].Unchecked = append(roles[i].Unchecked, name)
			}
		}
	}
	return roles, nil
}
