package identity

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/singleflight"

	"github.com/odyssey-erp/odyssey-portal/internal/access"
)

const loadTimeout = 5 * time.Second

// Service resolves access identities for session users.
type Service struct {
	repo     Repository
	validate *validator.Validate
	group    singleflight.Group
}

// NewService constructs a Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

// Resolve loads a fresh identity snapshot for userID. Concurrent calls for
// the same user share one load; results are never kept between calls.
func (s *Service) Resolve(ctx context.Context, userID int64) (*access.Identity, error) {
	ch := s.group.DoChan(strconv.FormatInt(userID, 10), func() (interface{}, error) {
		// The load outlives any single waiter; one caller giving up must
		// not fail the others.
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		return s.load(loadCtx, userID)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		// Shared results are copied so callers never alias each other.
		return cloneIdentity(res.Val.(*access.Identity)), nil
	}
}

func (s *Service) load(ctx context.Context, userID int64) (*access.Identity, error) {
	rec, err := s.repo.LoadIdentity(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !rec.IsActive {
		return nil, ErrInactive
	}
	if err := s.validate.StructPartial(rec, "UserID"); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	rec.Role = s.sanitizeRole(rec.Role)
	return toIdentity(rec), nil
}

// sanitizeRole defaults a faulty role to no role and drops permission
// entries that are blank or fail validation. The result never shares
// memory with role; repositories may hand out shared slices.
func (s *Service) sanitizeRole(role *RoleRecord) *RoleRecord {
	if role == nil {
		return nil
	}
	if err := s.validate.StructPartial(*role, "ID", "Name"); err != nil {
		return nil
	}
	out := *role
	out.Permissions = make([]PermissionRecord, 0, len(role.Permissions))
	for _, p := range role.Permissions {
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		if err := s.validate.Struct(p); err != nil {
			continue
		}
		out.Permissions = append(out.Permissions, p)
	}
	return &out
}

func toIdentity(rec Record) *access.Identity {
	id := &access.Identity{
		UserID:       rec.UserID,
		Email:        rec.Email,
		IsSuperAdmin: rec.IsSuperAdmin,
	}
	if rec.Role == nil {
		return id
	}
	role := &access.Role{ID: rec.Role.ID, Name: rec.Role.Name}
	if len(rec.Role.Permissions) > 0 {
		role.Permissions = make([]access.Permission, 0, len(rec.Role.Permissions))
		for _, p := range rec.Role.Permissions {
			role.Permissions = append(role.Permissions, access.Permission{ID: p.ID, Name: p.Name})
		}
	}
	id.Role = role
	return id
}

func cloneIdentity(src *access.Identity) *access.Identity {
	if src == nil {
		return nil
	}
	dst := *src
	if src.Role != nil {
		role := *src.Role
		role.Permissions = append([]access.Permission(nil), src.Role.Permissions...)
		dst.Role = &role
	}
	return &dst
}
