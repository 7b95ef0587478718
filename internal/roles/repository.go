package roles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	db querier
}

// NewRepository constructs a repository. db is usually a *pgxpool.Pool.
func NewRepository(db querier) *Repository {
	return &Repository{db: db}
}

const listRoles = `
SELECT r.id, r.name, p.name
FROM roles r
LEFT JOIN role_permissions rp ON rp.role_id = r.id
LEFT JOIN permissions p ON p.id = rp.permission_id
ORDER BY r.name, p.name`

// ListRoles returns all roles with their permission names.
func (r *Repository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.db.Query(ctx, listRoles)
	if err != nil {
		return nil, fmt.Errorf("roles: list: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var (
			id       int64
			name     string
			permName pgtype.Text
		)
		if err := rows.Scan(&id, &name, &permName); err != nil {
			return nil, err
		}
		if len(roles) == 0 || roles[len(roles)-1].ID != id {
			roles = append(roles, Role{ID: id, Name: name})
		}
		if permName.Valid {
			last := &roles[len(roles)-1]
			last.Permissions = append(last.Permissions, permName.String)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return roles, nil
}
