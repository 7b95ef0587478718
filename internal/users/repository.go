package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
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

const listUsers = `
SELECT u.id, u.email, COALESCE(r.name, ''), u.is_active, u.is_super_admin, u.created_at
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
ORDER BY u.email`

// ListUsers returns all users with their role name.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx, listUsers)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[User])
}
