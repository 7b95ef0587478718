package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/odyssey-erp/odyssey-portal/internal/platform/db"
	"github.com/odyssey-erp/odyssey-portal/internal/shared"
)

// Repository loads identity records.
type Repository interface {
	LoadIdentity(ctx context.Context, userID int64) (Record, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db db.TxBeginner
}

// NewRepository constructs a PostgreSQL repository. pool is usually a *pgxpool.Pool.
func NewRepository(pool db.TxBeginner) *PGRepository {
	return &PGRepository{db: pool}
}

const selectUser = `
SELECT u.id, u.email, u.is_active, u.is_super_admin, r.id, r.name
FROM users u
LEFT JOIN roles r ON r.id = u.role_id
WHERE u.id = $1`

const selectRolePermissions = `
SELECT p.id, p.name
FROM role_permissions rp
JOIN permissions p ON p.id = rp.permission_id
WHERE rp.role_id = $1
ORDER BY p.name`

// LoadIdentity reads the user, role and role permissions from one snapshot.
func (r *PGRepository) LoadIdentity(ctx context.Context, userID int64) (Record, error) {
	var rec Record
	err := db.WithReadTx(ctx, r.db, func(tx pgx.Tx) error {
		var (
			roleID   pgtype.Int8
			roleName pgtype.Text
		)
		err := tx.QueryRow(ctx, selectUser, userID).Scan(
			&rec.UserID, &rec.Email, &rec.IsActive, &rec.IsSuperAdmin, &roleID, &roleName,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return shared.ErrNotFound
			}
			return fmt.Errorf("identity: select user: %w", err)
		}
		if !roleID.Valid {
			return nil
		}
		rec.Role = &RoleRecord{ID: roleID.Int64, Name: roleName.String}

		rows, err := tx.Query(ctx, selectRolePermissions, roleID.Int64)
		if err != nil {
			return fmt.Errorf("identity: select permissions: %w", err)
		}
		perms, err := pgx.CollectRows(rows, pgx.RowToStructByPos[PermissionRecord])
		if err != nil {
			return fmt.Errorf("identity: scan permissions: %w", err)
		}
		rec.Role.Permissions = perms
		return nil
	})
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

var _ Repository = (*PGRepository)(nil)
