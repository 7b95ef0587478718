package identity

import "errors"

var (
	// ErrInactive indicates the user exists but may not act.
	ErrInactive = errors.New("identity: user inactive")
	// ErrInvalidRecord indicates the stored user reference failed boundary
	// validation. Faulty roles and permissions are defaulted instead.
	ErrInvalidRecord = errors.New("identity: invalid record")
)

// Record is the identity as stored by the sign-in backend.
type Record struct {
	UserID       int64 `validate:"gt=0"`
	Email        string
	IsActive     bool
	IsSuperAdmin bool
	Role         *RoleRecord
}

// RoleRecord is the role assigned to a user. Permissions are validated one
// by one so a bad entry never discards its siblings.
type RoleRecord struct {
	ID          int64  `validate:"gt=0"`
	Name        string `validate:"required,max=128"`
	Permissions []PermissionRecord
}

// PermissionRecord is a permission attached to a role.
type PermissionRecord struct {
	ID   int64  `validate:"gte=0"`
	Name string `validate:"required,max=128"`
}
