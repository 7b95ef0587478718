package users

import "time"

// User is a directory entry shown to operators.
type User struct {
	ID           int64
	Email        string
	RoleName     string
	IsActive     bool
	IsSuperAdmin bool
	CreatedAt    time.Time
}
