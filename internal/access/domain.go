package access

// Permission represents an atomic capability granted through a role.
type Permission struct {
	ID   int64
	Name string
}

// Role groups permissions. It is owned by the identity collaborator.
type Role struct {
	ID          int64
	Name        string
	Permissions []Permission
}

// Identity is the snapshot of the authenticated actor for one evaluation.
type Identity struct {
	UserID       int64
	Email        string
	IsSuperAdmin bool
	Role         *Role
}

// PermissionNames flattens the role permissions into a set.
// A nil identity, nil role or nil permission list yields an empty set.
func (id *Identity) PermissionNames() map[string]struct{} {
	if id == nil || id.Role == nil {
		return map[string]struct{}{}
	}
	set := make(map[string]struct{}, len(id.Role.Permissions))
	for _, p := range id.Role.Permissions {
		set[p.Name] = struct{}{}
	}
	return set
}

// RoleName returns the assigned role name or an empty string.
func (id *Identity) RoleName() string {
	if id == nil || id.Role == nil {
		return ""
	}
	return id.Role.Name
}
