package shared

// Portal permissions. Names must match the permission records issued by the
// identity backend exactly.
const (
	PermBillingView   = "billing.view"
	PermBillingManage = "billing.manage"

	PermUsersView = "users.view"
	PermUsersEdit = "users.edit"

	PermRolesView = "roles.view"
)

// PortalScopes lists all permissions checked by the portal.
func PortalScopes() []string {
	return []string{
		PermBillingView,
		PermBillingManage,
		PermUsersView,
		PermUsersEdit,
		PermRolesView,
	}
}
