package roles

// Role is a role together with the permission names it grants.
type Role struct {
	ID          int64
	Name        string
	Permissions []string
	// Unchecked holds granted names no portal route or template asks for.
	// Matching is exact, so "Billing.View" lands here rather than granting
	// billing.view.
	Unchecked []string
}
