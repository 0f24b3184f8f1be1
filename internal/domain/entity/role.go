// Package entity contains the core business objects of the project.
package entity

// Role represents which of the two identity collections a record belongs to.
type Role string

const (
	// RoleVendor indicates a vendor account.
	RoleVendor Role = "vendor"
	// RoleSupplier indicates a supplier account.
	RoleSupplier Role = "supplier"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleVendor, RoleSupplier:
		return true
	default:
		return false
	}
}
