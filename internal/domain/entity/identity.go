// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Identity is a credentialed account in the system. Vendors and suppliers are
// structurally near-identical; the Role decides which collection holds the
// record and which profile payload is populated. The role is fixed at
// creation and never migrates.
type Identity struct {
	ID           uuid.UUID        // Unique identifier assigned by the store at creation.
	Role         Role             // Which collection this record belongs to (vendor or supplier).
	Name         string           // Display name, 2-50 characters, trimmed.
	Email        string           // Login identifier, lowercased and trimmed. Unique within the role's own collection only.
	Phone        string           // Contact phone number.
	PasswordHash string           // bcrypt hash of the password. Never serialized to external representations.
	IsActive     bool             // Gates authentication; deactivated accounts cannot sign in.
	IsVerified   bool             // Set by back-office verification, informational for the auth flow.
	Vendor       *VendorProfile   // Populated only when Role is RoleVendor.
	Supplier     *SupplierProfile // Populated only when Role is RoleSupplier.
	CreatedAt    time.Time        // Timestamp of when this account was created.
	UpdatedAt    time.Time        // Refreshed on every mutating save.
}

// VendorProfile holds the vendor-specific profile attributes.
type VendorProfile struct {
	BusinessName string // The vendor's registered business name.
	BusinessType string // Free-form business category.
	GSTNumber    string // Indian GST identification number, validated when present.
}

// SupplierProfile holds the supplier-specific profile attributes.
type SupplierProfile struct {
	CompanyName    string       // The supplier's company name.
	SupplierType   SupplierType // What kind of goods or services the supplier provides.
	LicenseNumber  string       // Trade license number.
	Certifications []string     // Certification names held by the supplier.
}
