package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorModel mirrors the 'vendors' table. PostgreSQL generates UUIDs via
// uuid_generate_v7(). Email carries the table-scoped unique index that is the
// real guarantor of duplicate detection; the application-level pre-check is
// only a fast path.
type VendorModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	Phone        string    `gorm:"type:varchar(20);not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	BusinessName string    `gorm:"type:varchar(100)"`
	BusinessType string    `gorm:"type:varchar(50)"`
	GSTNumber    string    `gorm:"type:varchar(15)"`
	IsActive     bool      `gorm:"not null;default:true"`
	IsVerified   bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}

// SupplierModel mirrors the 'suppliers' table. It is deliberately independent
// of the vendors table: the same email may exist in both, and uniqueness is
// enforced per table only.
type SupplierModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name           string    `gorm:"type:varchar(100);not null"`
	Email          string    `gorm:"type:varchar(255);unique;not null"`
	Phone          string    `gorm:"type:varchar(20);not null"`
	PasswordHash   string    `gorm:"type:varchar(255);not null"`
	CompanyName    string    `gorm:"type:varchar(100)"`
	SupplierType   string    `gorm:"type:varchar(20);not null;default:'other'"`
	LicenseNumber  string    `gorm:"type:varchar(50)"`
	Certifications []string  `gorm:"type:jsonb;serializer:json"`
	IsActive       bool      `gorm:"not null;default:true"`
	IsVerified     bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (SupplierModel) TableName() string {
	return "suppliers"
}
