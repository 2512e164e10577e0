package partner

import (
	"strings"
	"time"

	"github.com/pharmaflow/backend/internal/domain/shared"
)

// SupplierType represents the procurement channel a supplier belongs to
type SupplierType string

const (
	SupplierTypeLocal  SupplierType = "local"  // Domestic supplier, tax-bearing orders
	SupplierTypeImport SupplierType = "import" // International supplier, customs/dispatch orders
)

// IsValid checks if the type is a valid SupplierType
func (t SupplierType) IsValid() bool {
	switch t {
	case SupplierTypeLocal, SupplierTypeImport:
		return true
	}
	return false
}

// String returns the string representation of SupplierType
func (t SupplierType) String() string {
	return string(t)
}

// Supplier represents a supplier in the partner context
// It is the aggregate root for supplier-related operations.
// The supplier type is fixed at creation: purchase orders are keyed by it,
// so changing the type later would orphan existing orders.
type Supplier struct {
	shared.BaseAggregateRoot
	Name          string       `gorm:"type:varchar(200);not null;index"`
	Type          SupplierType `gorm:"type:varchar(20);not null;index"`
	ContactPerson string       `gorm:"type:varchar(100)"`
	Phone         string       `gorm:"type:varchar(50)"`
	Email         string       `gorm:"type:varchar(200)"`
	Address       string       `gorm:"type:text"`
	Country       string       `gorm:"type:varchar(100)"`
	Remarks       string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier with required fields
func NewSupplier(name string, supplierType SupplierType) (*Supplier, error) {
	if err := validateSupplierName(name); err != nil {
		return nil, err
	}
	if !supplierType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Supplier type must be local or import")
	}

	supplier := &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		Type:              supplierType,
	}

	supplier.AddDomainEvent(NewSupplierCreatedEvent(supplier))

	return supplier, nil
}

// Update updates the supplier's name
func (s *Supplier) Update(name string) error {
	if err := validateSupplierName(name); err != nil {
		return err
	}

	s.Name = strings.TrimSpace(name)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSupplierUpdatedEvent(s))

	return nil
}

// SetContact sets the supplier's contact information
func (s *Supplier) SetContact(contactPerson, phone, email string) error {
	if contactPerson != "" && len(contactPerson) > 100 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person cannot exceed 100 characters")
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	if email != "" {
		if len(email) > 200 || !strings.Contains(email, "@") {
			return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
		}
	}

	s.ContactPerson = contactPerson
	s.Phone = phone
	s.Email = email
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetAddress sets the supplier's address information
func (s *Supplier) SetAddress(address, country string) error {
	if address != "" && len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}
	if country != "" && len(country) > 100 {
		return shared.NewDomainError("INVALID_COUNTRY", "Country cannot exceed 100 characters")
	}

	s.Address = address
	s.Country = country
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// SetRemarks sets the supplier's remarks
func (s *Supplier) SetRemarks(remarks string) {
	s.Remarks = remarks
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// ChangeType is intentionally not supported. The type fixes which purchase
// order variant applies to this supplier's orders.
func (s *Supplier) ChangeType(SupplierType) error {
	return shared.NewDomainError("TYPE_IMMUTABLE", "Supplier type cannot be changed after creation")
}

// IsLocal returns true if the supplier is a local supplier
func (s *Supplier) IsLocal() bool {
	return s.Type == SupplierTypeLocal
}

// IsImport returns true if the supplier is an import supplier
func (s *Supplier) IsImport() bool {
	return s.Type == SupplierTypeImport
}

func validateSupplierName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Supplier name cannot exceed 200 characters")
	}
	return nil
}
