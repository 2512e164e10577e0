package catalog

import (
	"strings"
	"time"

	"github.com/pharmaflow/backend/internal/domain/shared"
)

// Product represents a product in the catalog context
// It is independent of any supplier; the same product may appear on
// orders from different suppliers and channels.
type Product struct {
	shared.BaseAggregateRoot
	Name         string `gorm:"type:varchar(200);not null;index"`
	Description  string `gorm:"type:text"`
	Manufacturer string `gorm:"type:varchar(200)"`
	HSCode       string `gorm:"type:varchar(50)"` // Customs code, relevant to import orders
	Unit         string `gorm:"type:varchar(20)"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product with required fields
func NewProduct(name string) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, description string) error {
	if err := validateProductName(name); err != nil {
		return err
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetManufacturer sets the product's manufacturer
func (p *Product) SetManufacturer(manufacturer string) error {
	if manufacturer != "" && len(manufacturer) > 200 {
		return shared.NewDomainError("INVALID_MANUFACTURER", "Manufacturer cannot exceed 200 characters")
	}

	p.Manufacturer = manufacturer
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetHSCode sets the product's customs HS code
func (p *Product) SetHSCode(hsCode string) error {
	if hsCode != "" && len(hsCode) > 50 {
		return shared.NewDomainError("INVALID_HS_CODE", "HS code cannot exceed 50 characters")
	}

	p.HSCode = hsCode
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetUnit sets the product's unit of measure
func (p *Product) SetUnit(unit string) error {
	if unit != "" && len(unit) > 20 {
		return shared.NewDomainError("INVALID_UNIT", "Unit cannot exceed 20 characters")
	}

	p.Unit = unit
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
