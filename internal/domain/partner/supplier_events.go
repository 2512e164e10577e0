package partner

import (
	"github.com/pharmaflow/backend/internal/domain/shared"
)

// Event types for the supplier aggregate
const (
	EventTypeSupplierCreated = "partner.supplier.created"
	EventTypeSupplierUpdated = "partner.supplier.updated"
	EventTypeSupplierDeleted = "partner.supplier.deleted"
)

// SupplierCreatedEvent is published when a supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	Name string       `json:"name"`
	Type SupplierType `json:"type"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(s *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, "Supplier", s.ID),
		Name:            s.Name,
		Type:            s.Type,
	}
}

// SupplierUpdatedEvent is published when a supplier is updated
type SupplierUpdatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewSupplierUpdatedEvent creates a new SupplierUpdatedEvent
func NewSupplierUpdatedEvent(s *Supplier) *SupplierUpdatedEvent {
	return &SupplierUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierUpdated, "Supplier", s.ID),
		Name:            s.Name,
	}
}
