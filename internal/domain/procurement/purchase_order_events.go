package procurement

import (
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the purchase order aggregate
const (
	EventTypePurchaseOrderCreated   = "procurement.purchase_order.created"
	EventTypePurchaseOrderInspected = "procurement.purchase_order.inspected"
)

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	Channel     Channel         `json:"channel"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(order *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		Channel:         order.Channel,
		TotalAmount:     order.TotalAmount,
	}
}

// PurchaseOrderInspectedEvent is published when an order reaches its
// terminal status through an inspection report
type PurchaseOrderInspectedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string              `json:"order_number"`
	Status      PurchaseOrderStatus `json:"status"`
	RejectedQty decimal.Decimal     `json:"rejected_qty"`
}

// NewPurchaseOrderInspectedEvent creates a new PurchaseOrderInspectedEvent
func NewPurchaseOrderInspectedEvent(order *PurchaseOrder, rejectedQty decimal.Decimal) *PurchaseOrderInspectedEvent {
	return &PurchaseOrderInspectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderInspected, "PurchaseOrder", order.ID),
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		RejectedQty:     rejectedQty,
	}
}
