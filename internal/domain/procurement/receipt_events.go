package procurement

import (
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Event types for the receipt aggregate
const (
	EventTypeReceiptCreated = "procurement.receipt.created"
)

// ReceiptCreatedEvent is published when a receipt is issued
type ReceiptCreatedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber string          `json:"receipt_number"`
	Type          ReceiptType     `json:"type"`
	OrderNumber   string          `json:"order_number"`
	Amount        decimal.Decimal `json:"amount"`
}

// NewReceiptCreatedEvent creates a new ReceiptCreatedEvent
func NewReceiptCreatedEvent(receipt *Receipt) *ReceiptCreatedEvent {
	return &ReceiptCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReceiptCreated, "Receipt", receipt.ID),
		ReceiptNumber:   receipt.ReceiptNumber,
		Type:            receipt.Type,
		OrderNumber:     receipt.OrderNumber,
		Amount:          receipt.Amount,
	}
}
