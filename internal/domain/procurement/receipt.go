package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceiptType selects which side of an inspection report a receipt
// documents: the accepted goods or the rejected (returned) goods.
type ReceiptType string

const (
	ReceiptTypeAccepted ReceiptType = "accepted"
	ReceiptTypeRejected ReceiptType = "rejected"
)

// IsValid checks if the type is a valid ReceiptType
func (t ReceiptType) IsValid() bool {
	switch t {
	case ReceiptTypeAccepted, ReceiptTypeRejected:
		return true
	}
	return false
}

// String returns the string representation of ReceiptType
func (t ReceiptType) String() string {
	return string(t)
}

// Receipt represents a goods receipt aggregate root. It is derived
// entirely from an inspection report: quantity and amount are the
// report totals of its side, and at most one receipt of each type
// exists per order.
type Receipt struct {
	shared.BaseAggregateRoot
	ReceiptNumber string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type          ReceiptType     `gorm:"type:varchar(20);not null"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderNumber   string          `gorm:"type:varchar(50);not null"`
	ReportID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ReportNumber  string          `gorm:"type:varchar(50);not null"`
	SupplierID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierName  string          `gorm:"type:varchar(200);not null"`
	TotalQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	GeneratedBy   string          `gorm:"type:varchar(100);not null;default:''"`
	GeneratedDate time.Time       `gorm:"not null"`
	Remarks       string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// NewReceipt issues a receipt for one side of an inspection report.
// A side with zero quantity has nothing to document and is refused;
// the amount may legitimately be zero when every line has a zero rate.
func NewReceipt(receiptNumber string, receiptType ReceiptType, report *InspectionReport, generatedBy, remarks string) (*Receipt, error) {
	if receiptNumber == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if !receiptType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECEIPT_TYPE", "Receipt type must be accepted or rejected")
	}
	if report == nil {
		return nil, shared.NewDomainError("INVALID_REPORT", "Inspection report cannot be nil")
	}

	quantity := report.TotalAcceptedQty()
	amount := report.AcceptedTotal
	if receiptType == ReceiptTypeRejected {
		quantity = report.TotalRejectedQty()
		amount = report.RejectedTotal
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("EMPTY_RECEIPT", "Receipt quantity must be positive")
	}

	receipt := &Receipt{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		Type:              receiptType,
		OrderID:           report.OrderID,
		OrderNumber:       report.OrderNumber,
		ReportID:          report.ID,
		ReportNumber:      report.ReportNumber,
		SupplierID:        report.SupplierID,
		SupplierName:      report.SupplierName,
		TotalQuantity:     quantity,
		Amount:            amount,
		GeneratedBy:       generatedBy,
		GeneratedDate:     time.Now(),
		Remarks:           remarks,
	}

	receipt.AddDomainEvent(NewReceiptCreatedEvent(receipt))

	return receipt, nil
}

// IsPositive is a convenience guard used by document rendering
func (r *Receipt) IsPositive() bool {
	return r.Amount.IsPositive()
}
