package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InspectionResult classifies a report by whether anything was rejected
type InspectionResult string

const (
	InspectionResultAccepted InspectionResult = "accepted"
	InspectionResultRejected InspectionResult = "rejected"
)

// IsValid checks if the result is a valid InspectionResult
func (r InspectionResult) IsValid() bool {
	switch r {
	case InspectionResultAccepted, InspectionResultRejected:
		return true
	}
	return false
}

// String returns the string representation of InspectionResult
func (r InspectionResult) String() string {
	return string(r)
}

// InspectionItemInput is the inspector's entry for one order line.
// Exactly one of AcceptedQty/RejectedQty must be provided; the other
// side is derived as the complement of the ordered quantity.
type InspectionItemInput struct {
	OrderItemID     uuid.UUID
	AcceptedQty     *decimal.Decimal
	RejectedQty     *decimal.Decimal
	RejectionReason string
}

// InspectionReportItem records the accepted/rejected split for one
// order line. Quantities always satisfy accepted + rejected == ordered.
type InspectionReportItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReportID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	SerialNo        int             `gorm:"not null"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	OrderedQty      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AcceptedQty     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	RejectedQty     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate            decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Copied from the order line
	AcceptedValue   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RejectedValue   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RejectionReason string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InspectionReportItem) TableName() string {
	return "inspection_report_items"
}

// InspectionReport represents a quality control report aggregate root.
// An order carries at most one report; submitting it fixes the order's
// terminal status.
type InspectionReport struct {
	shared.BaseAggregateRoot
	ReportNumber  string                 `gorm:"type:varchar(50);not null;uniqueIndex"`
	OrderID       uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber   string                 `gorm:"type:varchar(50);not null"`
	SupplierID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	SupplierName  string                 `gorm:"type:varchar(200);not null"`
	Result        InspectionResult       `gorm:"type:varchar(20);not null"` // Derived, rejected iff any rejected quantity
	Items         []InspectionReportItem `gorm:"foreignKey:ReportID;references:ID"`
	AcceptedTotal decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	RejectedTotal decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Remarks       string                 `gorm:"type:text"`
	InspectedBy   string                 `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (InspectionReport) TableName() string {
	return "inspection_reports"
}

// NewInspectionReport builds a report against a pending order. Every
// order line must have an input row; each input provides exactly one of
// the accepted or rejected quantity and the report derives the other.
// A rejection reason is mandatory wherever the rejected quantity is
// positive. Item values are priced at the order line rate.
func NewInspectionReport(reportNumber string, order *PurchaseOrder, inputs []InspectionItemInput, inspectedBy, remarks string) (*InspectionReport, error) {
	if reportNumber == "" {
		return nil, shared.NewDomainError("INVALID_REPORT_NUMBER", "Report number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if !order.CanBeInspected() {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be inspected")
	}

	byOrderItem := make(map[uuid.UUID]InspectionItemInput, len(inputs))
	for _, input := range inputs {
		if _, dup := byOrderItem[input.OrderItemID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_ITEM", "Order item appears more than once in the report")
		}
		byOrderItem[input.OrderItemID] = input
	}
	if len(byOrderItem) != len(order.Items) {
		return nil, shared.NewDomainError("INCOMPLETE_REPORT", "Every order item must be inspected")
	}

	report := &InspectionReport{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReportNumber:      reportNumber,
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		SupplierID:        order.SupplierID,
		SupplierName:      order.SupplierName,
		Items:             make([]InspectionReportItem, 0, len(order.Items)),
		AcceptedTotal:     decimal.Zero,
		RejectedTotal:     decimal.Zero,
		Remarks:           remarks,
		InspectedBy:       inspectedBy,
	}

	for _, orderItem := range order.Items {
		input, ok := byOrderItem[orderItem.ID]
		if !ok {
			return nil, shared.NewDomainError("INCOMPLETE_REPORT", "Every order item must be inspected")
		}

		item, err := newInspectionReportItem(report.ID, orderItem, input)
		if err != nil {
			return nil, err
		}

		report.Items = append(report.Items, *item)
		report.AcceptedTotal = report.AcceptedTotal.Add(item.AcceptedValue)
		report.RejectedTotal = report.RejectedTotal.Add(item.RejectedValue)
	}

	report.Result = InspectionResultAccepted
	if report.TotalRejectedQty().IsPositive() {
		report.Result = InspectionResultRejected
	}

	report.AddDomainEvent(NewInspectionReportCreatedEvent(report))

	return report, nil
}

func newInspectionReportItem(reportID uuid.UUID, orderItem PurchaseOrderItem, input InspectionItemInput) (*InspectionReportItem, error) {
	accepted, rejected, err := splitQuantities(orderItem.Quantity, input.AcceptedQty, input.RejectedQty)
	if err != nil {
		return nil, err
	}

	if rejected.IsPositive() && input.RejectionReason == "" {
		return nil, shared.NewDomainError("REASON_REQUIRED", "Rejection reason is required when quantity is rejected")
	}

	now := time.Now()
	return &InspectionReportItem{
		ID:              uuid.New(),
		ReportID:        reportID,
		OrderItemID:     orderItem.ID,
		SerialNo:        orderItem.SerialNo,
		ProductID:       orderItem.ProductID,
		ProductName:     orderItem.ProductName,
		OrderedQty:      orderItem.Quantity,
		AcceptedQty:     accepted,
		RejectedQty:     rejected,
		Rate:            orderItem.Rate,
		AcceptedValue:   accepted.Mul(orderItem.Rate).Round(2),
		RejectedValue:   rejected.Mul(orderItem.Rate).Round(2),
		RejectionReason: input.RejectionReason,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// splitQuantities resolves one provided side against the ordered
// quantity and derives the other as its complement. Providing both
// sides, neither, or a quantity outside [0, ordered] is an error.
func splitQuantities(ordered decimal.Decimal, acceptedIn, rejectedIn *decimal.Decimal) (accepted, rejected decimal.Decimal, err error) {
	switch {
	case acceptedIn != nil && rejectedIn != nil:
		return decimal.Zero, decimal.Zero, shared.NewDomainError("AMBIGUOUS_QUANTITY", "Provide either accepted or rejected quantity, not both")
	case acceptedIn != nil:
		accepted = *acceptedIn
		if accepted.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Accepted quantity cannot be negative")
		}
		if accepted.GreaterThan(ordered) {
			return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Accepted quantity cannot exceed ordered quantity")
		}
		rejected = ordered.Sub(accepted)
	case rejectedIn != nil:
		rejected = *rejectedIn
		if rejected.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Rejected quantity cannot be negative")
		}
		if rejected.GreaterThan(ordered) {
			return decimal.Zero, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Rejected quantity cannot exceed ordered quantity")
		}
		accepted = ordered.Sub(rejected)
	default:
		return decimal.Zero, decimal.Zero, shared.NewDomainError("MISSING_QUANTITY", "Either accepted or rejected quantity must be provided")
	}
	return accepted, rejected, nil
}

// TotalRejectedQty returns the summed rejected quantity across items
func (r *InspectionReport) TotalRejectedQty() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.RejectedQty)
	}
	return total
}

// TotalAcceptedQty returns the summed accepted quantity across items
func (r *InspectionReport) TotalAcceptedQty() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.Items {
		total = total.Add(item.AcceptedQty)
	}
	return total
}

// HasRejections returns true if any item carries a rejected quantity
func (r *InspectionReport) HasRejections() bool {
	return r.Result == InspectionResultRejected
}
