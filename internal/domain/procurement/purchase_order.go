package procurement

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Channel represents the procurement channel of an order.
// It is a denormalized copy of the supplier's type taken at creation time,
// fixing which term variant applies to the order.
type Channel string

const (
	ChannelLocal  Channel = "local"
	ChannelImport Channel = "import"
)

// IsValid checks if the channel is a valid Channel
func (c Channel) IsValid() bool {
	switch c {
	case ChannelLocal, ChannelImport:
		return true
	}
	return false
}

// String returns the string representation of Channel
func (c Channel) String() string {
	return string(c)
}

// PaymentType represents the payment arrangement on an import order
type PaymentType string

const (
	PaymentTypeDA       PaymentType = "DA"
	PaymentTypeFPayment PaymentType = "F_Payment"
)

// IsValid checks if the payment type is a valid PaymentType
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeDA, PaymentTypeFPayment:
		return true
	}
	return false
}

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusPending           PurchaseOrderStatus = "pending"
	PurchaseOrderStatusCompleted         PurchaseOrderStatus = "completed"
	PurchaseOrderStatusPartiallyRejected PurchaseOrderStatus = "partially_rejected"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusPending, PurchaseOrderStatusCompleted, PurchaseOrderStatusPartiallyRejected:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that allow no further mutation
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusCompleted || s == PurchaseOrderStatusPartiallyRejected
}

// CanTransitionTo checks if the status can transition to the target status.
// The only transition is pending to a terminal outcome; an order never
// returns to pending once inspected.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	if s != PurchaseOrderStatusPending {
		return false
	}
	return target == PurchaseOrderStatusCompleted || target == PurchaseOrderStatusPartiallyRejected
}

// LocalTerms holds the term fields specific to local (domestic) orders.
// Stored as a jsonb column; exactly one of LocalTerms/ImportTerms is set
// on an order, keyed by its channel.
type LocalTerms struct {
	PaymentTerms string          `json:"payment_terms"`
	Station      string          `json:"station"`
	TaxPercent   decimal.Decimal `json:"tax_percent"` // Percent applied on the subtotal, defaults to 0
}

// Validate checks the local terms for consistency
func (t LocalTerms) Validate() error {
	if t.TaxPercent.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax percent cannot be negative")
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (t LocalTerms) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *LocalTerms) Scan(value any) error {
	return scanJSON(value, t)
}

// ImportTerms holds the term fields specific to import orders
type ImportTerms struct {
	PaymentTerms   string      `json:"payment_terms"`
	Origin         string      `json:"origin"`
	PaymentType    PaymentType `json:"payment_type"`
	DispatchedFrom string      `json:"dispatched_from"`
	DispatchedIn   string      `json:"dispatched_in"`
	ValidityIndent string      `json:"validity_indent"`
}

// Validate checks the import terms for consistency
func (t ImportTerms) Validate() error {
	if !t.PaymentType.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_TYPE", "Payment type must be DA or F_Payment")
	}
	return nil
}

// Value implements driver.Valuer for database storage
func (t ImportTerms) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *ImportTerms) Scan(value any) error {
	return scanJSON(value, t)
}

func scanJSON(value, dest any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dest)
	}
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SerialNo    int             `gorm:"not null"` // Position within the order, unique per order
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Quantity * Rate
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// NewPurchaseOrderItem creates a new purchase order item
func NewPurchaseOrderItem(orderID uuid.UUID, serialNo int, productID uuid.UUID, productName string, quantity, rate decimal.Decimal) (*PurchaseOrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if rate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_RATE", "Rate cannot be negative")
	}

	now := time.Now()
	return &PurchaseOrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		SerialNo:    serialNo,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		Rate:        rate,
		Amount:      quantity.Mul(rate),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// ItemDraft is an authored line row before validation. Rows missing a
// product reference or a positive quantity are dropped rather than
// failing the whole order.
type ItemDraft struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
}

// IsComplete returns true if the draft row carries enough data to become an item
func (d ItemDraft) IsComplete() bool {
	return d.ProductID != uuid.Nil && d.Quantity.IsPositive()
}

// PurchaseOrder represents a purchase order aggregate root.
// It owns its line items and drives the pending -> completed /
// partially_rejected lifecycle; the transition fires atomically with
// the submission of an inspection report.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber  string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(200);not null"`
	Channel      Channel             `gorm:"type:varchar(20);not null;index"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(30);not null;default:'pending';index"`
	Local        *LocalTerms         `gorm:"type:jsonb"`
	Import       *ImportTerms        `gorm:"type:jsonb"`
	Items        []PurchaseOrderItem `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"` // Always derived, never authored
	Remarks      string              `gorm:"type:text"`
	InspectedAt  *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewLocalPurchaseOrder creates a new purchase order on the local channel
func NewLocalPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, terms LocalTerms, drafts []ItemDraft) (*PurchaseOrder, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	order, err := newPurchaseOrder(orderNumber, supplierID, supplierName, ChannelLocal)
	if err != nil {
		return nil, err
	}
	order.Local = &terms

	if err := order.attachItems(drafts); err != nil {
		return nil, err
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// NewImportPurchaseOrder creates a new purchase order on the import channel
func NewImportPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, terms ImportTerms, drafts []ItemDraft) (*PurchaseOrder, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}

	order, err := newPurchaseOrder(orderNumber, supplierID, supplierName, ChannelImport)
	if err != nil {
		return nil, err
	}
	order.Import = &terms

	if err := order.attachItems(drafts); err != nil {
		return nil, err
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

func newPurchaseOrder(orderNumber string, supplierID uuid.UUID, supplierName string, channel Channel) (*PurchaseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	return &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Channel:           channel,
		Status:            PurchaseOrderStatusPending,
		Items:             make([]PurchaseOrderItem, 0),
		TotalAmount:       decimal.Zero,
	}, nil
}

// attachItems converts the complete draft rows into items, assigning
// serial numbers in authoring order, and derives the order total
func (o *PurchaseOrder) attachItems(drafts []ItemDraft) error {
	serial := 0
	for _, draft := range drafts {
		if !draft.IsComplete() {
			continue
		}
		serial++
		item, err := NewPurchaseOrderItem(o.ID, serial, draft.ProductID, draft.ProductName, draft.Quantity, draft.Rate)
		if err != nil {
			return err
		}
		o.Items = append(o.Items, *item)
	}

	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_VALID_ITEMS", "At least one item with product and positive quantity is required")
	}

	o.recalculateTotals()

	return nil
}

// Subtotal returns the sum of item amounts before tax
func (o *PurchaseOrder) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Amount)
	}
	return subtotal
}

// recalculateTotals derives the order total from its items: local orders
// apply the tax percent on the subtotal, import orders carry no tax.
// Totals are held at standard currency precision.
func (o *PurchaseOrder) recalculateTotals() {
	subtotal := o.Subtotal()

	total := subtotal
	if o.Channel == ChannelLocal && o.Local != nil && !o.Local.TaxPercent.IsZero() {
		tax := subtotal.Mul(o.Local.TaxPercent).Div(decimal.NewFromInt(100))
		total = subtotal.Add(tax)
	}

	o.TotalAmount = total.Round(2)
}

// FindItem returns the item with the given ID
func (o *PurchaseOrder) FindItem(itemID uuid.UUID) (*PurchaseOrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Order item not found")
}

// SetRemarks sets the order remarks
// Only allowed while the order is pending
func (o *PurchaseOrder) SetRemarks(remarks string) error {
	if o.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Inspected orders are read-only")
	}

	o.Remarks = remarks
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// CanBeInspected returns true if an inspection report may be submitted
func (o *PurchaseOrder) CanBeInspected() bool {
	return o.Status == PurchaseOrderStatusPending
}

// ApplyInspectionOutcome moves the order to its terminal status based on
// the inspection result: completed when nothing was rejected, otherwise
// partially_rejected (full rejection included). The transition happens
// exactly once; a second application fails.
func (o *PurchaseOrder) ApplyInspectionOutcome(totalRejectedQty decimal.Decimal) error {
	if o.Status != PurchaseOrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Order %s has already been inspected", o.OrderNumber))
	}
	if totalRejectedQty.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Rejected quantity cannot be negative")
	}

	target := PurchaseOrderStatusCompleted
	if totalRejectedQty.IsPositive() {
		target = PurchaseOrderStatusPartiallyRejected
	}

	now := time.Now()
	o.Status = target
	o.InspectedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderInspectedEvent(o, totalRejectedQty))

	return nil
}
