package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DocType represents the type of business document that can be exported
type DocType string

const (
	DocTypePurchaseOrder DocType = "PURCHASE_ORDER"
	DocTypeReceipt       DocType = "RECEIPT"
)

// IsValid checks if the DocType is a valid value
func (d DocType) IsValid() bool {
	switch d {
	case DocTypePurchaseOrder, DocTypeReceipt:
		return true
	}
	return false
}

// String returns the string representation of DocType
func (d DocType) String() string {
	return string(d)
}

// DisplayName returns the document title used on the printed page
func (d DocType) DisplayName() string {
	switch d {
	case DocTypePurchaseOrder:
		return "Purchase Order"
	case DocTypeReceipt:
		return "Goods Receipt"
	default:
		return string(d)
	}
}

// DataProvider is the interface for providing document data for template
// rendering. Each document type has its own implementation.
type DataProvider interface {
	// GetDocType returns the document type this provider handles
	GetDocType() DocType
	// GetData retrieves the document data for rendering
	GetData(ctx context.Context, documentID uuid.UUID) (*DocumentData, error)
}

// DocumentData is the common structure for all document data used in
// templates. It contains both common metadata and document-specific data.
type DocumentData struct {
	// Common metadata
	Meta DocumentMeta `json:"meta"`

	// Issuing company information
	Company CompanyInfo `json:"company"`

	// Document-specific data, one of PurchaseOrderData or ReceiptData
	Document any `json:"document"`

	// Formatted print timestamp fields
	PrintDate     string `json:"printDate"`
	PrintDateTime string `json:"printDateTime"`
}

// DocumentMeta contains common metadata for all documents
type DocumentMeta struct {
	DocType     DocType   `json:"docType"`
	DocTypeName string    `json:"docTypeName"`
	DocNo       string    `json:"docNo"`
	Status      string    `json:"status"`
	StatusText  string    `json:"statusText"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Remarks     string    `json:"remarks"`
}

// CompanyInfo contains the issuing company letterhead information
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// NewDocumentData creates a DocumentData with meta and print timestamps set
func NewDocumentData(docType DocType, docNo string) *DocumentData {
	now := time.Now()
	return &DocumentData{
		Meta: DocumentMeta{
			DocType:     docType,
			DocTypeName: docType.DisplayName(),
			DocNo:       docNo,
		},
		PrintDate:     now.Format("2006-01-02"),
		PrintDateTime: now.Format("2006-01-02 15:04:05"),
	}
}

// SupplierInfo contains supplier details for printing
type SupplierInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Type    string    `json:"type"`
	Contact string    `json:"contact"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	Country string    `json:"country"`
}

// PurchaseOrderData represents purchase order data for template rendering
type PurchaseOrderData struct {
	ID            uuid.UUID               `json:"id"`
	OrderNumber   string                  `json:"orderNumber"`
	Channel       string                  `json:"channel"`
	Supplier      SupplierInfo            `json:"supplier"`
	Items         []PurchaseOrderItemData `json:"items"`
	Subtotal      decimal.Decimal         `json:"subtotal"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
	TotalQuantity decimal.Decimal         `json:"totalQuantity"`
	ItemCount     int                     `json:"itemCount"`
	Status        string                  `json:"status"`
	InspectedAt   *time.Time              `json:"inspectedAt"`
	Remarks       string                  `json:"remarks"`

	// Variant term sets, exactly one is non-nil
	Local  *LocalTermsData  `json:"local"`
	Import *ImportTermsData `json:"import"`

	// Formatted fields
	SubtotalFormatted    string `json:"subtotalFormatted"`
	TotalAmountFormatted string `json:"totalAmountFormatted"`
}

// LocalTermsData carries the local channel terms for printing
type LocalTermsData struct {
	PaymentTerms string          `json:"paymentTerms"`
	Station      string          `json:"station"`
	TaxPercent   decimal.Decimal `json:"taxPercent"`
}

// ImportTermsData carries the import channel terms for printing
type ImportTermsData struct {
	PaymentTerms   string `json:"paymentTerms"`
	Origin         string `json:"origin"`
	PaymentType    string `json:"paymentType"`
	DispatchedFrom string `json:"dispatchedFrom"`
	DispatchedIn   string `json:"dispatchedIn"`
	ValidityIndent string `json:"validityIndent"`
}

// PurchaseOrderItemData represents a line item on the purchase order
type PurchaseOrderItemData struct {
	Index       int             `json:"index"` // 1-based index
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`

	// Formatted fields
	QuantityFormatted string `json:"quantityFormatted"`
	RateFormatted     string `json:"rateFormatted"`
	AmountFormatted   string `json:"amountFormatted"`
}

// ReceiptData represents goods receipt data for template rendering
type ReceiptData struct {
	ID            uuid.UUID         `json:"id"`
	ReceiptNumber string            `json:"receiptNumber"`
	Type          string            `json:"type"`
	OrderNumber   string            `json:"orderNumber"`
	ReportNumber  string            `json:"reportNumber"`
	Supplier      SupplierInfo      `json:"supplier"`
	Items         []ReceiptItemData `json:"items"`
	TotalQuantity decimal.Decimal   `json:"totalQuantity"`
	Amount        decimal.Decimal   `json:"amount"`
	Remarks       string            `json:"remarks"`

	// Formatted fields
	AmountFormatted string `json:"amountFormatted"`
}

// ReceiptItemData represents one inspected line on the receipt. Quantity
// and value are the side of the inspection split the receipt documents.
type ReceiptItemData struct {
	Index           int             `json:"index"`
	ProductName     string          `json:"productName"`
	OrderedQty      decimal.Decimal `json:"orderedQty"`
	Quantity        decimal.Decimal `json:"quantity"`
	Rate            decimal.Decimal `json:"rate"`
	Value           decimal.Decimal `json:"value"`
	RejectionReason string          `json:"rejectionReason"`

	// Formatted fields
	QuantityFormatted string `json:"quantityFormatted"`
	RateFormatted     string `json:"rateFormatted"`
	ValueFormatted    string `json:"valueFormatted"`
}

// FormatMoneyValue formats a decimal as money for provider-built fields
func FormatMoneyValue(d decimal.Decimal) string {
	return formatMoneyRaw(d)
}

// FormatQuantityValue formats a decimal quantity for provider-built fields
func FormatQuantityValue(d decimal.Decimal) string {
	return formatQty(d)
}
