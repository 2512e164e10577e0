package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one authored line row. Rows without a product or
// a positive quantity are skipped, mirroring a half-filled form row.
type OrderItemRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	Rate      decimal.Decimal `json:"rate"`
}

// LocalTermsRequest carries the local-channel term fields
type LocalTermsRequest struct {
	PaymentTerms string          `json:"payment_terms" binding:"max=200"`
	Station      string          `json:"station" binding:"max=100"`
	TaxPercent   decimal.Decimal `json:"tax_percent"`
}

// ImportTermsRequest carries the import-channel term fields
type ImportTermsRequest struct {
	PaymentTerms   string `json:"payment_terms" binding:"max=200"`
	Origin         string `json:"origin" binding:"max=100"`
	PaymentType    string `json:"payment_type" binding:"required,oneof=DA F_Payment"`
	DispatchedFrom string `json:"dispatched_from" binding:"max=200"`
	DispatchedIn   string `json:"dispatched_in" binding:"max=100"`
	ValidityIndent string `json:"validity_indent" binding:"max=100"`
}

// CreatePurchaseOrderRequest represents a request to create a purchase order.
// The channel follows the supplier's type; the matching term set is required
// and the other must be absent.
type CreatePurchaseOrderRequest struct {
	SupplierID  uuid.UUID           `json:"supplier_id" binding:"required"`
	LocalTerms  *LocalTermsRequest  `json:"local_terms"`
	ImportTerms *ImportTermsRequest `json:"import_terms"`
	Items       []OrderItemRequest  `json:"items" binding:"required,min=1"`
	Remarks     string              `json:"remarks"`
}

// PurchaseOrderListFilter represents filtering options for order lists
type PurchaseOrderListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	Channel    string `form:"channel" binding:"omitempty,oneof=local import"`
	Status     string `form:"status" binding:"omitempty,oneof=pending completed partially_rejected"`
	SupplierID string `form:"supplier_id" binding:"omitempty,uuid"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	SerialNo    int             `json:"serial_no"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID          uuid.UUID                  `json:"id"`
	OrderNumber string                     `json:"order_number"`
	SupplierID  uuid.UUID                  `json:"supplier_id"`
	Supplier    string                     `json:"supplier"`
	Channel     string                     `json:"channel"`
	Status      string                     `json:"status"`
	LocalTerms  *procurement.LocalTerms    `json:"local_terms,omitempty"`
	ImportTerms *procurement.ImportTerms   `json:"import_terms,omitempty"`
	Items       []OrderItemResponse        `json:"items"`
	TotalAmount decimal.Decimal            `json:"total_amount"`
	Remarks     string                     `json:"remarks"`
	InspectedAt *time.Time                 `json:"inspected_at,omitempty"`
	Inspection  *InspectionReportResponse  `json:"inspection,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// ToPurchaseOrderResponse converts a domain order to a response DTO
func ToPurchaseOrderResponse(order *procurement.PurchaseOrder) PurchaseOrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ID:          item.ID,
			SerialNo:    item.SerialNo,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
			Amount:      item.Amount,
		})
	}

	return PurchaseOrderResponse{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		SupplierID:  order.SupplierID,
		Supplier:    order.SupplierName,
		Channel:     order.Channel.String(),
		Status:      order.Status.String(),
		LocalTerms:  order.Local,
		ImportTerms: order.Import,
		Items:       items,
		TotalAmount: order.TotalAmount,
		Remarks:     order.Remarks,
		InspectedAt: order.InspectedAt,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}

// ToPurchaseOrderResponses converts a slice of domain orders to response DTOs
func ToPurchaseOrderResponses(orders []procurement.PurchaseOrder) []PurchaseOrderResponse {
	responses := make([]PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	return responses
}

// InspectionItemRequest is the inspector's entry for one order line.
// Exactly one of accepted_qty/rejected_qty must be present.
type InspectionItemRequest struct {
	OrderItemID     uuid.UUID        `json:"order_item_id" binding:"required"`
	AcceptedQty     *decimal.Decimal `json:"accepted_qty"`
	RejectedQty     *decimal.Decimal `json:"rejected_qty"`
	RejectionReason string           `json:"rejection_reason"`
}

// CreateInspectionReportRequest represents a request to submit a QC report
type CreateInspectionReportRequest struct {
	OrderID     uuid.UUID               `json:"order_id" binding:"required"`
	Items       []InspectionItemRequest `json:"items" binding:"required,min=1"`
	InspectedBy string                  `json:"inspected_by" binding:"max=100"`
	Remarks     string                  `json:"remarks"`
}

// InspectionReportListFilter represents filtering options for report lists
type InspectionReportListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Result   string `form:"result" binding:"omitempty,oneof=accepted rejected"`
}

// InspectionItemResponse represents a report line in API responses
type InspectionItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	OrderItemID     uuid.UUID       `json:"order_item_id"`
	SerialNo        int             `json:"serial_no"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	OrderedQty      decimal.Decimal `json:"ordered_qty"`
	AcceptedQty     decimal.Decimal `json:"accepted_qty"`
	RejectedQty     decimal.Decimal `json:"rejected_qty"`
	Rate            decimal.Decimal `json:"rate"`
	AcceptedValue   decimal.Decimal `json:"accepted_value"`
	RejectedValue   decimal.Decimal `json:"rejected_value"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
}

// InspectionReportResponse represents a QC report in API responses
type InspectionReportResponse struct {
	ID            uuid.UUID                `json:"id"`
	ReportNumber  string                   `json:"report_number"`
	OrderID       uuid.UUID                `json:"order_id"`
	OrderNumber   string                   `json:"order_number"`
	SupplierID    uuid.UUID                `json:"supplier_id"`
	Supplier      string                   `json:"supplier"`
	Result        string                   `json:"result"`
	Items         []InspectionItemResponse `json:"items"`
	AcceptedTotal decimal.Decimal          `json:"accepted_total"`
	RejectedTotal decimal.Decimal          `json:"rejected_total"`
	InspectedBy   string                   `json:"inspected_by"`
	Remarks       string                   `json:"remarks"`
	CreatedAt     time.Time                `json:"created_at"`
}

// ToInspectionReportResponse converts a domain report to a response DTO
func ToInspectionReportResponse(report *procurement.InspectionReport) InspectionReportResponse {
	items := make([]InspectionItemResponse, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, InspectionItemResponse{
			ID:              item.ID,
			OrderItemID:     item.OrderItemID,
			SerialNo:        item.SerialNo,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			OrderedQty:      item.OrderedQty,
			AcceptedQty:     item.AcceptedQty,
			RejectedQty:     item.RejectedQty,
			Rate:            item.Rate,
			AcceptedValue:   item.AcceptedValue,
			RejectedValue:   item.RejectedValue,
			RejectionReason: item.RejectionReason,
		})
	}

	return InspectionReportResponse{
		ID:            report.ID,
		ReportNumber:  report.ReportNumber,
		OrderID:       report.OrderID,
		OrderNumber:   report.OrderNumber,
		SupplierID:    report.SupplierID,
		Supplier:      report.SupplierName,
		Result:        report.Result.String(),
		Items:         items,
		AcceptedTotal: report.AcceptedTotal,
		RejectedTotal: report.RejectedTotal,
		InspectedBy:   report.InspectedBy,
		Remarks:       report.Remarks,
		CreatedAt:     report.CreatedAt,
	}
}

// ToInspectionReportResponses converts a slice of domain reports to response DTOs
func ToInspectionReportResponses(reports []procurement.InspectionReport) []InspectionReportResponse {
	responses := make([]InspectionReportResponse, 0, len(reports))
	for i := range reports {
		responses = append(responses, ToInspectionReportResponse(&reports[i]))
	}
	return responses
}

// CreateReceiptRequest represents a request to issue a receipt
type CreateReceiptRequest struct {
	OrderID     uuid.UUID `json:"order_id" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=accepted rejected"`
	GeneratedBy string    `json:"generated_by" binding:"max=100"`
	Remarks     string    `json:"remarks"`
}

// ReceiptListFilter represents filtering options for receipt lists
type ReceiptListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Type     string `form:"type" binding:"omitempty,oneof=accepted rejected"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID            uuid.UUID       `json:"id"`
	ReceiptNumber string          `json:"receipt_number"`
	Type          string          `json:"type"`
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	ReportID      uuid.UUID       `json:"report_id"`
	ReportNumber  string          `json:"report_number"`
	SupplierID    uuid.UUID       `json:"supplier_id"`
	Supplier      string          `json:"supplier"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	Amount        decimal.Decimal `json:"amount"`
	GeneratedBy   string          `json:"generated_by"`
	GeneratedDate time.Time       `json:"generated_date"`
	Remarks       string          `json:"remarks"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToReceiptResponse converts a domain receipt to a response DTO
func ToReceiptResponse(receipt *procurement.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ID:            receipt.ID,
		ReceiptNumber: receipt.ReceiptNumber,
		Type:          receipt.Type.String(),
		OrderID:       receipt.OrderID,
		OrderNumber:   receipt.OrderNumber,
		ReportID:      receipt.ReportID,
		ReportNumber:  receipt.ReportNumber,
		SupplierID:    receipt.SupplierID,
		Supplier:      receipt.SupplierName,
		TotalQuantity: receipt.TotalQuantity,
		Amount:        receipt.Amount,
		GeneratedBy:   receipt.GeneratedBy,
		GeneratedDate: receipt.GeneratedDate,
		Remarks:       receipt.Remarks,
		CreatedAt:     receipt.CreatedAt,
	}
}

// ToReceiptResponses converts a slice of domain receipts to response DTOs
func ToReceiptResponses(receipts []procurement.Receipt) []ReceiptResponse {
	responses := make([]ReceiptResponse, 0, len(receipts))
	for i := range receipts {
		responses = append(responses, ToReceiptResponse(&receipts[i]))
	}
	return responses
}
