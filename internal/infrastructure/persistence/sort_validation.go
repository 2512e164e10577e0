package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"type":           true,
	"contact_person": true,
	"country":        true,
}

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"manufacturer": true,
	"hs_code":      true,
	"unit":         true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"order_number":  true,
	"supplier_id":   true,
	"supplier_name": true,
	"channel":       true,
	"status":        true,
	"total_amount":  true,
	"inspected_at":  true,
}

// InspectionReportSortFields contains allowed sort fields for inspection reports
var InspectionReportSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"report_number":  true,
	"order_number":   true,
	"supplier_id":    true,
	"supplier_name":  true,
	"result":         true,
	"accepted_total": true,
	"rejected_total": true,
}

// ReceiptSortFields contains allowed sort fields for receipts
var ReceiptSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"receipt_number": true,
	"type":           true,
	"order_number":   true,
	"supplier_id":    true,
	"supplier_name":  true,
	"total_quantity": true,
	"amount":         true,
	"generated_date": true,
}
