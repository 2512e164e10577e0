package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase asc", "asc", "ASC"},
		{"uppercase ASC", "ASC", "ASC"},
		{"padded asc", "  asc  ", "ASC"},
		{"desc", "desc", "DESC"},
		{"empty defaults to DESC", "", "DESC"},
		{"garbage defaults to DESC", "ascending; DROP TABLE receipts", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		allowed  map[string]bool
		expected string
	}{
		{"whitelisted field passes", "receipt_number", ReceiptSortFields, "receipt_number"},
		{"empty falls back to default", "", ReceiptSortFields, "created_at"},
		{"unknown column falls back", "secret_column", ReceiptSortFields, "created_at"},
		{"injection attempt falls back", "amount; DROP TABLE receipts--", ReceiptSortFields, "created_at"},
		{"subquery attempt falls back", "(SELECT 1)", PurchaseOrderSortFields, "created_at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortField(tt.input, tt.allowed, "created_at"))
		})
	}
}
