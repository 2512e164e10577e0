package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTerms(tax string) LocalTerms {
	return LocalTerms{
		PaymentTerms: "30 days",
		Station:      "Lahore",
		TaxPercent:   decimal.RequireFromString(tax),
	}
}

func importTerms() ImportTerms {
	return ImportTerms{
		PaymentTerms:   "LC at sight",
		Origin:         "China",
		PaymentType:    PaymentTypeDA,
		DispatchedFrom: "Shanghai",
		DispatchedIn:   "45 days",
		ValidityIndent: "90 days",
	}
}

func draft(name, qty, rate string) ItemDraft {
	return ItemDraft{
		ProductID:   uuid.New(),
		ProductName: name,
		Quantity:    decimal.RequireFromString(qty),
		Rate:        decimal.RequireFromString(rate),
	}
}

func TestNewLocalPurchaseOrder(t *testing.T) {
	t.Run("applies tax on the subtotal", func(t *testing.T) {
		order, err := NewLocalPurchaseOrder("PO-20260831-0001", uuid.New(), "Medipak Ltd", localTerms("10"), []ItemDraft{
			draft("Paracetamol 500mg", "10", "5.00"),
		})

		require.NoError(t, err)
		assert.Equal(t, ChannelLocal, order.Channel)
		assert.Equal(t, PurchaseOrderStatusPending, order.Status)
		assert.True(t, decimal.RequireFromString("55.00").Equal(order.TotalAmount), "got %s", order.TotalAmount)
		require.NotNil(t, order.Local)
		assert.Nil(t, order.Import)
	})

	t.Run("zero tax keeps the subtotal", func(t *testing.T) {
		order, err := NewLocalPurchaseOrder("PO-20260831-0002", uuid.New(), "Medipak Ltd", localTerms("0"), []ItemDraft{
			draft("Ibuprofen 200mg", "4", "12.50"),
		})

		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("50.00").Equal(order.TotalAmount))
	})

	t.Run("rounds the taxed total to two decimals", func(t *testing.T) {
		order, err := NewLocalPurchaseOrder("PO-20260831-0003", uuid.New(), "Medipak Ltd", localTerms("17"), []ItemDraft{
			draft("Amoxicillin 250mg", "3", "33.33"),
		})

		require.NoError(t, err)
		// 99.99 * 1.17 = 116.9883
		assert.True(t, decimal.RequireFromString("116.99").Equal(order.TotalAmount), "got %s", order.TotalAmount)
	})

	t.Run("rejects negative tax", func(t *testing.T) {
		_, err := NewLocalPurchaseOrder("PO-20260831-0004", uuid.New(), "Medipak Ltd", localTerms("-1"), []ItemDraft{
			draft("Paracetamol 500mg", "10", "5.00"),
		})

		assert.Error(t, err)
	})
}

func TestNewImportPurchaseOrder(t *testing.T) {
	t.Run("total is the plain subtotal", func(t *testing.T) {
		order, err := NewImportPurchaseOrder("PO-20260831-0005", uuid.New(), "Sinopharm Intl", importTerms(), []ItemDraft{
			draft("API Azithromycin", "2", "100"),
			draft("API Ciprofloxacin", "3", "50"),
		})

		require.NoError(t, err)
		assert.Equal(t, ChannelImport, order.Channel)
		assert.True(t, decimal.RequireFromString("350.00").Equal(order.TotalAmount), "got %s", order.TotalAmount)
		require.NotNil(t, order.Import)
		assert.Nil(t, order.Local)
	})

	t.Run("rejects unknown payment type", func(t *testing.T) {
		terms := importTerms()
		terms.PaymentType = "COD"

		_, err := NewImportPurchaseOrder("PO-20260831-0006", uuid.New(), "Sinopharm Intl", terms, []ItemDraft{
			draft("API Azithromycin", "2", "100"),
		})

		assert.Error(t, err)
	})
}

func TestPurchaseOrderItemDrafts(t *testing.T) {
	t.Run("incomplete rows are dropped and serials stay dense", func(t *testing.T) {
		drafts := []ItemDraft{
			draft("Paracetamol 500mg", "10", "5.00"),
			{ProductName: "no product picked", Quantity: decimal.NewFromInt(5)},
			{ProductID: uuid.New(), ProductName: "zero quantity", Quantity: decimal.Zero},
			draft("Ibuprofen 200mg", "2", "8.00"),
		}

		order, err := NewLocalPurchaseOrder("PO-20260831-0007", uuid.New(), "Medipak Ltd", localTerms("0"), drafts)

		require.NoError(t, err)
		require.Len(t, order.Items, 2)
		assert.Equal(t, 1, order.Items[0].SerialNo)
		assert.Equal(t, 2, order.Items[1].SerialNo)
		assert.True(t, decimal.RequireFromString("66.00").Equal(order.TotalAmount))
	})

	t.Run("fails when no row survives", func(t *testing.T) {
		_, err := NewLocalPurchaseOrder("PO-20260831-0008", uuid.New(), "Medipak Ltd", localTerms("0"), []ItemDraft{
			{ProductName: "incomplete"},
		})

		assert.Error(t, err)
	})

	t.Run("negative rate fails the order", func(t *testing.T) {
		_, err := NewLocalPurchaseOrder("PO-20260831-0009", uuid.New(), "Medipak Ltd", localTerms("0"), []ItemDraft{
			draft("Paracetamol 500mg", "10", "-5.00"),
		})

		assert.Error(t, err)
	})
}

func TestApplyInspectionOutcome(t *testing.T) {
	newPendingOrder := func(t *testing.T) *PurchaseOrder {
		order, err := NewLocalPurchaseOrder("PO-20260831-0010", uuid.New(), "Medipak Ltd", localTerms("0"), []ItemDraft{
			draft("Paracetamol 500mg", "10", "5.00"),
		})
		require.NoError(t, err)
		return order
	}

	t.Run("no rejection completes the order", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.ApplyInspectionOutcome(decimal.Zero)

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
		assert.NotNil(t, order.InspectedAt)
	})

	t.Run("any rejection marks it partially rejected", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.ApplyInspectionOutcome(decimal.NewFromInt(3))

		require.NoError(t, err)
		assert.Equal(t, PurchaseOrderStatusPartiallyRejected, order.Status)
	})

	t.Run("second application fails", func(t *testing.T) {
		order := newPendingOrder(t)
		require.NoError(t, order.ApplyInspectionOutcome(decimal.Zero))

		err := order.ApplyInspectionOutcome(decimal.Zero)

		assert.Error(t, err)
		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
	})

	t.Run("negative rejected quantity is refused", func(t *testing.T) {
		order := newPendingOrder(t)

		err := order.ApplyInspectionOutcome(decimal.NewFromInt(-1))

		assert.Error(t, err)
		assert.Equal(t, PurchaseOrderStatusPending, order.Status)
	})
}

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    PurchaseOrderStatus
		to      PurchaseOrderStatus
		allowed bool
	}{
		{"pending to completed", PurchaseOrderStatusPending, PurchaseOrderStatusCompleted, true},
		{"pending to partially rejected", PurchaseOrderStatusPending, PurchaseOrderStatusPartiallyRejected, true},
		{"completed is terminal", PurchaseOrderStatusCompleted, PurchaseOrderStatusPending, false},
		{"partially rejected is terminal", PurchaseOrderStatusPartiallyRejected, PurchaseOrderStatusCompleted, false},
		{"pending cannot stay pending", PurchaseOrderStatusPending, PurchaseOrderStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestTermsJSONRoundtrip(t *testing.T) {
	t.Run("local terms", func(t *testing.T) {
		original := localTerms("17")

		value, err := original.Value()
		require.NoError(t, err)

		var scanned LocalTerms
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, original.Station, scanned.Station)
		assert.True(t, original.TaxPercent.Equal(scanned.TaxPercent))
	})

	t.Run("import terms", func(t *testing.T) {
		original := importTerms()

		value, err := original.Value()
		require.NoError(t, err)

		var scanned ImportTerms
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, original, scanned)
	})

	t.Run("nil database value leaves terms zero", func(t *testing.T) {
		var scanned LocalTerms
		require.NoError(t, scanned.Scan(nil))
		assert.Empty(t, scanned.Station)
	})
}
