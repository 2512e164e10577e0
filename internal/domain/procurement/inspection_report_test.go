package procurement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func pendingOrderForInspection(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewLocalPurchaseOrder("PO-20260831-0100", uuid.New(), "Medipak Ltd", localTerms("0"), []ItemDraft{
		draft("Paracetamol 500mg", "20", "5.00"),
		draft("Ibuprofen 200mg", "10", "8.00"),
	})
	require.NoError(t, err)
	return order
}

func TestNewInspectionReport(t *testing.T) {
	t.Run("derives the rejected complement from accepted", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		report, err := NewInspectionReport("QC-20260831-0001", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("15"), RejectionReason: "damp cartons"},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		require.NoError(t, err)
		first := report.Items[0]
		assert.True(t, decimal.RequireFromString("15").Equal(first.AcceptedQty))
		assert.True(t, decimal.RequireFromString("5").Equal(first.RejectedQty))
		assert.True(t, decimal.RequireFromString("75.00").Equal(first.AcceptedValue))
		assert.True(t, decimal.RequireFromString("25.00").Equal(first.RejectedValue))
		assert.Equal(t, InspectionResultRejected, report.Result)
	})

	t.Run("derives the accepted complement from rejected", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		report, err := NewInspectionReport("QC-20260831-0002", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, RejectedQty: qty("0")},
			{OrderItemID: order.Items[1].ID, RejectedQty: qty("2"), RejectionReason: "broken seals"},
		}, "QA Officer", "")

		require.NoError(t, err)
		second := report.Items[1]
		assert.True(t, decimal.RequireFromString("8").Equal(second.AcceptedQty))
		assert.True(t, decimal.RequireFromString("2").Equal(second.RejectedQty))
	})

	t.Run("totals are exact sums of item values", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		report, err := NewInspectionReport("QC-20260831-0003", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("15"), RejectionReason: "damp cartons"},
			{OrderItemID: order.Items[1].ID, RejectedQty: qty("2"), RejectionReason: "broken seals"},
		}, "QA Officer", "")

		require.NoError(t, err)
		// accepted: 15*5 + 8*8 = 139, rejected: 5*5 + 2*8 = 41
		assert.True(t, decimal.RequireFromString("139.00").Equal(report.AcceptedTotal), "got %s", report.AcceptedTotal)
		assert.True(t, decimal.RequireFromString("41.00").Equal(report.RejectedTotal), "got %s", report.RejectedTotal)
	})

	t.Run("fully accepted report", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		report, err := NewInspectionReport("QC-20260831-0004", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("20")},
			{OrderItemID: order.Items[1].ID, RejectedQty: qty("0")},
		}, "QA Officer", "")

		require.NoError(t, err)
		assert.Equal(t, InspectionResultAccepted, report.Result)
		assert.True(t, report.RejectedTotal.IsZero())
		assert.False(t, report.HasRejections())
	})

	t.Run("fully rejected report", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		report, err := NewInspectionReport("QC-20260831-0005", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, RejectedQty: qty("20"), RejectionReason: "failed assay"},
			{OrderItemID: order.Items[1].ID, RejectedQty: qty("10"), RejectionReason: "failed assay"},
		}, "QA Officer", "")

		require.NoError(t, err)
		assert.Equal(t, InspectionResultRejected, report.Result)
		assert.True(t, report.AcceptedTotal.IsZero())
	})
}

func TestNewInspectionReportValidation(t *testing.T) {
	t.Run("providing both quantities is ambiguous", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0010", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("10"), RejectedQty: qty("10")},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("providing neither quantity fails", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0011", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("quantity above ordered is an error, not clamped", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0012", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("21")},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("rejection without reason fails", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0013", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, RejectedQty: qty("5")},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("zero rejection needs no reason", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0014", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, RejectedQty: qty("0")},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.NoError(t, err)
	})

	t.Run("every order item must be covered", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0015", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("20")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("duplicate item rows are refused", func(t *testing.T) {
		order := pendingOrderForInspection(t)

		_, err := NewInspectionReport("QC-20260831-0016", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("20")},
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("20")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})

	t.Run("inspected orders cannot be reported on", func(t *testing.T) {
		order := pendingOrderForInspection(t)
		require.NoError(t, order.ApplyInspectionOutcome(decimal.Zero))

		_, err := NewInspectionReport("QC-20260831-0017", order, []InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: qty("20")},
			{OrderItemID: order.Items[1].ID, AcceptedQty: qty("10")},
		}, "QA Officer", "")

		assert.Error(t, err)
	})
}

func TestInspectionReportQuantityInvariant(t *testing.T) {
	order := pendingOrderForInspection(t)

	report, err := NewInspectionReport("QC-20260831-0020", order, []InspectionItemInput{
		{OrderItemID: order.Items[0].ID, AcceptedQty: qty("7.5"), RejectionReason: "short weight"},
		{OrderItemID: order.Items[1].ID, RejectedQty: qty("3.25"), RejectionReason: "short weight"},
	}, "QA Officer", "")

	require.NoError(t, err)
	for _, item := range report.Items {
		assert.True(t, item.AcceptedQty.Add(item.RejectedQty).Equal(item.OrderedQty),
			"accepted %s + rejected %s != ordered %s", item.AcceptedQty, item.RejectedQty, item.OrderedQty)
	}
	assert.True(t, report.TotalAcceptedQty().Add(report.TotalRejectedQty()).Equal(decimal.RequireFromString("30")))
}
