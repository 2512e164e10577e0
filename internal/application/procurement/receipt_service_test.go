package procurement

import (
	"context"
	"testing"

	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newReceiptService(receipts *mockReceiptRepository, reports *mockReportRepository) *ReceiptService {
	return NewReceiptService(receipts, reports, nil, zap.NewNop())
}

func reportWithRejections(t *testing.T) *procurement.InspectionReport {
	t.Helper()
	order := pendingLocalOrder(t)
	report, err := procurement.NewInspectionReport("QC-20260831-0010", order, []procurement.InspectionItemInput{
		{OrderItemID: order.Items[0].ID, AcceptedQty: d("6"), RejectionReason: "damp cartons"},
	}, "QA Officer", "")
	require.NoError(t, err)
	return report
}

func TestReceiptServiceCreate(t *testing.T) {
	t.Run("issues an accepted receipt from the report total", func(t *testing.T) {
		report := reportWithRejections(t)

		receipts := new(mockReceiptRepository)
		reports := new(mockReportRepository)
		reports.On("FindByOrderID", mock.Anything, report.OrderID).Return(report, nil)
		receipts.On("ExistsByOrderAndType", mock.Anything, report.OrderID, procurement.ReceiptTypeAccepted).Return(false, nil)
		receipts.On("GenerateReceiptNumber", mock.Anything, procurement.ReceiptTypeAccepted).Return("RCP-ACC-20260831-0001", nil)
		receipts.On("Save", mock.Anything, mock.AnythingOfType("*procurement.Receipt")).Return(nil)

		service := newReceiptService(receipts, reports)
		resp, err := service.Create(context.Background(), CreateReceiptRequest{
			OrderID:     report.OrderID,
			Type:        "accepted",
			GeneratedBy: "Store Keeper",
		})

		require.NoError(t, err)
		assert.Equal(t, "RCP-ACC-20260831-0001", resp.ReceiptNumber)
		assert.True(t, decimal.RequireFromString("6").Equal(resp.TotalQuantity))
		assert.True(t, decimal.RequireFromString("30.00").Equal(resp.Amount))
		assert.Equal(t, "Store Keeper", resp.GeneratedBy)
		receipts.AssertExpectations(t)
	})

	t.Run("duplicate receipt type is refused", func(t *testing.T) {
		report := reportWithRejections(t)

		receipts := new(mockReceiptRepository)
		reports := new(mockReportRepository)
		reports.On("FindByOrderID", mock.Anything, report.OrderID).Return(report, nil)
		receipts.On("ExistsByOrderAndType", mock.Anything, report.OrderID, procurement.ReceiptTypeRejected).Return(true, nil)

		service := newReceiptService(receipts, reports)
		_, err := service.Create(context.Background(), CreateReceiptRequest{
			OrderID: report.OrderID,
			Type:    "rejected",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		receipts.AssertNotCalled(t, "Save")
	})

	t.Run("zero-total side is refused", func(t *testing.T) {
		order := pendingLocalOrder(t)
		report, err := procurement.NewInspectionReport("QC-20260831-0011", order, []procurement.InspectionItemInput{
			{OrderItemID: order.Items[0].ID, AcceptedQty: d("10")},
		}, "QA Officer", "")
		require.NoError(t, err)

		receipts := new(mockReceiptRepository)
		reports := new(mockReportRepository)
		reports.On("FindByOrderID", mock.Anything, report.OrderID).Return(report, nil)
		receipts.On("ExistsByOrderAndType", mock.Anything, report.OrderID, procurement.ReceiptTypeRejected).Return(false, nil)
		receipts.On("GenerateReceiptNumber", mock.Anything, procurement.ReceiptTypeRejected).Return("RCP-REJ-20260831-0001", nil)

		service := newReceiptService(receipts, reports)
		_, err = service.Create(context.Background(), CreateReceiptRequest{
			OrderID: report.OrderID,
			Type:    "rejected",
		})

		require.Error(t, err)
		receipts.AssertNotCalled(t, "Save")
	})

	t.Run("uninspected order cannot get a receipt", func(t *testing.T) {
		order := pendingLocalOrder(t)

		receipts := new(mockReceiptRepository)
		reports := new(mockReportRepository)
		reports.On("FindByOrderID", mock.Anything, order.ID).Return(nil, shared.ErrNotFound)

		service := newReceiptService(receipts, reports)
		_, err := service.Create(context.Background(), CreateReceiptRequest{
			OrderID: order.ID,
			Type:    "accepted",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
