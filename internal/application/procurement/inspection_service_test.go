package procurement

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newInspectionService(reports *mockReportRepository, orders *mockOrderRepository) *InspectionService {
	return NewInspectionService(reports, orders, nil, zap.NewNop())
}

func d(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

func TestInspectionServiceCreate(t *testing.T) {
	t.Run("submits the report and completes the order in one save", func(t *testing.T) {
		order := pendingLocalOrder(t)

		orders := new(mockOrderRepository)
		reports := new(mockReportRepository)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		reports.On("ExistsByOrderID", mock.Anything, order.ID).Return(false, nil)
		reports.On("GenerateReportNumber", mock.Anything).Return("QC-20260831-0001", nil)
		reports.On("SaveWithOrder", mock.Anything, mock.AnythingOfType("*procurement.InspectionReport"), order).Return(nil)

		service := newInspectionService(reports, orders)
		resp, err := service.Create(context.Background(), CreateInspectionReportRequest{
			OrderID: order.ID,
			Items: []InspectionItemRequest{
				{OrderItemID: order.Items[0].ID, AcceptedQty: d("10")},
			},
			InspectedBy: "QA Officer",
		})

		require.NoError(t, err)
		assert.Equal(t, "accepted", resp.Result)
		assert.Equal(t, procurement.PurchaseOrderStatusCompleted, order.Status)
		reports.AssertExpectations(t)
	})

	t.Run("rejections mark the order partially rejected", func(t *testing.T) {
		order := pendingLocalOrder(t)

		orders := new(mockOrderRepository)
		reports := new(mockReportRepository)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		reports.On("ExistsByOrderID", mock.Anything, order.ID).Return(false, nil)
		reports.On("GenerateReportNumber", mock.Anything).Return("QC-20260831-0002", nil)
		reports.On("SaveWithOrder", mock.Anything, mock.Anything, order).Return(nil)

		service := newInspectionService(reports, orders)
		resp, err := service.Create(context.Background(), CreateInspectionReportRequest{
			OrderID: order.ID,
			Items: []InspectionItemRequest{
				{OrderItemID: order.Items[0].ID, RejectedQty: d("4"), RejectionReason: "damaged packing"},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "rejected", resp.Result)
		assert.Equal(t, procurement.PurchaseOrderStatusPartiallyRejected, order.Status)
		assert.True(t, decimal.RequireFromString("30.00").Equal(resp.AcceptedTotal))
		assert.True(t, decimal.RequireFromString("20.00").Equal(resp.RejectedTotal))
	})

	t.Run("a second report for the order is refused", func(t *testing.T) {
		order := pendingLocalOrder(t)

		orders := new(mockOrderRepository)
		reports := new(mockReportRepository)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		reports.On("ExistsByOrderID", mock.Anything, order.ID).Return(true, nil)

		service := newInspectionService(reports, orders)
		_, err := service.Create(context.Background(), CreateInspectionReportRequest{
			OrderID: order.ID,
			Items: []InspectionItemRequest{
				{OrderItemID: order.Items[0].ID, AcceptedQty: d("10")},
			},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		reports.AssertNotCalled(t, "SaveWithOrder")
	})

	t.Run("invalid quantities never touch the repositories", func(t *testing.T) {
		order := pendingLocalOrder(t)

		orders := new(mockOrderRepository)
		reports := new(mockReportRepository)
		orders.On("FindByID", mock.Anything, order.ID).Return(order, nil)
		reports.On("ExistsByOrderID", mock.Anything, order.ID).Return(false, nil)
		reports.On("GenerateReportNumber", mock.Anything).Return("QC-20260831-0003", nil)

		service := newInspectionService(reports, orders)
		_, err := service.Create(context.Background(), CreateInspectionReportRequest{
			OrderID: order.ID,
			Items: []InspectionItemRequest{
				{OrderItemID: order.Items[0].ID, AcceptedQty: d("11")},
			},
		})

		require.Error(t, err)
		assert.Equal(t, procurement.PurchaseOrderStatusPending, order.Status)
		reports.AssertNotCalled(t, "SaveWithOrder")
	})
}

func TestInspectionServiceGetByOrderID(t *testing.T) {
	t.Run("uninspected order maps to not found", func(t *testing.T) {
		reports := new(mockReportRepository)
		reports.On("FindByOrderID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		service := newInspectionService(reports, new(mockOrderRepository))
		_, err := service.GetByOrderID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
