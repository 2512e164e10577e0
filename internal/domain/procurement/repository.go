package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds an order with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*PurchaseOrder, error)

	// FindAll finds all orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByChannel finds orders on a channel matching the filter
	FindByChannel(ctx context.Context, channel Channel, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySupplier finds orders of a supplier matching the filter
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, order *PurchaseOrder) error

	// Delete deletes an order and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderNumber generates the next sequential order number for the day
	GenerateOrderNumber(ctx context.Context) (string, error)
}

// InspectionReportRepository defines the interface for inspection report persistence
type InspectionReportRepository interface {
	// FindByID finds a report with its items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*InspectionReport, error)

	// FindByOrderID finds the report of an order, shared.ErrNotFound when absent
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*InspectionReport, error)

	// FindAll finds all reports matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]InspectionReport, error)

	// Save creates or updates a report with its items
	Save(ctx context.Context, report *InspectionReport) error

	// SaveWithOrder persists the report and the order's status change in one transaction
	SaveWithOrder(ctx context.Context, report *InspectionReport, order *PurchaseOrder) error

	// Delete deletes a report and its items
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts reports matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOrderID checks if the order already has a report
	ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error)

	// GenerateReportNumber generates the next sequential report number for the day
	GenerateReportNumber(ctx context.Context) (string, error)
}

// ReceiptRepository defines the interface for receipt persistence
type ReceiptRepository interface {
	// FindByID finds a receipt by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Receipt, error)

	// FindByOrderID finds all receipts issued for an order
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]Receipt, error)

	// FindAll finds all receipts matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Receipt, error)

	// Save creates or updates a receipt
	Save(ctx context.Context, receipt *Receipt) error

	// Delete deletes a receipt
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts receipts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByOrderAndType checks if the order already has a receipt of the type
	ExistsByOrderAndType(ctx context.Context, orderID uuid.UUID, receiptType ReceiptType) (bool, error)

	// GenerateReceiptNumber generates the next sequential receipt number for the day and type
	GenerateReceiptNumber(ctx context.Context, receiptType ReceiptType) (string, error)
}
