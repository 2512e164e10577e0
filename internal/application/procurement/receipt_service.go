package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReceiptService handles goods receipt operations
type ReceiptService struct {
	receiptRepo procurement.ReceiptRepository
	reportRepo  procurement.InspectionReportRepository
	eventBus    shared.EventBus
	logger      *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(
	receiptRepo procurement.ReceiptRepository,
	reportRepo procurement.InspectionReportRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		reportRepo:  reportRepo,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create issues a receipt for one side of an order's inspection report.
// The order must have been inspected, the side must carry a positive
// total, and at most one receipt per side exists.
func (s *ReceiptService) Create(ctx context.Context, req CreateReceiptRequest) (*ReceiptResponse, error) {
	receiptType := procurement.ReceiptType(req.Type)
	if !receiptType.IsValid() {
		return nil, shared.NewDomainError("INVALID_RECEIPT_TYPE", "Receipt type must be accepted or rejected")
	}

	report, err := s.reportRepo.FindByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	exists, err := s.receiptRepo.ExistsByOrderAndType(ctx, req.OrderID, receiptType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Order already has a receipt of this type")
	}

	receiptNumber, err := s.receiptRepo.GenerateReceiptNumber(ctx, receiptType)
	if err != nil {
		return nil, err
	}

	receipt, err := procurement.NewReceipt(receiptNumber, receiptType, report, req.GeneratedBy, req.Remarks)
	if err != nil {
		return nil, err
	}

	if err := s.receiptRepo.Save(ctx, receipt); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, receipt)

	s.logger.Info("Receipt issued",
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.String("order_number", receipt.OrderNumber),
		zap.String("type", receipt.Type.String()))

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// GetByID retrieves a receipt by ID
func (s *ReceiptService) GetByID(ctx context.Context, receiptID uuid.UUID) (*ReceiptResponse, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	response := ToReceiptResponse(receipt)
	return &response, nil
}

// GetByOrderID retrieves all receipts issued for an order
func (s *ReceiptService) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]ReceiptResponse, error) {
	receipts, err := s.receiptRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return ToReceiptResponses(receipts), nil
}

// List retrieves a list of receipts with filtering and pagination
func (s *ReceiptService) List(ctx context.Context, filter ReceiptListFilter) ([]ReceiptResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}

	receipts, err := s.receiptRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.receiptRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToReceiptResponses(receipts), total, nil
}

func (s *ReceiptService) publishEvents(ctx context.Context, receipt *procurement.Receipt) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, receipt.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish receipt events",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err))
	}
	receipt.ClearDomainEvents()
}
