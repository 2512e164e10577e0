package procurement

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InspectionService handles quality control report operations
type InspectionService struct {
	reportRepo procurement.InspectionReportRepository
	orderRepo  procurement.PurchaseOrderRepository
	eventBus   shared.EventBus
	logger     *zap.Logger
}

// NewInspectionService creates a new InspectionService
func NewInspectionService(
	reportRepo procurement.InspectionReportRepository,
	orderRepo procurement.PurchaseOrderRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *InspectionService {
	return &InspectionService{
		reportRepo: reportRepo,
		orderRepo:  orderRepo,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Create submits a QC report for a pending order. The report and the
// order's terminal status are persisted in one transaction so a crash
// cannot leave an inspected order still pending.
func (s *InspectionService) Create(ctx context.Context, req CreateInspectionReportRequest) (*InspectionReportResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reportRepo.ExistsByOrderID(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Order already has an inspection report")
	}

	reportNumber, err := s.reportRepo.GenerateReportNumber(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]procurement.InspectionItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, procurement.InspectionItemInput{
			OrderItemID:     item.OrderItemID,
			AcceptedQty:     item.AcceptedQty,
			RejectedQty:     item.RejectedQty,
			RejectionReason: item.RejectionReason,
		})
	}

	report, err := procurement.NewInspectionReport(reportNumber, order, inputs, req.InspectedBy, req.Remarks)
	if err != nil {
		return nil, err
	}

	if err := order.ApplyInspectionOutcome(report.TotalRejectedQty()); err != nil {
		return nil, err
	}

	if err := s.reportRepo.SaveWithOrder(ctx, report, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, report.GetDomainEvents())
	report.ClearDomainEvents()
	s.publishEvents(ctx, order.GetDomainEvents())
	order.ClearDomainEvents()

	s.logger.Info("Inspection report submitted",
		zap.String("report_number", report.ReportNumber),
		zap.String("order_number", order.OrderNumber),
		zap.String("result", report.Result.String()),
		zap.String("order_status", order.Status.String()))

	response := ToInspectionReportResponse(report)
	return &response, nil
}

// GetByID retrieves a report by ID
func (s *InspectionService) GetByID(ctx context.Context, reportID uuid.UUID) (*InspectionReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, reportID)
	if err != nil {
		return nil, err
	}

	response := ToInspectionReportResponse(report)
	return &response, nil
}

// GetByOrderID retrieves the report submitted for an order,
// shared.ErrNotFound when the order has not been inspected yet
func (s *InspectionService) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*InspectionReportResponse, error) {
	report, err := s.reportRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToInspectionReportResponse(report)
	return &response, nil
}

// List retrieves a list of reports with filtering and pagination
func (s *InspectionService) List(ctx context.Context, filter InspectionReportListFilter) ([]InspectionReportResponse, int64, error) {
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
	if filter.Result != "" {
		domainFilter.Filters["result"] = filter.Result
	}

	reports, err := s.reportRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.reportRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToInspectionReportResponses(reports), total, nil
}

func (s *InspectionService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish inspection events", zap.Error(err))
	}
}
