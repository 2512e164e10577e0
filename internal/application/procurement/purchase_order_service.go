package procurement

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/catalog"
	"github.com/pharmaflow/backend/internal/domain/partner"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PurchaseOrderService handles purchase order business operations
type PurchaseOrderService struct {
	orderRepo    procurement.PurchaseOrderRepository
	reportRepo   procurement.InspectionReportRepository
	supplierRepo partner.SupplierRepository
	productRepo  catalog.ProductRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	orderRepo procurement.PurchaseOrderRepository,
	reportRepo procurement.InspectionReportRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	eventBus shared.EventBus,
	logger *zap.Logger,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		reportRepo:   reportRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a new purchase order. The channel is taken from the
// supplier's type and must match the term set the request provides.
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}

	drafts, err := s.resolveDrafts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	orderNumber, err := s.orderRepo.GenerateOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	var order *procurement.PurchaseOrder
	switch {
	case supplier.IsLocal():
		if req.LocalTerms == nil || req.ImportTerms != nil {
			return nil, shared.NewDomainError("TERMS_MISMATCH", "Local supplier orders require local terms only")
		}
		terms := procurement.LocalTerms{
			PaymentTerms: req.LocalTerms.PaymentTerms,
			Station:      req.LocalTerms.Station,
			TaxPercent:   req.LocalTerms.TaxPercent,
		}
		order, err = procurement.NewLocalPurchaseOrder(orderNumber, supplier.ID, supplier.Name, terms, drafts)
	case supplier.IsImport():
		if req.ImportTerms == nil || req.LocalTerms != nil {
			return nil, shared.NewDomainError("TERMS_MISMATCH", "Import supplier orders require import terms only")
		}
		terms := procurement.ImportTerms{
			PaymentTerms:   req.ImportTerms.PaymentTerms,
			Origin:         req.ImportTerms.Origin,
			PaymentType:    procurement.PaymentType(req.ImportTerms.PaymentType),
			DispatchedFrom: req.ImportTerms.DispatchedFrom,
			DispatchedIn:   req.ImportTerms.DispatchedIn,
			ValidityIndent: req.ImportTerms.ValidityIndent,
		}
		order, err = procurement.NewImportPurchaseOrder(orderNumber, supplier.ID, supplier.Name, terms, drafts)
	default:
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier has no valid type")
	}
	if err != nil {
		return nil, err
	}

	if req.Remarks != "" {
		if err := order.SetRemarks(req.Remarks); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, &order.BaseAggregateRoot, order.GetDomainEvents())

	s.logger.Info("Purchase order created",
		zap.String("order_number", order.OrderNumber),
		zap.String("channel", order.Channel.String()))

	response := ToPurchaseOrderResponse(order)
	return &response, nil
}

// resolveDrafts turns request rows into item drafts, resolving product
// names from the catalog. Rows without a product reference pass through
// unresolved and are filtered by the order itself.
func (s *PurchaseOrderService) resolveDrafts(ctx context.Context, items []OrderItemRequest) ([]procurement.ItemDraft, error) {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.ProductID != uuid.Nil {
			ids = append(ids, item.ProductID)
		}
	}

	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) > 0 {
		products, err := s.productRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range products {
			names[products[i].ID] = products[i].Name
		}
	}

	drafts := make([]procurement.ItemDraft, 0, len(items))
	for _, item := range items {
		name, known := names[item.ProductID]
		if item.ProductID != uuid.Nil && !known {
			return nil, shared.NewDomainError("UNKNOWN_PRODUCT", "Order references a product that does not exist")
		}
		drafts = append(drafts, procurement.ItemDraft{
			ProductID:   item.ProductID,
			ProductName: name,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}

	return drafts, nil
}

// GetByID retrieves an order by ID. When the order has been inspected
// the report is attached; a pending order carries no inspection field.
func (s *PurchaseOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToPurchaseOrderResponse(order)

	report, err := s.reportRepo.FindByOrderID(ctx, orderID)
	switch {
	case err == nil:
		inspection := ToInspectionReportResponse(report)
		response.Inspection = &inspection
	case errors.Is(err, shared.ErrNotFound):
		// No report yet, the field stays absent
	default:
		return nil, err
	}

	return &response, nil
}

// List retrieves a list of orders with filtering and pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter PurchaseOrderListFilter) ([]PurchaseOrderResponse, int64, error) {
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
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var (
		orders []procurement.PurchaseOrder
		err    error
	)
	switch {
	case filter.SupplierID != "":
		supplierID, parseErr := uuid.Parse(filter.SupplierID)
		if parseErr != nil {
			return nil, 0, shared.NewDomainError("INVALID_INPUT", "Invalid supplier ID")
		}
		domainFilter.Filters["supplier_id"] = supplierID
		orders, err = s.orderRepo.FindBySupplier(ctx, supplierID, domainFilter)
	case filter.Channel != "":
		domainFilter.Filters["channel"] = filter.Channel
		orders, err = s.orderRepo.FindByChannel(ctx, procurement.Channel(filter.Channel), domainFilter)
	default:
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPurchaseOrderResponses(orders), total, nil
}

// Delete deletes a pending order. Inspected orders are part of the QC
// record and cannot be removed.
func (s *PurchaseOrderService) Delete(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_STATE", "Inspected orders cannot be deleted")
	}

	return s.orderRepo.Delete(ctx, orderID)
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, root *shared.BaseAggregateRoot, events []shared.DomainEvent) {
	if s.eventBus == nil || len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish order events", zap.Error(err))
	}
	root.ClearDomainEvents()
}
