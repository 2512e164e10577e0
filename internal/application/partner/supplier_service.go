package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/partner"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
	eventBus     shared.EventBus
	logger       *zap.Logger
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository, eventBus shared.EventBus, logger *zap.Logger) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Create creates a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Supplier with this name already exists")
	}

	supplier, err := partner.NewSupplier(req.Name, partner.SupplierType(req.Type))
	if err != nil {
		return nil, err
	}

	if req.ContactPerson != "" || req.Phone != "" || req.Email != "" {
		if err := supplier.SetContact(req.ContactPerson, req.Phone, req.Email); err != nil {
			return nil, err
		}
	}
	if req.Address != "" || req.Country != "" {
		if err := supplier.SetAddress(req.Address, req.Country); err != nil {
			return nil, err
		}
	}
	if req.Remarks != "" {
		supplier.SetRemarks(req.Remarks)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves a list of suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
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

	var (
		suppliers []partner.Supplier
		err       error
	)
	if filter.Type != "" {
		suppliers, err = s.supplierRepo.FindByType(ctx, partner.SupplierType(filter.Type), domainFilter)
		domainFilter.Filters["type"] = filter.Type
	} else {
		suppliers, err = s.supplierRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.supplierRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSupplierResponses(suppliers), total, nil
}

// Update updates a supplier
func (s *SupplierService) Update(ctx context.Context, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil && *req.Type != supplier.Type.String() {
		if err := supplier.ChangeType(partner.SupplierType(*req.Type)); err != nil {
			return nil, err
		}
	}

	if req.Name != nil {
		if err := supplier.Update(*req.Name); err != nil {
			return nil, err
		}
	}

	if req.ContactPerson != nil || req.Phone != nil || req.Email != nil {
		contactPerson := supplier.ContactPerson
		phone := supplier.Phone
		email := supplier.Email
		if req.ContactPerson != nil {
			contactPerson = *req.ContactPerson
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if err := supplier.SetContact(contactPerson, phone, email); err != nil {
			return nil, err
		}
	}

	if req.Address != nil || req.Country != nil {
		address := supplier.Address
		country := supplier.Country
		if req.Address != nil {
			address = *req.Address
		}
		if req.Country != nil {
			country = *req.Country
		}
		if err := supplier.SetAddress(address, country); err != nil {
			return nil, err
		}
	}

	if req.Remarks != nil {
		supplier.SetRemarks(*req.Remarks)
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, supplier)

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete deletes a supplier
func (s *SupplierService) Delete(ctx context.Context, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return err
	}

	return s.supplierRepo.Delete(ctx, supplierID)
}

// publishEvents drains the aggregate's pending events onto the bus.
// Failures are logged, not returned; the write already committed.
func (s *SupplierService) publishEvents(ctx context.Context, supplier *partner.Supplier) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, supplier.GetDomainEvents()...); err != nil {
		s.logger.Error("Failed to publish supplier events",
			zap.String("supplier_id", supplier.ID.String()),
			zap.Error(err))
	}
	supplier.ClearDomainEvents()
}
