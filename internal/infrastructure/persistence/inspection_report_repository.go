package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInspectionReportRepository implements InspectionReportRepository using GORM
type GormInspectionReportRepository struct {
	db *gorm.DB
}

// NewGormInspectionReportRepository creates a new GormInspectionReportRepository
func NewGormInspectionReportRepository(db *gorm.DB) *GormInspectionReportRepository {
	return &GormInspectionReportRepository{db: db}
}

// FindByID finds a report with its items by ID
func (r *GormInspectionReportRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.InspectionReport, error) {
	var report procurement.InspectionReport
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("serial_no ASC") }).
		First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindByOrderID finds the report of an order, shared.ErrNotFound when absent
func (r *GormInspectionReportRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*procurement.InspectionReport, error) {
	var report procurement.InspectionReport
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("serial_no ASC") }).
		First(&report, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}

// FindAll finds all reports matching the filter
func (r *GormInspectionReportRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.InspectionReport, error) {
	var reports []procurement.InspectionReport
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.InspectionReport{}), filter).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("serial_no ASC") })

	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

// Save creates or updates a report with its items
func (r *GormInspectionReportRepository) Save(ctx context.Context, report *procurement.InspectionReport) error {
	return translateSaveError(r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(report).Error)
}

// SaveWithOrder persists the report and the order's status change in one
// transaction. Either both land or neither does.
func (r *GormInspectionReportRepository) SaveWithOrder(ctx context.Context, report *procurement.InspectionReport, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(report).Error; err != nil {
			return translateSaveError(err)
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
}

// Delete deletes a report and its items
func (r *GormInspectionReportRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&procurement.InspectionReportItem{}, "report_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&procurement.InspectionReport{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts reports matching the filter
func (r *GormInspectionReportRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&procurement.InspectionReport{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderID checks if the order already has a report
func (r *GormInspectionReportRepository) ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.InspectionReport{}).
		Where("order_id = ?", orderID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateReportNumber generates the next sequential report number for
// the day, formatted as QC-YYYYMMDD-NNNN
func (r *GormInspectionReportRepository) GenerateReportNumber(ctx context.Context) (string, error) {
	return generateDailyNumber(ctx, r.db, &procurement.InspectionReport{}, "report_number", "QC")
}

func (r *GormInspectionReportRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, InspectionReportSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

func (r *GormInspectionReportRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(report_number) LIKE ? OR LOWER(order_number) LIKE ? OR LOWER(supplier_name) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "result":
			query = query.Where("result = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

// Ensure GormInspectionReportRepository implements InspectionReportRepository
var _ procurement.InspectionReportRepository = (*GormInspectionReportRepository)(nil)
