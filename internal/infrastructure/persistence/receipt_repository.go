package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/procurement"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt by its ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.Receipt, error) {
	var receipt procurement.Receipt
	if err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByOrderID finds all receipts issued for an order
func (r *GormReceiptRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]procurement.Receipt, error) {
	var receipts []procurement.Receipt
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// FindAll finds all receipts matching the filter
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.Receipt, error) {
	var receipts []procurement.Receipt
	query := r.applyFilter(r.db.WithContext(ctx).Model(&procurement.Receipt{}), filter)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Save creates or updates a receipt
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *procurement.Receipt) error {
	return translateSaveError(r.db.WithContext(ctx).Save(receipt).Error)
}

// Delete deletes a receipt
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&procurement.Receipt{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts receipts matching the filter
func (r *GormReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&procurement.Receipt{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByOrderAndType checks if the order already has a receipt of the type
func (r *GormReceiptRepository) ExistsByOrderAndType(ctx context.Context, orderID uuid.UUID, receiptType procurement.ReceiptType) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Receipt{}).
		Where("order_id = ? AND type = ?", orderID, receiptType).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateReceiptNumber generates the next sequential receipt number for
// the day and type, formatted as RCP-ACC-YYYYMMDD-NNNN or RCP-REJ-YYYYMMDD-NNNN
func (r *GormReceiptRepository) GenerateReceiptNumber(ctx context.Context, receiptType procurement.ReceiptType) (string, error) {
	kind := "ACC"
	if receiptType == procurement.ReceiptTypeRejected {
		kind = "REJ"
	}
	dayPrefix := fmt.Sprintf("RCP-%s-%s-", kind, time.Now().Format("20060102"))

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.Receipt{}).
		Where("receipt_number LIKE ?", dayPrefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%04d", dayPrefix, count+1), nil
}

func (r *GormReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ReceiptSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(sortField + " " + sortOrder)

	return query
}

func (r *GormReceiptRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(receipt_number) LIKE ? OR LOWER(order_number) LIKE ? OR LOWER(supplier_name) LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "type":
			query = query.Where("type = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

// Ensure GormReceiptRepository implements ReceiptRepository
var _ procurement.ReceiptRepository = (*GormReceiptRepository)(nil)
