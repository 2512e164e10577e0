package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/catalog"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newProductService(repo *mockProductRepository) *ProductService {
	return NewProductService(repo, nil, zap.NewNop())
}

func TestProductServiceCreate(t *testing.T) {
	t.Run("creates a product with optional fields", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

		service := newProductService(repo)
		resp, err := service.Create(context.Background(), CreateProductRequest{
			Name:         "Paracetamol 500mg",
			Manufacturer: "GSK",
			Unit:         "carton",
		})

		require.NoError(t, err)
		assert.Equal(t, "Paracetamol 500mg", resp.Name)
		assert.Equal(t, "GSK", resp.Manufacturer)
		assert.Equal(t, "carton", resp.Unit)
		repo.AssertExpectations(t)
	})

	t.Run("empty name fails before save", func(t *testing.T) {
		repo := new(mockProductRepository)

		service := newProductService(repo)
		_, err := service.Create(context.Background(), CreateProductRequest{Name: "   "})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save")
	})
}

func TestProductServiceUpdate(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		existing, err := catalog.NewProduct("Paracetamol 500mg")
		require.NoError(t, err)
		require.NoError(t, existing.SetManufacturer("GSK"))

		repo := new(mockProductRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		hsCode := "3004.9099"
		service := newProductService(repo)
		resp, err := service.Update(context.Background(), existing.ID, UpdateProductRequest{HSCode: &hsCode})

		require.NoError(t, err)
		assert.Equal(t, hsCode, resp.HSCode)
		assert.Equal(t, "GSK", resp.Manufacturer)
	})

	t.Run("missing product maps to not found", func(t *testing.T) {
		repo := new(mockProductRepository)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		service := newProductService(repo)
		_, err := service.Update(context.Background(), uuid.New(), UpdateProductRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductServiceList(t *testing.T) {
	product, err := catalog.NewProduct("Ibuprofen 200mg")
	require.NoError(t, err)

	repo := new(mockProductRepository)
	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 && f.Search == "ibu"
	})).Return([]catalog.Product{*product}, nil)
	repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

	service := newProductService(repo)
	responses, total, err := service.List(context.Background(), ProductListFilter{Search: "ibu"})

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, responses, 1)
	assert.Equal(t, "Ibuprofen 200mg", responses[0].Name)
}
