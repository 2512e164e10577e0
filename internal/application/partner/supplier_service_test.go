package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pharmaflow/backend/internal/domain/partner"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockSupplierRepository struct {
	mock.Mock
}

func (m *mockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepository) FindByType(ctx context.Context, supplierType partner.SupplierType, filter shared.Filter) ([]partner.Supplier, error) {
	args := m.Called(ctx, supplierType, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Supplier), args.Error(1)
}

func (m *mockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *mockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func newSupplierService(repo *mockSupplierRepository) *SupplierService {
	return NewSupplierService(repo, nil, zap.NewNop())
}

func TestSupplierServiceCreate(t *testing.T) {
	t.Run("creates a local supplier", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		repo.On("ExistsByName", mock.Anything, "Medipak Ltd").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Supplier")).Return(nil)

		service := newSupplierService(repo)
		resp, err := service.Create(context.Background(), CreateSupplierRequest{
			Name:          "Medipak Ltd",
			Type:          "local",
			ContactPerson: "Ahmed Khan",
			Phone:         "+92-42-1234567",
		})

		require.NoError(t, err)
		assert.Equal(t, "Medipak Ltd", resp.Name)
		assert.Equal(t, "local", resp.Type)
		assert.Equal(t, "Ahmed Khan", resp.ContactPerson)
		repo.AssertExpectations(t)
	})

	t.Run("rejects a duplicate name", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		repo.On("ExistsByName", mock.Anything, "Medipak Ltd").Return(true, nil)

		service := newSupplierService(repo)
		_, err := service.Create(context.Background(), CreateSupplierRequest{
			Name: "Medipak Ltd",
			Type: "local",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		repo.On("ExistsByName", mock.Anything, "Medipak Ltd").Return(false, nil)

		service := newSupplierService(repo)
		_, err := service.Create(context.Background(), CreateSupplierRequest{
			Name: "Medipak Ltd",
			Type: "overseas",
		})

		assert.Error(t, err)
	})
}

func TestSupplierServiceUpdate(t *testing.T) {
	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		existing, err := partner.NewSupplier("Medipak Ltd", partner.SupplierTypeLocal)
		require.NoError(t, err)
		require.NoError(t, existing.SetContact("Ahmed Khan", "+92-42-1234567", ""))

		repo := new(mockSupplierRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		phone := "+92-42-7654321"
		service := newSupplierService(repo)
		resp, err := service.Update(context.Background(), existing.ID, UpdateSupplierRequest{Phone: &phone})

		require.NoError(t, err)
		assert.Equal(t, phone, resp.Phone)
		assert.Equal(t, "Ahmed Khan", resp.ContactPerson)
		repo.AssertExpectations(t)
	})

	t.Run("type change is rejected as immutable", func(t *testing.T) {
		existing, err := partner.NewSupplier("Medipak Ltd", partner.SupplierTypeLocal)
		require.NoError(t, err)

		repo := new(mockSupplierRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)

		newType := "import"
		service := newSupplierService(repo)
		_, err = service.Update(context.Background(), existing.ID, UpdateSupplierRequest{Type: &newType})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TYPE_IMMUTABLE", domainErr.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("restating the current type is a no-op", func(t *testing.T) {
		existing, err := partner.NewSupplier("Medipak Ltd", partner.SupplierTypeLocal)
		require.NoError(t, err)

		repo := new(mockSupplierRepository)
		repo.On("FindByID", mock.Anything, existing.ID).Return(existing, nil)
		repo.On("Save", mock.Anything, existing).Return(nil)

		sameType := "local"
		service := newSupplierService(repo)
		resp, err := service.Update(context.Background(), existing.ID, UpdateSupplierRequest{Type: &sameType})

		require.NoError(t, err)
		assert.Equal(t, "local", resp.Type)
		repo.AssertExpectations(t)
	})

	t.Run("missing supplier maps to not found", func(t *testing.T) {
		repo := new(mockSupplierRepository)
		repo.On("FindByID", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)

		service := newSupplierService(repo)
		_, err := service.Update(context.Background(), uuid.New(), UpdateSupplierRequest{})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestSupplierServiceList(t *testing.T) {
	t.Run("applies pagination defaults", func(t *testing.T) {
		supplier, err := partner.NewSupplier("Medipak Ltd", partner.SupplierTypeLocal)
		require.NoError(t, err)

		repo := new(mockSupplierRepository)
		repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == 20
		})).Return([]partner.Supplier{*supplier}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		service := newSupplierService(repo)
		responses, total, err := service.List(context.Background(), SupplierListFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, responses, 1)
	})

	t.Run("filters by type", func(t *testing.T) {
		supplier, err := partner.NewSupplier("Sinopharm Intl", partner.SupplierTypeImport)
		require.NoError(t, err)

		repo := new(mockSupplierRepository)
		repo.On("FindByType", mock.Anything, partner.SupplierTypeImport, mock.Anything).
			Return([]partner.Supplier{*supplier}, nil)
		repo.On("Count", mock.Anything, mock.Anything).Return(int64(1), nil)

		service := newSupplierService(repo)
		responses, _, err := service.List(context.Background(), SupplierListFilter{Type: "import"})

		require.NoError(t, err)
		require.Len(t, responses, 1)
		assert.Equal(t, "import", responses[0].Type)
	})
}
