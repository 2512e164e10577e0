package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/pharmaflow/backend/internal/domain/partner"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTranslateSaveError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{"nil passes through", nil, nil},
		{"pq unique violation", &pq.Error{Code: pqUniqueViolation}, shared.ErrAlreadyExists},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, shared.ErrAlreadyExists},
		{"sqlite unique violation", errors.New("UNIQUE constraint failed: receipts.receipt_number"), shared.ErrAlreadyExists},
		{"pq foreign key violation passes through", &pq.Error{Code: "23503"}, &pq.Error{Code: "23503"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := translateSaveError(tt.input)
			if tt.expected == nil {
				assert.NoError(t, result)
				return
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestSaveTranslatesUniqueViolation(t *testing.T) {
	repo, mock, mockDB := newMockSupplierRepository(t)
	defer mockDB.Close()

	supplier, err := partner.NewSupplier("Medipak Ltd", partner.SupplierTypeLocal)
	require.NoError(t, err)

	mock.ExpectExec(`UPDATE "suppliers" SET`).
		WillReturnError(&pq.Error{Code: pqUniqueViolation, Constraint: "idx_suppliers_name"})

	err = repo.Save(context.Background(), supplier)

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
