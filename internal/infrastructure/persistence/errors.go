package persistence

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/pharmaflow/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// pq error code for unique_violation
const pqUniqueViolation = "23505"

// translateSaveError maps driver-level unique-index violations to the
// already-exists domain error. Application-level existence checks race
// with concurrent writers; the index is the authority, so the violation
// surfaces as a conflict rather than an internal error.
func translateSaveError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return shared.ErrAlreadyExists
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	// sqlite reports unique violations by message only
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return shared.ErrAlreadyExists
	}

	return err
}
