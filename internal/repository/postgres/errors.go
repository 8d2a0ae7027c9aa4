package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripbook/internal/repository"
)

// SQLSTATE foreign_key_violation.
const foreignKeyViolation = "23503"

// translateError maps gorm and driver errors onto repository sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrReferentialIntegrity) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}

	var pqErr *pq.Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		(errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation) {
		// The driver text names tables and constraints; keep it out of responses.
		zap.L().Warn("foreign key violation", zap.Error(err))
		return repository.ErrReferentialIntegrity
	}

	return err
}

// withReferences names the user and driver ids a rejected trip write
// pointed at.
func withReferences(err error, userID, driverID *uint) error {
	if !errors.Is(err, repository.ErrReferentialIntegrity) {
		return err
	}

	var refs []string
	if userID != nil {
		refs = append(refs, fmt.Sprintf("user %d", *userID))
	}
	if driverID != nil {
		refs = append(refs, fmt.Sprintf("driver %d", *driverID))
	}
	if len(refs) == 0 {
		return err
	}
	return fmt.Errorf("%s: %w", strings.Join(refs, " or "), err)
}

// affected returns ErrNotFound when a write touched no rows.
func affected(result *gorm.DB) error {
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
