package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/moringa/darasa-api/utils/apperrors"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err came from a unique or primary key
// constraint. Works with TranslateError enabled or disabled.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// TranslateError maps store errors onto the application error kinds.
// Errors that are already typed pass through untouched.
func TranslateError(err error, notFoundMsg, conflictMsg string) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(notFoundMsg)
	case IsUniqueViolation(err):
		return apperrors.Conflict(conflictMsg).Wrap(err)
	default:
		return apperrors.Internal(err)
	}
}
