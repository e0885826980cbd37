package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nasda/nasda/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// foreignKeyViolationCode is the PostgreSQL error code for foreign key violations
	foreignKeyViolationCode = "23503"

	// checkViolationCode is the PostgreSQL error code for check constraint violations
	checkViolationCode = "23514"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// uniqueConstraintErrors maps the named unique constraints and indexes of the
// schema to the store error reported when they are violated.
var uniqueConstraintErrors = map[string]error{
	"uq_users_login_id":             store.ErrLoginIDExists,
	"uq_users_email":                store.ErrEmailExists,
	"uq_categories_name":            store.ErrCategoryNameExists,
	"uq_sticker_categories_name":    store.ErrStickerCategoryNameExists,
	"uq_post_images_representative": store.ErrRepresentativeImageExists,
}

// MapError maps a database error to an appropriate store error.
// It wraps the original error to preserve context for debugging.
// Errors without a specific mapping are returned unchanged.
func MapError(err error) error {
	if mapped, ok := mapKnownError(err); ok {
		return mapped
	}
	return err
}

// mapKnownError reports whether err has a store-level meaning and, if so,
// returns the store error wrapping it.
func mapKnownError(err error) (error, bool) {
	if err == nil {
		return nil, false
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err), true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil, false
	}

	switch pgErr.Code {
	case uniqueViolationCode:
		if specific, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
			return fmt.Errorf("%w: %v", specific, err), true
		}
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err), true
	case foreignKeyViolationCode:
		return fmt.Errorf(
			"%w: foreign key violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		), true
	case checkViolationCode:
		return fmt.Errorf(
			"%w: check constraint violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ConstraintName,
			err,
		), true
	case notNullViolationCode:
		return fmt.Errorf(
			"%w: not null violation (%s): %v",
			store.ErrInvalidEntity,
			pgErr.ColumnName,
			err,
		), true
	}

	return nil, false
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsForeignKeyViolation checks if the given error is a PostgreSQL foreign key constraint violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// IsCheckConstraintViolation checks if the given error is a PostgreSQL check constraint violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// IsNotNullViolation checks if the given error is a PostgreSQL not null constraint violation.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// errorDetail returns the DETAIL field of a Postgres error, which names the
// offending key value for constraint violations. It is empty for other errors.
func errorDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Detail
	}
	return ""
}

// CheckRowsAffected examines the number of rows affected by an UPDATE or
// DELETE. If no rows were affected it returns notFound, which should be
// (or wrap) store.ErrNotFound.
func CheckRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		if notFound == nil {
			return store.ErrNotFound
		}
		return notFound
	}

	return nil
}

// wrapDBError maps constraint violations to store errors and wraps anything
// else in a *store.StoreError so callers see which operation failed.
func wrapDBError(entity, operation string, err error) error {
	if err == nil {
		return nil
	}
	if mapped, ok := mapKnownError(err); ok {
		return mapped
	}
	return store.NewStoreError(entity, operation, "database error", err)
}
