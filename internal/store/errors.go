package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when an update targets an entity that does not
	// exist. Lookups never return it; they report absence as a nil entity.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would violate a uniqueness
	// rule (e.g., a user with the same login ID).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity references rows that do
	// not exist or breaks a check or not-null constraint. Check the wrapped
	// error for the constraint involved.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a transaction cannot begin or
	// commit.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	ErrUserNotFound            = fmt.Errorf("%w: user", ErrNotFound)
	ErrCategoryNotFound        = fmt.Errorf("%w: category", ErrNotFound)
	ErrPostNotFound            = fmt.Errorf("%w: post", ErrNotFound)
	ErrPostImageNotFound       = fmt.Errorf("%w: post image", ErrNotFound)
	ErrStickerCategoryNotFound = fmt.Errorf("%w: sticker category", ErrNotFound)
	ErrStickerNotFound         = fmt.Errorf("%w: sticker", ErrNotFound)
	ErrDecorationNotFound      = fmt.Errorf("%w: post decoration", ErrNotFound)

	// Entity-specific "duplicate" errors

	ErrLoginIDExists             = fmt.Errorf("%w: login ID", ErrDuplicate)
	ErrEmailExists               = fmt.Errorf("%w: email", ErrDuplicate)
	ErrCategoryNameExists        = fmt.Errorf("%w: category name", ErrDuplicate)
	ErrStickerCategoryNameExists = fmt.Errorf("%w: sticker category name", ErrDuplicate)

	// ErrRepresentativeImageExists is returned when a second image of the
	// same post is marked representative.
	ErrRepresentativeImageExists = fmt.Errorf("%w: representative image", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError is a custom error type for store-specific errors with additional context.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "post_decoration")
	Operation string // The operation that failed (e.g., "save", "delete_by_post")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
