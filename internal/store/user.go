package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Save inserts the user when its ID is empty, assigning a new ID, and
	// updates it otherwise. Inserting hashes the plaintext Password and clears
	// it; the plaintext is never stored. Updates only change Role and Status.
	// Returns ErrLoginIDExists or ErrEmailExists on uniqueness conflicts.
	// Returns ErrUserNotFound when updating a user that does not exist.
	Save(ctx context.Context, user *domain.User) error

	// FindByID returns the user, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// FindByLoginID returns the user with the given login ID, or nil.
	FindByLoginID(ctx context.Context, loginID string) (*domain.User, error)

	// FindByEmail returns the user with the given email, or nil.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByID reports whether a user with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the user. Deleting a missing user is a no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore that runs its statements in tx.
	WithTx(tx *sql.Tx) UserStore
}
