package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// CategoryStore defines the interface for post category persistence.
type CategoryStore interface {
	// Save inserts the category when its ID is empty and updates its name and
	// active flag otherwise.
	// Returns ErrCategoryNameExists if the name is taken.
	// Returns ErrCategoryNotFound when updating a missing category.
	Save(ctx context.Context, category *domain.Category) error

	// FindByID returns the category, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)

	// FindActive returns the active categories ordered by name.
	FindActive(ctx context.Context) ([]*domain.Category, error)

	// ExistsByID reports whether a category with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the category. Deleting a missing category is a no-op.
	// Returns ErrInvalidEntity while posts are still filed under it.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a CategoryStore that runs its statements in tx.
	WithTx(tx *sql.Tx) CategoryStore
}
