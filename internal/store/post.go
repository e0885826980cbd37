package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// PostStore defines the interface for post persistence.
type PostStore interface {
	// Save inserts the post when its ID is empty and updates its category,
	// title and content otherwise.
	// Returns ErrInvalidEntity when the user or category does not exist.
	// Returns ErrPostNotFound when updating a missing post.
	Save(ctx context.Context, post *domain.Post) error

	// FindByID returns the post, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)

	// FindByUserID returns the user's posts, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error)

	// FindByCategoryID returns the category's posts, newest first.
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Post, error)

	// ExistsByID reports whether a post with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the post together with its images and every
	// decoration on them. Deleting a missing post is a no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PostStore that runs its statements in tx.
	WithTx(tx *sql.Tx) PostStore
}
