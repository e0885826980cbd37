package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// PostDecorationStore defines the interface for post decoration persistence.
//
// Every read returns decorations with their Sticker resolved in the same
// query, ordered by creation time and then ID.
type PostDecorationStore interface {
	// Save inserts the decoration when its ID is empty, assigning a new ID
	// that is never reused, and updates placement and z-index otherwise.
	// Returns ErrInvalidEntity if the image, user or sticker does not exist.
	// Returns ErrDecorationNotFound when updating a missing decoration.
	Save(ctx context.Context, decoration *domain.PostDecoration) error

	// FindByID returns the decoration, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PostDecoration, error)

	// FindByImage returns every decoration placed on the image.
	FindByImage(ctx context.Context, imageID uuid.UUID) ([]*domain.PostDecoration, error)

	// FindByPostID returns every decoration placed on any image of the post.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.PostDecoration, error)

	// FindByUserID returns every decoration the user has placed.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.PostDecoration, error)

	// CountByUserAndImage returns how many decorations the user has placed on
	// the image. It has no side effects; callers use it to cap repeated
	// placements.
	CountByUserAndImage(ctx context.Context, userID, imageID uuid.UUID) (int64, error)

	// CountByImage returns how many decorations the image carries.
	CountByImage(ctx context.Context, imageID uuid.UUID) (int64, error)

	// NextZIndex returns one above the highest z-index on the image, or 0
	// when the image carries no decorations.
	NextZIndex(ctx context.Context, imageID uuid.UUID) (int, error)

	// LockImage takes a row lock on the post image that is held until the
	// surrounding transaction ends, serializing placements on the image.
	// Returns ErrPostImageNotFound if the image does not exist. Must be
	// called on a store bound to a transaction.
	LockImage(ctx context.Context, imageID uuid.UUID) error

	// UpdateSingleSticker overwrites the position, scale and rotation of one
	// decoration in a single statement. A missing ID is a no-op.
	UpdateSingleSticker(ctx context.Context, id uuid.UUID, x, y, scale, rotation float64) error

	// DeleteByPostID removes every decoration on any image of the post in a
	// single statement.
	DeleteByPostID(ctx context.Context, postID uuid.UUID) error

	// ExistsByID reports whether a decoration with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the decoration. Deleting a missing ID is a no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PostDecorationStore that runs its statements in tx.
	WithTx(tx *sql.Tx) PostDecorationStore
}
