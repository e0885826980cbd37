package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// PostImageStore defines the interface for post image persistence.
type PostImageStore interface {
	// Save inserts the image when its ID is empty and updates its URL, sort
	// order and representative flag otherwise.
	// Returns ErrRepresentativeImageExists if another image of the same post
	// is already representative.
	// Returns ErrPostImageNotFound when updating a missing image.
	Save(ctx context.Context, image *domain.PostImage) error

	// FindByID returns the image, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PostImage, error)

	// FindByPostID returns the post's images by ascending sort order.
	FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.PostImage, error)

	// FindRepresentative returns the post's representative image, or nil.
	FindRepresentative(ctx context.Context, postID uuid.UUID) (*domain.PostImage, error)

	// SetRepresentative makes the image the only representative image of its
	// post. It issues two statements and MUST run inside a transaction (see
	// RunInTransaction) so no reader sees a post without a thumbnail.
	// Returns ErrPostImageNotFound if the image does not exist.
	SetRepresentative(ctx context.Context, imageID uuid.UUID) error

	// ExistsByID reports whether an image with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the image and its decorations. Deleting a missing
	// image is a no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a PostImageStore that runs its statements in tx.
	WithTx(tx *sql.Tx) PostImageStore
}
