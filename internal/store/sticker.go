package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
)

// StickerCategoryStore defines the interface for sticker category persistence.
type StickerCategoryStore interface {
	// Save inserts the category when its ID is empty and updates it otherwise.
	// Returns ErrStickerCategoryNameExists if the name is taken.
	// Returns ErrStickerCategoryNotFound when updating a missing category.
	Save(ctx context.Context, category *domain.StickerCategory) error

	// FindByID returns the category, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.StickerCategory, error)

	// FindActive returns the active sticker categories ordered by name.
	FindActive(ctx context.Context) ([]*domain.StickerCategory, error)

	// ExistsByID reports whether a sticker category with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the category. Deleting a missing category is a no-op.
	// Returns ErrInvalidEntity while stickers still belong to it.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a StickerCategoryStore that runs its statements in tx.
	WithTx(tx *sql.Tx) StickerCategoryStore
}

// StickerStore defines the interface for sticker persistence.
type StickerStore interface {
	// Save inserts the sticker when its ID is empty and updates it otherwise.
	// Returns ErrInvalidEntity when the sticker category does not exist.
	// Returns ErrStickerNotFound when updating a missing sticker.
	Save(ctx context.Context, sticker *domain.Sticker) error

	// FindByID returns the sticker, or nil if it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sticker, error)

	// FindByCategoryID returns the category's stickers ordered by name.
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Sticker, error)

	// ExistsByID reports whether a sticker with the ID exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteByID removes the sticker and every decoration that uses it.
	// Deleting a missing sticker is a no-op.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// WithTx returns a StickerStore that runs its statements in tx.
	WithTx(tx *sql.Tx) StickerStore
}
