package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/store"
)

const (
	stickerColumns = `id, sticker_category_id, name, image_url, created_at, updated_at`

	insertStickerQuery = `
		INSERT INTO stickers (id, sticker_category_id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	updateStickerQuery = `
		UPDATE stickers
		SET sticker_category_id = $1, name = $2, image_url = $3, updated_at = $4
		WHERE id = $5
	`
	findStickerByIDQuery        = `SELECT ` + stickerColumns + ` FROM stickers WHERE id = $1`
	findStickersByCategoryQuery = `SELECT ` + stickerColumns + ` FROM stickers WHERE sticker_category_id = $1 ORDER BY name, id`
	existsStickerQuery          = `SELECT EXISTS(SELECT 1 FROM stickers WHERE id = $1)`
	deleteStickerQuery          = `DELETE FROM stickers WHERE id = $1`
)

// PostgresStickerStore implements the store.StickerStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStickerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStickerStore creates a new PostgreSQL implementation of the StickerStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStickerStore(db store.DBTX, logger *slog.Logger) *PostgresStickerStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresStickerStore{
		db:     db,
		logger: newStoreLogger(logger, "sticker_store"),
	}
}

// Ensure PostgresStickerStore implements store.StickerStore interface
var _ store.StickerStore = (*PostgresStickerStore)(nil)

// Save implements store.StickerStore.Save
func (s *PostgresStickerStore) Save(ctx context.Context, sticker *domain.Sticker) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := sticker.Validate(); err != nil {
		log.Debug("sticker validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()

	if sticker.ID != uuid.Nil {
		result, err := s.db.ExecContext(ctx, updateStickerQuery,
			sticker.StickerCategoryID, sticker.Name, sticker.ImageURL, now, sticker.ID)
		if err != nil {
			log.Debug("failed to update sticker",
				slog.String("error", err.Error()),
				slog.String("sticker_id", sticker.ID.String()))
			return wrapDBError("sticker", "save", err)
		}
		if err := CheckRowsAffected(result, store.ErrStickerNotFound); err != nil {
			return err
		}
		sticker.UpdatedAt = now
		return nil
	}

	id := uuid.New()
	createdAt := sticker.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, insertStickerQuery,
		id, sticker.StickerCategoryID, sticker.Name, sticker.ImageURL, createdAt, now)
	if err != nil {
		log.Debug("failed to insert sticker",
			slog.String("error", err.Error()),
			slog.String("sticker_category_id", sticker.StickerCategoryID.String()))
		return wrapDBError("sticker", "save", err)
	}

	sticker.ID = id
	sticker.CreatedAt = createdAt
	sticker.UpdatedAt = now
	return nil
}

// FindByID implements store.StickerStore.FindByID
func (s *PostgresStickerStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sticker, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sticker, err := scanSticker(s.db.QueryRowContext(ctx, findStickerByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("sticker not found", slog.String("sticker_id", id.String()))
			return nil, nil
		}
		return nil, wrapDBError("sticker", "find_by_id", err)
	}
	return sticker, nil
}

// FindByCategoryID implements store.StickerStore.FindByCategoryID
func (s *PostgresStickerStore) FindByCategoryID(
	ctx context.Context,
	categoryID uuid.UUID,
) ([]*domain.Sticker, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, findStickersByCategoryQuery, categoryID)
	if err != nil {
		log.Error("failed to query stickers",
			slog.String("sticker_category_id", categoryID.String()),
			slog.String("error", err.Error()))
		return nil, wrapDBError("sticker", "find_by_category_id", err)
	}
	defer closeRows(rows, log)

	stickers := []*domain.Sticker{}
	for rows.Next() {
		sticker, err := scanSticker(rows)
		if err != nil {
			return nil, wrapDBError("sticker", "find_by_category_id", err)
		}
		stickers = append(stickers, sticker)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("sticker", "find_by_category_id", err)
	}

	return stickers, nil
}

// ExistsByID implements store.StickerStore.ExistsByID
func (s *PostgresStickerStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsStickerQuery, id)
	if err != nil {
		return false, wrapDBError("sticker", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.StickerStore.DeleteByID
func (s *PostgresStickerStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteStickerQuery, id); err != nil {
		log.Debug("failed to delete sticker",
			slog.String("error", err.Error()),
			slog.String("sticker_id", id.String()))
		return wrapDBError("sticker", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.StickerStore.WithTx
func (s *PostgresStickerStore) WithTx(tx *sql.Tx) store.StickerStore {
	return &PostgresStickerStore{db: tx, logger: s.logger}
}

func scanSticker(row rowScanner) (*domain.Sticker, error) {
	var sticker domain.Sticker
	err := row.Scan(
		&sticker.ID,
		&sticker.StickerCategoryID,
		&sticker.Name,
		&sticker.ImageURL,
		&sticker.CreatedAt,
		&sticker.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sticker, nil
}
