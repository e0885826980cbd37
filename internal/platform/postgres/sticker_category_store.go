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
	stickerCategoryColumns = `id, name, is_active, created_at, updated_at`

	insertStickerCategoryQuery = `
		INSERT INTO sticker_categories (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	updateStickerCategoryQuery = `
		UPDATE sticker_categories
		SET name = $1, is_active = $2, updated_at = $3
		WHERE id = $4
	`
	findStickerCategoryByIDQuery   = `SELECT ` + stickerCategoryColumns + ` FROM sticker_categories WHERE id = $1`
	findActiveStickerCategoryQuery = `SELECT ` + stickerCategoryColumns + ` FROM sticker_categories WHERE is_active ORDER BY name`
	existsStickerCategoryQuery     = `SELECT EXISTS(SELECT 1 FROM sticker_categories WHERE id = $1)`
	deleteStickerCategoryQuery     = `DELETE FROM sticker_categories WHERE id = $1`
)

// PostgresStickerCategoryStore implements the store.StickerStickerCategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresStickerCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStickerCategoryStore creates a new PostgreSQL implementation of the StickerCategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStickerCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresStickerCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresStickerCategoryStore{
		db:     db,
		logger: newStoreLogger(logger, "sticker_category_store"),
	}
}

// Ensure PostgresStickerCategoryStore implements store.StickerStickerCategoryStore interface
var _ store.StickerCategoryStore = (*PostgresStickerCategoryStore)(nil)

// Save implements store.StickerCategoryStore.Save
func (s *PostgresStickerCategoryStore) Save(ctx context.Context, category *domain.StickerCategory) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Debug("sticker category validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()

	if category.ID != uuid.Nil {
		result, err := s.db.ExecContext(ctx, updateStickerCategoryQuery,
			category.Name, category.IsActive, now, category.ID)
		if err != nil {
			log.Debug("failed to update sticker category",
				slog.String("error", err.Error()),
				slog.String("sticker_category_id", category.ID.String()))
			return wrapDBError("sticker_category", "save", err)
		}
		if err := CheckRowsAffected(result, store.ErrStickerCategoryNotFound); err != nil {
			return err
		}
		category.UpdatedAt = now
		return nil
	}

	id := uuid.New()
	createdAt := category.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, insertStickerCategoryQuery,
		id, category.Name, category.IsActive, createdAt, now)
	if err != nil {
		log.Debug("failed to insert sticker category",
			slog.String("error", err.Error()),
			slog.String("name", category.Name))
		return wrapDBError("sticker_category", "save", err)
	}

	category.ID = id
	category.CreatedAt = createdAt
	category.UpdatedAt = now
	return nil
}

// FindByID implements store.StickerCategoryStore.FindByID
func (s *PostgresStickerCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.StickerCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := scanStickerCategory(s.db.QueryRowContext(ctx, findStickerCategoryByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("sticker category not found", slog.String("sticker_category_id", id.String()))
			return nil, nil
		}
		return nil, wrapDBError("sticker_category", "find_by_id", err)
	}
	return category, nil
}

// FindActive implements store.StickerCategoryStore.FindActive
func (s *PostgresStickerCategoryStore) FindActive(ctx context.Context) ([]*domain.StickerCategory, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, findActiveStickerCategoryQuery)
	if err != nil {
		log.Error("failed to query active sticker_categories", slog.String("error", err.Error()))
		return nil, wrapDBError("sticker_category", "find_active", err)
	}
	defer closeRows(rows, log)

	categories := []*domain.StickerCategory{}
	for rows.Next() {
		category, err := scanStickerCategory(rows)
		if err != nil {
			return nil, wrapDBError("sticker_category", "find_active", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("sticker_category", "find_active", err)
	}

	return categories, nil
}

// ExistsByID implements store.StickerCategoryStore.ExistsByID
func (s *PostgresStickerCategoryStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsStickerCategoryQuery, id)
	if err != nil {
		return false, wrapDBError("sticker_category", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.StickerCategoryStore.DeleteByID
func (s *PostgresStickerCategoryStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteStickerCategoryQuery, id); err != nil {
		log.Debug("failed to delete sticker category",
			slog.String("error", err.Error()),
			slog.String("sticker_category_id", id.String()))
		return wrapDBError("sticker_category", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.StickerCategoryStore.WithTx
func (s *PostgresStickerCategoryStore) WithTx(tx *sql.Tx) store.StickerCategoryStore {
	return &PostgresStickerCategoryStore{db: tx, logger: s.logger}
}

func scanStickerCategory(row rowScanner) (*domain.StickerCategory, error) {
	var category domain.StickerCategory
	err := row.Scan(
		&category.ID,
		&category.Name,
		&category.IsActive,
		&category.CreatedAt,
		&category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &category, nil
}
