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
	categoryColumns = `id, name, is_active, created_at, updated_at`

	insertCategoryQuery = `
		INSERT INTO categories (id, name, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	updateCategoryQuery = `
		UPDATE categories
		SET name = $1, is_active = $2, updated_at = $3
		WHERE id = $4
	`
	findCategoryByIDQuery   = `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	findActiveCategoryQuery = `SELECT ` + categoryColumns + ` FROM categories WHERE is_active ORDER BY name`
	existsCategoryQuery     = `SELECT EXISTS(SELECT 1 FROM categories WHERE id = $1)`
	deleteCategoryQuery     = `DELETE FROM categories WHERE id = $1`
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: newStoreLogger(logger, "category_store"),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// Save implements store.CategoryStore.Save
func (s *PostgresCategoryStore) Save(ctx context.Context, category *domain.Category) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := category.Validate(); err != nil {
		log.Debug("category validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()

	if category.ID != uuid.Nil {
		result, err := s.db.ExecContext(ctx, updateCategoryQuery,
			category.Name, category.IsActive, now, category.ID)
		if err != nil {
			log.Debug("failed to update category",
				slog.String("error", err.Error()),
				slog.String("category_id", category.ID.String()))
			return wrapDBError("category", "save", err)
		}
		if err := CheckRowsAffected(result, store.ErrCategoryNotFound); err != nil {
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

	_, err := s.db.ExecContext(ctx, insertCategoryQuery,
		id, category.Name, category.IsActive, createdAt, now)
	if err != nil {
		log.Debug("failed to insert category",
			slog.String("error", err.Error()),
			slog.String("name", category.Name))
		return wrapDBError("category", "save", err)
	}

	category.ID = id
	category.CreatedAt = createdAt
	category.UpdatedAt = now
	return nil
}

// FindByID implements store.CategoryStore.FindByID
func (s *PostgresCategoryStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	category, err := scanCategory(s.db.QueryRowContext(ctx, findCategoryByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("category not found", slog.String("category_id", id.String()))
			return nil, nil
		}
		return nil, wrapDBError("category", "find_by_id", err)
	}
	return category, nil
}

// FindActive implements store.CategoryStore.FindActive
func (s *PostgresCategoryStore) FindActive(ctx context.Context) ([]*domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, findActiveCategoryQuery)
	if err != nil {
		log.Error("failed to query active categories", slog.String("error", err.Error()))
		return nil, wrapDBError("category", "find_active", err)
	}
	defer closeRows(rows, log)

	categories := []*domain.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, wrapDBError("category", "find_active", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("category", "find_active", err)
	}

	return categories, nil
}

// ExistsByID implements store.CategoryStore.ExistsByID
func (s *PostgresCategoryStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsCategoryQuery, id)
	if err != nil {
		return false, wrapDBError("category", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.CategoryStore.DeleteByID
func (s *PostgresCategoryStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteCategoryQuery, id); err != nil {
		log.Debug("failed to delete category",
			slog.String("error", err.Error()),
			slog.String("category_id", id.String()))
		return wrapDBError("category", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var category domain.Category
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
