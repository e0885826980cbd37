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

// Decoration reads join stickers so every returned decoration carries its Sticker.
const (
	decorationSelect = `
		SELECT d.id, d.post_image_id, d.user_id, d.sticker_id,
		       d.pos_x, d.pos_y, d.scale, d.rotation, d.z_index,
		       d.created_at, d.updated_at,
		       s.id, s.sticker_category_id, s.name, s.image_url, s.created_at, s.updated_at
		FROM post_decorations d
		JOIN stickers s ON s.id = d.sticker_id
	`
	decorationOrder = ` ORDER BY d.created_at, d.id`

	findDecorationByIDQuery      = decorationSelect + ` WHERE d.id = $1`
	findDecorationsByImageQuery  = decorationSelect + ` WHERE d.post_image_id = $1` + decorationOrder
	findDecorationsByUserIDQuery = decorationSelect + ` WHERE d.user_id = $1` + decorationOrder
	findDecorationsByPostIDQuery = decorationSelect + `
		JOIN post_images i ON i.id = d.post_image_id
		WHERE i.post_id = $1` + decorationOrder

	insertDecorationQuery = `
		INSERT INTO post_decorations
			(id, post_image_id, user_id, sticker_id, pos_x, pos_y, scale, rotation, z_index, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	updateDecorationQuery = `
		UPDATE post_decorations
		SET pos_x = $1, pos_y = $2, scale = $3, rotation = $4, z_index = $5, updated_at = $6
		WHERE id = $7
	`
	updateSingleStickerQuery = `
		UPDATE post_decorations
		SET pos_x = $1, pos_y = $2, scale = $3, rotation = $4, updated_at = $5
		WHERE id = $6
	`
	deleteDecorationsByPostIDQuery = `
		DELETE FROM post_decorations d
		USING post_images i
		WHERE d.post_image_id = i.id AND i.post_id = $1
	`

	countDecorationsByUserAndImageQuery = `SELECT COUNT(*) FROM post_decorations WHERE user_id = $1 AND post_image_id = $2`
	countDecorationsByImageQuery        = `SELECT COUNT(*) FROM post_decorations WHERE post_image_id = $1`
	existsDecorationQuery               = `SELECT EXISTS(SELECT 1 FROM post_decorations WHERE id = $1)`
	deleteDecorationQuery               = `DELETE FROM post_decorations WHERE id = $1`

	nextZIndexQuery    = `SELECT COALESCE(MAX(z_index), -1) + 1 FROM post_decorations WHERE post_image_id = $1`
	lockPostImageQuery = `SELECT id FROM post_images WHERE id = $1 FOR UPDATE`
)

// PostgresPostDecorationStore implements the store.PostDecorationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostDecorationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostDecorationStore creates a new PostgreSQL implementation of the
// PostDecorationStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresPostDecorationStore(db store.DBTX, logger *slog.Logger) *PostgresPostDecorationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresPostDecorationStore{
		db:     db,
		logger: newStoreLogger(logger, "post_decoration_store"),
	}
}

// Ensure PostgresPostDecorationStore implements store.PostDecorationStore interface
var _ store.PostDecorationStore = (*PostgresPostDecorationStore)(nil)

// Save implements store.PostDecorationStore.Save.
// The decoration is validated before any statement runs. On insert the new
// ID is assigned to the decoration only after the row has been written.
func (s *PostgresPostDecorationStore) Save(ctx context.Context, decoration *domain.PostDecoration) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := decoration.Validate(); err != nil {
		log.Debug("decoration validation failed during save",
			slog.String("error", err.Error()),
			slog.String("post_image_id", decoration.PostImageID.String()))
		return err
	}

	if decoration.ID == uuid.Nil {
		return s.insert(ctx, log, decoration)
	}
	return s.update(ctx, log, decoration)
}

func (s *PostgresPostDecorationStore) insert(
	ctx context.Context,
	log *slog.Logger,
	decoration *domain.PostDecoration,
) error {
	id := uuid.New()
	now := time.Now().UTC()
	createdAt := decoration.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, insertDecorationQuery,
		id,
		decoration.PostImageID,
		decoration.UserID,
		decoration.StickerID,
		decoration.PosX,
		decoration.PosY,
		decoration.Scale,
		decoration.Rotation,
		decoration.ZIndex,
		createdAt,
		now,
	)
	if err != nil {
		log.Debug("failed to insert decoration",
			slog.String("error", err.Error()),
			slog.String("post_image_id", decoration.PostImageID.String()),
			slog.String("user_id", decoration.UserID.String()),
			slog.String("sticker_id", decoration.StickerID.String()))
		return wrapDBError("post_decoration", "save", err)
	}

	decoration.ID = id
	decoration.CreatedAt = createdAt
	decoration.UpdatedAt = now

	log.Debug("decoration created",
		slog.String("decoration_id", id.String()),
		slog.String("post_image_id", decoration.PostImageID.String()))
	return nil
}

func (s *PostgresPostDecorationStore) update(
	ctx context.Context,
	log *slog.Logger,
	decoration *domain.PostDecoration,
) error {
	now := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, updateDecorationQuery,
		decoration.PosX,
		decoration.PosY,
		decoration.Scale,
		decoration.Rotation,
		decoration.ZIndex,
		now,
		decoration.ID,
	)
	if err != nil {
		log.Debug("failed to update decoration",
			slog.String("error", err.Error()),
			slog.String("decoration_id", decoration.ID.String()))
		return wrapDBError("post_decoration", "save", err)
	}

	if err := CheckRowsAffected(result, store.ErrDecorationNotFound); err != nil {
		log.Debug("decoration not found for update",
			slog.String("decoration_id", decoration.ID.String()))
		return err
	}

	decoration.UpdatedAt = now
	return nil
}

// FindByID implements store.PostDecorationStore.FindByID
func (s *PostgresPostDecorationStore) FindByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.PostDecoration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	decoration, err := scanDecoration(s.db.QueryRowContext(ctx, findDecorationByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("decoration not found", slog.String("decoration_id", id.String()))
			return nil, nil
		}
		log.Error("failed to query decoration",
			slog.String("decoration_id", id.String()),
			slog.String("error", err.Error()))
		return nil, wrapDBError("post_decoration", "find_by_id", err)
	}

	return decoration, nil
}

// FindByImage implements store.PostDecorationStore.FindByImage
func (s *PostgresPostDecorationStore) FindByImage(
	ctx context.Context,
	imageID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	return s.findMany(ctx, "find_by_image", findDecorationsByImageQuery, imageID)
}

// FindByPostID implements store.PostDecorationStore.FindByPostID
func (s *PostgresPostDecorationStore) FindByPostID(
	ctx context.Context,
	postID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	return s.findMany(ctx, "find_by_post_id", findDecorationsByPostIDQuery, postID)
}

// FindByUserID implements store.PostDecorationStore.FindByUserID
func (s *PostgresPostDecorationStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	return s.findMany(ctx, "find_by_user_id", findDecorationsByUserIDQuery, userID)
}

func (s *PostgresPostDecorationStore) findMany(
	ctx context.Context,
	operation, query string,
	id uuid.UUID,
) ([]*domain.PostDecoration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("failed to query decorations",
			slog.String("operation", operation),
			slog.String("id", id.String()),
			slog.String("error", err.Error()))
		return nil, wrapDBError("post_decoration", operation, err)
	}
	defer closeRows(rows, log)

	decorations := []*domain.PostDecoration{}
	for rows.Next() {
		decoration, err := scanDecoration(rows)
		if err != nil {
			log.Error("failed to scan decoration row",
				slog.String("operation", operation),
				slog.String("error", err.Error()))
			return nil, wrapDBError("post_decoration", operation, err)
		}
		decorations = append(decorations, decoration)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("post_decoration", operation, err)
	}

	log.Debug("decorations retrieved",
		slog.String("operation", operation),
		slog.Int("count", len(decorations)))
	return decorations, nil
}

// CountByUserAndImage implements store.PostDecorationStore.CountByUserAndImage
func (s *PostgresPostDecorationStore) CountByUserAndImage(
	ctx context.Context,
	userID, imageID uuid.UUID,
) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, countDecorationsByUserAndImageQuery, userID, imageID).Scan(&count)
	if err != nil {
		return 0, wrapDBError("post_decoration", "count_by_user_and_image", err)
	}
	return count, nil
}

// CountByImage implements store.PostDecorationStore.CountByImage
func (s *PostgresPostDecorationStore) CountByImage(ctx context.Context, imageID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, countDecorationsByImageQuery, imageID).Scan(&count)
	if err != nil {
		return 0, wrapDBError("post_decoration", "count_by_image", err)
	}
	return count, nil
}

// NextZIndex implements store.PostDecorationStore.NextZIndex
func (s *PostgresPostDecorationStore) NextZIndex(ctx context.Context, imageID uuid.UUID) (int, error) {
	var next int
	err := s.db.QueryRowContext(ctx, nextZIndexQuery, imageID).Scan(&next)
	if err != nil {
		return 0, wrapDBError("post_decoration", "next_z_index", err)
	}
	return next, nil
}

// LockImage implements store.PostDecorationStore.LockImage.
// Outside a transaction the lock is released as soon as the statement ends.
func (s *PostgresPostDecorationStore) LockImage(ctx context.Context, imageID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var locked uuid.UUID
	err := s.db.QueryRowContext(ctx, lockPostImageQuery, imageID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("post image not found for lock",
			slog.String("post_image_id", imageID.String()))
		return store.ErrPostImageNotFound
	}
	if err != nil {
		return wrapDBError("post_decoration", "lock_image", err)
	}
	return nil
}

// UpdateSingleSticker implements store.PostDecorationStore.UpdateSingleSticker.
// The four placement columns are written by one UPDATE so they change together.
func (s *PostgresPostDecorationStore) UpdateSingleSticker(
	ctx context.Context,
	id uuid.UUID,
	x, y, scale, rotation float64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	placement := domain.Placement{X: x, Y: y, Scale: scale, Rotation: rotation}
	if err := placement.Validate(); err != nil {
		log.Debug("placement validation failed during update",
			slog.String("error", err.Error()),
			slog.String("decoration_id", id.String()))
		return err
	}

	result, err := s.db.ExecContext(ctx, updateSingleStickerQuery,
		x, y, scale, rotation, time.Now().UTC(), id)
	if err != nil {
		log.Debug("failed to update decoration placement",
			slog.String("error", err.Error()),
			slog.String("decoration_id", id.String()))
		return wrapDBError("post_decoration", "update_single_sticker", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return wrapDBError("post_decoration", "update_single_sticker", err)
	}
	if rows == 0 {
		log.Debug("no decoration to update", slog.String("decoration_id", id.String()))
	}

	return nil
}

// DeleteByPostID implements store.PostDecorationStore.DeleteByPostID
func (s *PostgresPostDecorationStore) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, deleteDecorationsByPostIDQuery, postID)
	if err != nil {
		log.Debug("failed to delete decorations of post",
			slog.String("error", err.Error()),
			slog.String("post_id", postID.String()))
		return wrapDBError("post_decoration", "delete_by_post_id", err)
	}

	if deleted, err := result.RowsAffected(); err == nil {
		log.Debug("decorations of post deleted",
			slog.String("post_id", postID.String()),
			slog.Int64("count", deleted))
	}

	return nil
}

// ExistsByID implements store.PostDecorationStore.ExistsByID
func (s *PostgresPostDecorationStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsDecorationQuery, id)
	if err != nil {
		return false, wrapDBError("post_decoration", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.PostDecorationStore.DeleteByID
func (s *PostgresPostDecorationStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteDecorationQuery, id); err != nil {
		log.Debug("failed to delete decoration",
			slog.String("error", err.Error()),
			slog.String("decoration_id", id.String()))
		return wrapDBError("post_decoration", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.PostDecorationStore.WithTx
func (s *PostgresPostDecorationStore) WithTx(tx *sql.Tx) store.PostDecorationStore {
	return &PostgresPostDecorationStore{db: tx, logger: s.logger}
}

func scanDecoration(row rowScanner) (*domain.PostDecoration, error) {
	var decoration domain.PostDecoration
	var sticker domain.Sticker

	err := row.Scan(
		&decoration.ID,
		&decoration.PostImageID,
		&decoration.UserID,
		&decoration.StickerID,
		&decoration.PosX,
		&decoration.PosY,
		&decoration.Scale,
		&decoration.Rotation,
		&decoration.ZIndex,
		&decoration.CreatedAt,
		&decoration.UpdatedAt,
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

	decoration.Sticker = &sticker
	return &decoration, nil
}
