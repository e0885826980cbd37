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
	postImageColumns = `id, post_id, image_url, sort_order, is_representative, created_at`

	insertPostImageQuery = `
		INSERT INTO post_images (id, post_id, image_url, sort_order, is_representative, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	updatePostImageQuery = `
		UPDATE post_images
		SET image_url = $1, sort_order = $2, is_representative = $3
		WHERE id = $4
	`
	clearRepresentativeQuery = `
		UPDATE post_images
		SET is_representative = FALSE
		WHERE is_representative
		  AND id <> $1
		  AND post_id = (SELECT post_id FROM post_images WHERE id = $1)
	`
	markRepresentativeQuery = `UPDATE post_images SET is_representative = TRUE WHERE id = $1`

	findPostImageByIDQuery       = `SELECT ` + postImageColumns + ` FROM post_images WHERE id = $1`
	findPostImagesByPostQuery    = `SELECT ` + postImageColumns + ` FROM post_images WHERE post_id = $1 ORDER BY sort_order, created_at, id`
	findRepresentativeImageQuery = `SELECT ` + postImageColumns + ` FROM post_images WHERE post_id = $1 AND is_representative`
	existsPostImageQuery         = `SELECT EXISTS(SELECT 1 FROM post_images WHERE id = $1)`
	deletePostImageQuery         = `DELETE FROM post_images WHERE id = $1`
)

// PostgresPostImageStore implements the store.PostImageStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostImageStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostImageStore creates a new PostgreSQL implementation of the PostImageStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPostImageStore(db store.DBTX, logger *slog.Logger) *PostgresPostImageStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresPostImageStore{
		db:     db,
		logger: newStoreLogger(logger, "post_image_store"),
	}
}

// Ensure PostgresPostImageStore implements store.PostImageStore interface
var _ store.PostImageStore = (*PostgresPostImageStore)(nil)

// Save implements store.PostImageStore.Save
func (s *PostgresPostImageStore) Save(ctx context.Context, image *domain.PostImage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := image.Validate(); err != nil {
		log.Debug("post image validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	if image.ID != uuid.Nil {
		result, err := s.db.ExecContext(ctx, updatePostImageQuery,
			image.ImageURL, image.SortOrder, image.IsRepresentative, image.ID)
		if err != nil {
			log.Debug("failed to update post image",
				slog.String("error", err.Error()),
				slog.String("post_image_id", image.ID.String()))
			return wrapDBError("post_image", "save", err)
		}
		return CheckRowsAffected(result, store.ErrPostImageNotFound)
	}

	id := uuid.New()
	createdAt := image.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, insertPostImageQuery,
		id, image.PostID, image.ImageURL, image.SortOrder, image.IsRepresentative, createdAt)
	if err != nil {
		log.Debug("failed to insert post image",
			slog.String("error", err.Error()),
			slog.String("post_id", image.PostID.String()))
		return wrapDBError("post_image", "save", err)
	}

	image.ID = id
	image.CreatedAt = createdAt
	return nil
}

// FindByID implements store.PostImageStore.FindByID
func (s *PostgresPostImageStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.PostImage, error) {
	return s.findOne(ctx, "find_by_id", findPostImageByIDQuery, id)
}

// FindRepresentative implements store.PostImageStore.FindRepresentative
func (s *PostgresPostImageStore) FindRepresentative(
	ctx context.Context,
	postID uuid.UUID,
) (*domain.PostImage, error) {
	return s.findOne(ctx, "find_representative", findRepresentativeImageQuery, postID)
}

func (s *PostgresPostImageStore) findOne(
	ctx context.Context,
	operation, query string,
	id uuid.UUID,
) (*domain.PostImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	image, err := scanPostImage(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post image not found",
				slog.String("operation", operation),
				slog.String("id", id.String()))
			return nil, nil
		}
		return nil, wrapDBError("post_image", operation, err)
	}
	return image, nil
}

// FindByPostID implements store.PostImageStore.FindByPostID
func (s *PostgresPostImageStore) FindByPostID(
	ctx context.Context,
	postID uuid.UUID,
) ([]*domain.PostImage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, findPostImagesByPostQuery, postID)
	if err != nil {
		log.Error("failed to query post images",
			slog.String("post_id", postID.String()),
			slog.String("error", err.Error()))
		return nil, wrapDBError("post_image", "find_by_post_id", err)
	}
	defer closeRows(rows, log)

	images := []*domain.PostImage{}
	for rows.Next() {
		image, err := scanPostImage(rows)
		if err != nil {
			return nil, wrapDBError("post_image", "find_by_post_id", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("post_image", "find_by_post_id", err)
	}

	return images, nil
}

// SetRepresentative implements store.PostImageStore.SetRepresentative.
// The flag is cleared on the post's other images before it is set on this one
// so the unique index over representative images is never violated.
func (s *PostgresPostImageStore) SetRepresentative(ctx context.Context, imageID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, clearRepresentativeQuery, imageID); err != nil {
		log.Debug("failed to clear representative image",
			slog.String("error", err.Error()),
			slog.String("post_image_id", imageID.String()))
		return wrapDBError("post_image", "set_representative", err)
	}

	result, err := s.db.ExecContext(ctx, markRepresentativeQuery, imageID)
	if err != nil {
		log.Debug("failed to mark representative image",
			slog.String("error", err.Error()),
			slog.String("post_image_id", imageID.String()))
		return wrapDBError("post_image", "set_representative", err)
	}

	return CheckRowsAffected(result, store.ErrPostImageNotFound)
}

// ExistsByID implements store.PostImageStore.ExistsByID
func (s *PostgresPostImageStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsPostImageQuery, id)
	if err != nil {
		return false, wrapDBError("post_image", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.PostImageStore.DeleteByID
func (s *PostgresPostImageStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deletePostImageQuery, id); err != nil {
		log.Debug("failed to delete post image",
			slog.String("error", err.Error()),
			slog.String("post_image_id", id.String()))
		return wrapDBError("post_image", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.PostImageStore.WithTx
func (s *PostgresPostImageStore) WithTx(tx *sql.Tx) store.PostImageStore {
	return &PostgresPostImageStore{db: tx, logger: s.logger}
}

func scanPostImage(row rowScanner) (*domain.PostImage, error) {
	var image domain.PostImage
	err := row.Scan(
		&image.ID,
		&image.PostID,
		&image.ImageURL,
		&image.SortOrder,
		&image.IsRepresentative,
		&image.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &image, nil
}
