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
	postColumns = `id, user_id, category_id, title, content, created_at, updated_at`

	insertPostQuery = `
		INSERT INTO posts (id, user_id, category_id, title, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	updatePostQuery = `
		UPDATE posts
		SET category_id = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5
	`
	findPostByIDQuery        = `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	findPostsByUserIDQuery   = `SELECT ` + postColumns + ` FROM posts WHERE user_id = $1 ORDER BY created_at DESC, id`
	findPostsByCategoryQuery = `SELECT ` + postColumns + ` FROM posts WHERE category_id = $1 ORDER BY created_at DESC, id`
	existsPostQuery          = `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`
	deletePostQuery          = `DELETE FROM posts WHERE id = $1`
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPostStore(db store.DBTX, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}

	return &PostgresPostStore{
		db:     db,
		logger: newStoreLogger(logger, "post_store"),
	}
}

// Ensure PostgresPostStore implements store.PostStore interface
var _ store.PostStore = (*PostgresPostStore)(nil)

// Save implements store.PostStore.Save
func (s *PostgresPostStore) Save(ctx context.Context, post *domain.Post) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := post.Validate(); err != nil {
		log.Debug("post validation failed during save",
			slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()

	if post.ID != uuid.Nil {
		result, err := s.db.ExecContext(ctx, updatePostQuery,
			post.CategoryID, post.Title, post.Content, now, post.ID)
		if err != nil {
			log.Debug("failed to update post",
				slog.String("error", err.Error()),
				slog.String("post_id", post.ID.String()))
			return wrapDBError("post", "save", err)
		}
		if err := CheckRowsAffected(result, store.ErrPostNotFound); err != nil {
			return err
		}
		post.UpdatedAt = now
		return nil
	}

	id := uuid.New()
	createdAt := post.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, insertPostQuery,
		id, post.UserID, post.CategoryID, post.Title, post.Content, createdAt, now)
	if err != nil {
		log.Debug("failed to insert post",
			slog.String("error", err.Error()),
			slog.String("user_id", post.UserID.String()),
			slog.String("category_id", post.CategoryID.String()))
		return wrapDBError("post", "save", err)
	}

	post.ID = id
	post.CreatedAt = createdAt
	post.UpdatedAt = now

	log.Debug("post created", slog.String("post_id", id.String()))
	return nil
}

// FindByID implements store.PostStore.FindByID
func (s *PostgresPostStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	post, err := scanPost(s.db.QueryRowContext(ctx, findPostByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("post not found", slog.String("post_id", id.String()))
			return nil, nil
		}
		return nil, wrapDBError("post", "find_by_id", err)
	}
	return post, nil
}

// FindByUserID implements store.PostStore.FindByUserID
func (s *PostgresPostStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error) {
	return s.findMany(ctx, "find_by_user_id", findPostsByUserIDQuery, userID)
}

// FindByCategoryID implements store.PostStore.FindByCategoryID
func (s *PostgresPostStore) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Post, error) {
	return s.findMany(ctx, "find_by_category_id", findPostsByCategoryQuery, categoryID)
}

func (s *PostgresPostStore) findMany(
	ctx context.Context,
	operation, query string,
	id uuid.UUID,
) ([]*domain.Post, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		log.Error("failed to query posts",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
		return nil, wrapDBError("post", operation, err)
	}
	defer closeRows(rows, log)

	posts := []*domain.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, wrapDBError("post", operation, err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBError("post", operation, err)
	}

	return posts, nil
}

// ExistsByID implements store.PostStore.ExistsByID
func (s *PostgresPostStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsPostQuery, id)
	if err != nil {
		return false, wrapDBError("post", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.PostStore.DeleteByID.
// Images and their decorations are removed by the schema's cascading foreign keys.
func (s *PostgresPostStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deletePostQuery, id); err != nil {
		log.Debug("failed to delete post",
			slog.String("error", err.Error()),
			slog.String("post_id", id.String()))
		return wrapDBError("post", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.PostStore.WithTx
func (s *PostgresPostStore) WithTx(tx *sql.Tx) store.PostStore {
	return &PostgresPostStore{db: tx, logger: s.logger}
}

func scanPost(row rowScanner) (*domain.Post, error) {
	var post domain.Post
	err := row.Scan(
		&post.ID,
		&post.UserID,
		&post.CategoryID,
		&post.Title,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
