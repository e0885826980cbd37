package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/store"
)

// PostService provides operations on posts that span several tables.
type PostService interface {
	// Delete removes the post with its images and every decoration on them.
	// Deleting a missing post is a no-op.
	Delete(ctx context.Context, postID uuid.UUID) error

	// SetRepresentativeImage makes imageID the post's only representative
	// image. Returns ErrImageNotInPost if the image is missing or belongs
	// to another post.
	SetRepresentativeImage(ctx context.Context, postID, imageID uuid.UUID) error
}

// postServiceImpl implements the PostService interface
type postServiceImpl struct {
	posts       store.PostStore
	images      store.PostImageStore
	decorations store.PostDecorationStore
	db          store.TxBeginner
	logger      *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(
	posts store.PostStore,
	images store.PostImageStore,
	decorations store.PostDecorationStore,
	db store.TxBeginner,
	logger *slog.Logger,
) PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &postServiceImpl{
		posts:       posts,
		images:      images,
		decorations: decorations,
		db:          db,
		logger:      logger.With(slog.String("component", "post_service")),
	}
}

// Delete bulk-deletes the post's decorations and then the post in one transaction.
func (s *postServiceImpl) Delete(ctx context.Context, postID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.decorations.WithTx(tx).DeleteByPostID(ctx, postID); err != nil {
			return err
		}
		return s.posts.WithTx(tx).DeleteByID(ctx, postID)
	})
	if err != nil {
		log.Error("failed to delete post",
			slog.String("post_id", postID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post: %w", err)
	}

	log.Info("post deleted", slog.String("post_id", postID.String()))
	return nil
}

// SetRepresentativeImage verifies ownership of the image and switches the flag atomically.
func (s *postServiceImpl) SetRepresentativeImage(ctx context.Context, postID, imageID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		images := s.images.WithTx(tx)

		image, err := images.FindByID(ctx, imageID)
		if err != nil {
			return err
		}
		if image == nil || image.PostID != postID {
			return ErrImageNotInPost
		}
		if image.IsRepresentative {
			return nil
		}
		return images.SetRepresentative(ctx, imageID)
	})
	if err != nil {
		log.Debug("failed to set representative image",
			slog.String("post_id", postID.String()),
			slog.String("post_image_id", imageID.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set representative image: %w", err)
	}

	return nil
}
