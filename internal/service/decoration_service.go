package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/config"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/store"
)

// DecorationService places, moves and removes stickers on post images.
type DecorationService interface {
	// Place puts a sticker on an image on behalf of userID. The new
	// decoration is stacked above every decoration already on the image.
	// Placements on one image are serialized, so concurrent calls neither
	// exceed the allowance nor share a z-index.
	// Returns ErrDecorationLimitReached when the user has used up the
	// configured allowance for the image, and store.ErrPostImageNotFound
	// when the image does not exist.
	Place(
		ctx context.Context,
		userID, imageID, stickerID uuid.UUID,
		placement domain.Placement,
	) (*domain.PostDecoration, error)

	// Move changes the position, scale and rotation of a decoration.
	// Moving a decoration that no longer exists is not an error.
	Move(ctx context.Context, id uuid.UUID, x, y, scale, rotation float64) error

	// ListForImage returns the image's decorations in creation order with
	// their stickers resolved.
	ListForImage(ctx context.Context, imageID uuid.UUID) ([]*domain.PostDecoration, error)

	// Remove deletes a decoration placed by userID. Returns ErrNotOwned when
	// another user placed it. Removing a missing decoration is a no-op.
	Remove(ctx context.Context, userID, id uuid.UUID) error
}

// decorationServiceImpl implements the DecorationService interface
type decorationServiceImpl struct {
	decorations     store.PostDecorationStore
	db              store.TxBeginner
	maxPerUserImage int
	logger          *slog.Logger
}

// NewDecorationService creates a new DecorationService.
// A zero cfg.MaxPerUserImage places no limit on repeated placements.
func NewDecorationService(
	decorations store.PostDecorationStore,
	db store.TxBeginner,
	cfg config.DecorationConfig,
	logger *slog.Logger,
) DecorationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &decorationServiceImpl{
		decorations:     decorations,
		db:              db,
		maxPerUserImage: cfg.MaxPerUserImage,
		logger:          logger.With(slog.String("component", "decoration_service")),
	}
}

// Place locks the image, checks the per-user allowance and saves the
// decoration in one transaction.
func (s *decorationServiceImpl) Place(
	ctx context.Context,
	userID, imageID, stickerID uuid.UUID,
	placement domain.Placement,
) (*domain.PostDecoration, error) {
	log := logger.FromContextOrDefault(ctx, s.logger).With(
		slog.String("user_id", userID.String()),
		slog.String("post_image_id", imageID.String()),
	)

	if err := placement.Validate(); err != nil {
		return nil, err
	}

	var placed *domain.PostDecoration
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		decorations := s.decorations.WithTx(tx)

		if err := decorations.LockImage(ctx, imageID); err != nil {
			return err
		}

		if s.maxPerUserImage > 0 {
			count, err := decorations.CountByUserAndImage(ctx, userID, imageID)
			if err != nil {
				return err
			}
			if count >= int64(s.maxPerUserImage) {
				log.Info("decoration limit reached",
					slog.Int64("count", count),
					slog.Int("limit", s.maxPerUserImage))
				return ErrDecorationLimitReached
			}
		}

		zIndex, err := decorations.NextZIndex(ctx, imageID)
		if err != nil {
			return err
		}

		decoration, err := domain.NewPostDecoration(imageID, userID, stickerID, placement, zIndex)
		if err != nil {
			return err
		}
		if err := decorations.Save(ctx, decoration); err != nil {
			return err
		}

		placed = decoration
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place sticker: %w", err)
	}

	log.Debug("sticker placed",
		slog.String("decoration_id", placed.ID.String()),
		slog.String("sticker_id", stickerID.String()))
	return placed, nil
}

// Move validates the placement and writes it with a single update.
func (s *decorationServiceImpl) Move(
	ctx context.Context,
	id uuid.UUID,
	x, y, scale, rotation float64,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	placement := domain.Placement{X: x, Y: y, Scale: scale, Rotation: rotation}
	if err := placement.Validate(); err != nil {
		return err
	}

	exists, err := s.decorations.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to move decoration: %w", err)
	}
	if !exists {
		log.Warn("move requested for missing decoration",
			slog.String("decoration_id", id.String()))
		return nil
	}

	if err := s.decorations.UpdateSingleSticker(ctx, id, x, y, scale, rotation); err != nil {
		return fmt.Errorf("failed to move decoration: %w", err)
	}
	return nil
}

// ListForImage returns the image's decorations.
func (s *decorationServiceImpl) ListForImage(
	ctx context.Context,
	imageID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	decorations, err := s.decorations.FindByImage(ctx, imageID)
	if err != nil {
		return nil, fmt.Errorf("failed to list decorations: %w", err)
	}
	return decorations, nil
}

// Remove deletes the decoration after checking who placed it.
func (s *decorationServiceImpl) Remove(ctx context.Context, userID, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		decorations := s.decorations.WithTx(tx)

		decoration, err := decorations.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if decoration == nil {
			return nil
		}
		if decoration.UserID != userID {
			log.Warn("attempt to remove another user's decoration",
				slog.String("decoration_id", id.String()),
				slog.String("user_id", userID.String()),
				slog.String("owner_id", decoration.UserID.String()))
			return ErrNotOwned
		}
		return decorations.DeleteByID(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("failed to remove decoration: %w", err)
	}
	return nil
}
