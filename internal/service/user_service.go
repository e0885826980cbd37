package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/store"
)

// UserService provides account operations.
type UserService interface {
	// Register creates an active USER account. The password is hashed by the
	// store; the returned user never carries the plaintext.
	Register(ctx context.Context, loginID, password, email, nickname string) (*domain.User, error)

	// GetUser returns the user, or store.ErrUserNotFound.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// ChangeStatus moves the user to a new lifecycle state.
	ChangeStatus(ctx context.Context, userID uuid.UUID, status domain.UserStatus) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	db        store.TxBeginner
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, db store.TxBeginner, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Register creates an active USER account in a transaction.
func (s *UserServiceImpl) Register(
	ctx context.Context,
	loginID, password, email, nickname string,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(loginID, password, email, nickname)
	if err != nil {
		log.Debug("rejected registration",
			slog.String("login_id", loginID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.userStore.WithTx(tx).Save(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Info("registration with taken login ID or email",
				slog.String("login_id", loginID))
		} else {
			log.Error("failed to save user",
				slog.String("login_id", loginID),
				slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("login_id", user.LoginID))
	return user, nil
}

// GetUser retrieves a user by their ID
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// ChangeStatus loads the user, applies the new status and saves it in one transaction.
func (s *UserServiceImpl) ChangeStatus(ctx context.Context, userID uuid.UUID, status domain.UserStatus) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		users := s.userStore.WithTx(tx)

		user, err := users.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return store.ErrUserNotFound
		}

		if err := user.ChangeStatus(status); err != nil {
			return err
		}
		return users.Save(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) && !errors.Is(err, domain.ErrInvalidUserStatus) {
			log.Error("failed to change user status",
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
		}
		return fmt.Errorf("failed to change user status: %w", err)
	}

	log.Info("user status changed",
		slog.String("user_id", userID.String()),
		slog.String("status", string(status)))
	return nil
}
