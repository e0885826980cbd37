package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/platform/logger"
	"github.com/nasda/nasda/internal/redact"
	"github.com/nasda/nasda/internal/store"
	"golang.org/x/crypto/bcrypt"
)

const (
	userColumns = `id, login_id, password_hash, email, nickname, role, status, created_at, updated_at`

	insertUserQuery = `
		INSERT INTO users (id, login_id, password_hash, email, nickname, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	updateUserQuery = `
		UPDATE users
		SET role = $1, status = $2, updated_at = $3
		WHERE id = $4
	`
	findUserByIDQuery      = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	findUserByLoginIDQuery = `SELECT ` + userColumns + ` FROM users WHERE login_id = $1`
	findUserByEmailQuery   = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	existsUserQuery        = `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`
	deleteUserQuery        = `DELETE FROM users WHERE id = $1`
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	bcryptCost int
	logger     *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// A bcryptCost outside bcrypt's accepted range falls back to bcrypt.DefaultCost.
// If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DBTX, bcryptCost int, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		bcryptCost: bcryptCost,
		logger:     newStoreLogger(logger, "user_store"),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Save implements store.UserStore.Save.
// A user without an ID is inserted with a freshly generated ID and a bcrypt
// hash of its plaintext password; the plaintext is cleared once stored.
// An existing user only has its role, status and updated_at written.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Debug("user validation failed during save",
			slog.String("error", redact.Error(err)),
			slog.String("login_id", user.LoginID))
		return err
	}

	if user.ID == uuid.Nil {
		return s.insert(ctx, log, user)
	}
	return s.update(ctx, log, user)
}

func (s *PostgresUserStore) insert(ctx context.Context, log *slog.Logger, user *domain.User) error {
	hash := user.HashedPassword
	if user.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
		if err != nil {
			log.Error("failed to hash password", slog.String("error", redact.Error(err)))
			return fmt.Errorf("failed to hash password: %w", err)
		}
		hash = string(hashed)
	}

	id := uuid.New()
	now := time.Now().UTC()
	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.db.ExecContext(ctx, insertUserQuery,
		id,
		user.LoginID,
		hash,
		user.Email,
		user.Nickname,
		string(user.Role),
		string(user.Status),
		createdAt,
		now,
	)
	if err != nil {
		log.Debug("failed to insert user",
			slog.String("error", redact.Error(err)),
			slog.String("detail", redact.String(errorDetail(err))))
		return wrapDBError("user", "save", err)
	}

	user.ID = id
	user.HashedPassword = hash
	user.Password = ""
	user.CreatedAt = createdAt
	user.UpdatedAt = now

	log.Debug("user created", slog.String("user_id", id.String()))
	return nil
}

func (s *PostgresUserStore) update(ctx context.Context, log *slog.Logger, user *domain.User) error {
	now := time.Now().UTC()

	result, err := s.db.ExecContext(ctx, updateUserQuery,
		string(user.Role),
		string(user.Status),
		now,
		user.ID,
	)
	if err != nil {
		log.Debug("failed to update user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", user.ID.String()))
		return wrapDBError("user", "save", err)
	}

	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		log.Debug("user not found for update", slog.String("user_id", user.ID.String()))
		return err
	}

	user.UpdatedAt = now
	return nil
}

// FindByID implements store.UserStore.FindByID
func (s *PostgresUserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.findOne(ctx, "find_by_id", findUserByIDQuery, id)
}

// FindByLoginID implements store.UserStore.FindByLoginID
func (s *PostgresUserStore) FindByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_login_id", findUserByLoginIDQuery, loginID)
}

// FindByEmail implements store.UserStore.FindByEmail
func (s *PostgresUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findOne(ctx, "find_by_email", findUserByEmailQuery, email)
}

func (s *PostgresUserStore) findOne(
	ctx context.Context,
	operation, query string,
	arg any,
) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := scanUser(s.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("operation", operation))
			return nil, nil
		}
		log.Error("failed to query user",
			slog.String("operation", operation),
			slog.String("error", redact.Error(err)))
		return nil, wrapDBError("user", operation, err)
	}

	return user, nil
}

// ExistsByID implements store.UserStore.ExistsByID
func (s *PostgresUserStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := existsByID(ctx, s.db, existsUserQuery, id)
	if err != nil {
		return false, wrapDBError("user", "exists_by_id", err)
	}
	return exists, nil
}

// DeleteByID implements store.UserStore.DeleteByID
func (s *PostgresUserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteUserQuery, id); err != nil {
		log.Debug("failed to delete user",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", id.String()))
		return wrapDBError("user", "delete_by_id", err)
	}
	return nil
}

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		bcryptCost: s.bcryptCost,
		logger:     s.logger,
	}
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var role, status string

	err := row.Scan(
		&user.ID,
		&user.LoginID,
		&user.HashedPassword,
		&user.Email,
		&user.Nickname,
		&role,
		&status,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.Role = domain.UserRole(role)
	user.Status = domain.UserStatus(status)
	return &user, nil
}
