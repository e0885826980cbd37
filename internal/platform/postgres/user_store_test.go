package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumnNames = []string{
	"id", "login_id", "password_hash", "email", "nickname", "role", "status", "created_at", "updated_at",
}

func TestNewPostgresUserStore(t *testing.T) {
	db, _ := newMockDB(t)

	tests := []struct {
		name       string
		bcryptCost int
		want       int
	}{
		{"valid_cost", 12, 12},
		{"min_cost", bcrypt.MinCost, bcrypt.MinCost},
		{"zero_cost_uses_default", 0, bcrypt.DefaultCost},
		{"cost_too_low_uses_default", 3, bcrypt.DefaultCost},
		{"cost_too_high_uses_default", 32, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresUserStore(db, tt.bcryptCost, nil)
			assert.Equal(t, tt.want, s.bcryptCost)
		})
	}

	t.Run("nil_db_panics", func(t *testing.T) {
		assert.Panics(t, func() { NewPostgresUserStore(nil, bcrypt.MinCost, nil) })
	})
}

func TestPostgresUserStore_Save_Insert(t *testing.T) {
	ctx := context.Background()

	t.Run("hashes_password_and_assigns_id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user, err := domain.NewUser("sticker_fan", "correct-horse-battery", "fan@example.com", "Fan")
		require.NoError(t, err)

		mock.ExpectExec(insertUserQuery).
			WithArgs(
				sqlmock.AnyArg(),
				"sticker_fan",
				sqlmock.AnyArg(),
				"fan@example.com",
				"Fan",
				"USER",
				"ACTIVE",
				sqlmock.AnyArg(),
				sqlmock.AnyArg(),
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Save(ctx, user))

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Empty(t, user.Password, "plaintext must be cleared after save")
		require.NotEmpty(t, user.HashedPassword)
		assert.NoError(t,
			bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte("correct-horse-battery")))
	})

	duplicates := []struct {
		name       string
		constraint string
		want       error
	}{
		{"duplicate_login_id", "uq_users_login_id", store.ErrLoginIDExists},
		{"duplicate_email", "uq_users_email", store.ErrEmailExists},
	}

	for _, tt := range duplicates {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

			user, err := domain.NewUser("sticker_fan", "correct-horse-battery", "fan@example.com", "Fan")
			require.NoError(t, err)

			mock.ExpectExec(insertUserQuery).
				WillReturnError(pgError(uniqueViolationCode, tt.constraint))

			err = s.Save(ctx, user)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, store.IsDuplicateError(err))
			assert.Equal(t, uuid.Nil, user.ID)
		})
	}

	t.Run("invalid_user_issues_no_statement", func(t *testing.T) {
		db, _ := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		user := &domain.User{LoginID: "x", Email: "not-an-email", Nickname: "n",
			Role: domain.UserRoleUser, Status: domain.UserStatusActive, Password: "correct-horse-battery"}

		assert.ErrorIs(t, s.Save(ctx, user), domain.ErrInvalidEmail)
	})
}

func TestPostgresUserStore_Save_Update(t *testing.T) {
	ctx := context.Background()

	existing := func() *domain.User {
		return &domain.User{
			ID:             uuid.New(),
			LoginID:        "sticker_fan",
			HashedPassword: "$2a$04$abcdefghijklmnopqrstuv",
			Email:          "fan@example.com",
			Nickname:       "Fan",
			Role:           domain.UserRoleAdmin,
			Status:         domain.UserStatusSuspended,
		}
	}

	t.Run("writes_role_and_status", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
		user := existing()

		mock.ExpectExec(updateUserQuery).
			WithArgs("ADMIN", "SUSPENDED", sqlmock.AnyArg(), user.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Save(ctx, user))
	})

	t.Run("missing_user_is_not_found", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectExec(updateUserQuery).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Save(ctx, existing()), store.ErrUserNotFound)
	})
}

func TestPostgresUserStore_Find(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	id := uuid.New()

	userRows := func() *sqlmock.Rows {
		return sqlmock.NewRows(userColumnNames).AddRow(
			id.String(), "sticker_fan", "hash", "fan@example.com", "Fan", "USER", "ACTIVE", now, now,
		)
	}

	t.Run("by_id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(findUserByIDQuery).WithArgs(id).WillReturnRows(userRows())

		user, err := s.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, domain.UserRoleUser, user.Role)
		assert.Equal(t, domain.UserStatusActive, user.Status)
		assert.Equal(t, "hash", user.HashedPassword)
		assert.Empty(t, user.Password)
	})

	t.Run("by_login_id", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(findUserByLoginIDQuery).WithArgs("sticker_fan").WillReturnRows(userRows())

		user, err := s.FindByLoginID(ctx, "sticker_fan")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "fan@example.com", user.Email)
	})

	t.Run("absent_email_returns_nil", func(t *testing.T) {
		db, mock := newMockDB(t)
		s := NewPostgresUserStore(db, bcrypt.MinCost, nil)

		mock.ExpectQuery(findUserByEmailQuery).
			WithArgs("nobody@example.com").
			WillReturnRows(sqlmock.NewRows(userColumnNames))

		user, err := s.FindByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestPostgresUserStore_DeleteByID(t *testing.T) {
	db, mock := newMockDB(t)
	s := NewPostgresUserStore(db, bcrypt.MinCost, nil)
	id := uuid.New()

	mock.ExpectExec(deleteUserQuery).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, s.DeleteByID(context.Background(), id))
}
