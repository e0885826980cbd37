package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/mocks"
	"github.com/nasda/nasda/internal/service"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("saves_active_user", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(mocks.MockUserStore)

		sqlMock.ExpectBegin()
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ID == uuid.Nil &&
				u.LoginID == "sticker_fan" &&
				u.Role == domain.UserRoleUser &&
				u.Status == domain.UserStatusActive
		})).Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = uuid.New()
			u.HashedPassword = "hashed"
			u.Password = ""
		}).Return(nil)
		sqlMock.ExpectCommit()

		svc := service.NewUserService(users, db, quietLogger())

		user, err := svc.Register(ctx, "sticker_fan", "correct-horse-battery", "fan@example.com", "Fan")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Empty(t, user.Password)
	})

	t.Run("taken_login_id", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(mocks.MockUserStore)

		sqlMock.ExpectBegin()
		users.On("Save", mock.Anything, mock.Anything).
			Return(fmt.Errorf("%w: duplicate key", store.ErrLoginIDExists))
		sqlMock.ExpectRollback()

		svc := service.NewUserService(users, db, quietLogger())

		user, err := svc.Register(ctx, "sticker_fan", "correct-horse-battery", "fan@example.com", "Fan")
		assert.Nil(t, user)
		assert.ErrorIs(t, err, store.ErrLoginIDExists)
	})

	t.Run("short_password_is_rejected_before_storage", func(t *testing.T) {
		db, _ := newTxDB(t)
		users := new(mocks.MockUserStore)

		svc := service.NewUserService(users, db, quietLogger())

		_, err := svc.Register(ctx, "sticker_fan", "short", "fan@example.com", "Fan")
		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestUserService_GetUser(t *testing.T) {
	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByID", mock.Anything, id).Return(&domain.User{ID: id}, nil)

		user, err := service.NewUserService(users, nil, quietLogger()).GetUser(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
	})

	t.Run("absent", func(t *testing.T) {
		users := new(mocks.MockUserStore)
		users.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := service.NewUserService(users, nil, quietLogger()).GetUser(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	existing := func() *domain.User {
		return &domain.User{
			ID:             id,
			LoginID:        "sticker_fan",
			HashedPassword: "hashed",
			Email:          "fan@example.com",
			Nickname:       "Fan",
			Role:           domain.UserRoleUser,
			Status:         domain.UserStatusActive,
		}
	}

	t.Run("suspends_user", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(mocks.MockUserStore)

		sqlMock.ExpectBegin()
		users.On("FindByID", mock.Anything, id).Return(existing(), nil)
		users.On("Save", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Status == domain.UserStatusSuspended
		})).Return(nil)
		sqlMock.ExpectCommit()

		svc := service.NewUserService(users, db, quietLogger())
		require.NoError(t, svc.ChangeStatus(ctx, id, domain.UserStatusSuspended))
		users.AssertExpectations(t)
	})

	t.Run("invalid_status", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(mocks.MockUserStore)

		sqlMock.ExpectBegin()
		users.On("FindByID", mock.Anything, id).Return(existing(), nil)
		sqlMock.ExpectRollback()

		svc := service.NewUserService(users, db, quietLogger())
		assert.ErrorIs(t, svc.ChangeStatus(ctx, id, domain.UserStatus("DELETED")), domain.ErrInvalidUserStatus)
	})

	t.Run("missing_user", func(t *testing.T) {
		db, sqlMock := newTxDB(t)
		users := new(mocks.MockUserStore)

		sqlMock.ExpectBegin()
		users.On("FindByID", mock.Anything, id).Return(nil, nil)
		sqlMock.ExpectRollback()

		svc := service.NewUserService(users, db, quietLogger())
		assert.ErrorIs(t, svc.ChangeStatus(ctx, id, domain.UserStatusInactive), store.ErrUserNotFound)
	})
}
