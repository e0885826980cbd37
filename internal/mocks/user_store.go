package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore for use with testify/mock
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Save is a mock implementation of store.UserStore.Save
func (m *MockUserStore) Save(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// FindByID is a mock implementation of store.UserStore.FindByID
func (m *MockUserStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByLoginID is a mock implementation of store.UserStore.FindByLoginID
func (m *MockUserStore) FindByLoginID(ctx context.Context, loginID string) (*domain.User, error) {
	args := m.Called(ctx, loginID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByEmail is a mock implementation of store.UserStore.FindByEmail
func (m *MockUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// ExistsByID is a mock implementation of store.UserStore.ExistsByID
func (m *MockUserStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteByID is a mock implementation of store.UserStore.DeleteByID
func (m *MockUserStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself
func (m *MockUserStore) WithTx(_ *sql.Tx) store.UserStore {
	return m
}
