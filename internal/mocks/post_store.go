package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPostStore is a mock of store.PostStore for use with testify/mock
type MockPostStore struct {
	mock.Mock
}

var _ store.PostStore = (*MockPostStore)(nil)

// Save is a mock implementation of store.PostStore.Save
func (m *MockPostStore) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// FindByID is a mock implementation of store.PostStore.FindByID
func (m *MockPostStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*domain.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByUserID is a mock implementation of store.PostStore.FindByUserID
func (m *MockPostStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Post, error) {
	args := m.Called(ctx, userID)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

// FindByCategoryID is a mock implementation of store.PostStore.FindByCategoryID
func (m *MockPostStore) FindByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]*domain.Post, error) {
	args := m.Called(ctx, categoryID)
	posts, _ := args.Get(0).([]*domain.Post)
	return posts, args.Error(1)
}

// ExistsByID is a mock implementation of store.PostStore.ExistsByID
func (m *MockPostStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteByID is a mock implementation of store.PostStore.DeleteByID
func (m *MockPostStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself
func (m *MockPostStore) WithTx(_ *sql.Tx) store.PostStore {
	return m
}
