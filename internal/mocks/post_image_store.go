package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPostImageStore is a mock of store.PostImageStore for use with testify/mock
type MockPostImageStore struct {
	mock.Mock
}

var _ store.PostImageStore = (*MockPostImageStore)(nil)

// Save is a mock implementation of store.PostImageStore.Save
func (m *MockPostImageStore) Save(ctx context.Context, image *domain.PostImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

// FindByID is a mock implementation of store.PostImageStore.FindByID
func (m *MockPostImageStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.PostImage, error) {
	args := m.Called(ctx, id)
	if image, ok := args.Get(0).(*domain.PostImage); ok {
		return image, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByPostID is a mock implementation of store.PostImageStore.FindByPostID
func (m *MockPostImageStore) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*domain.PostImage, error) {
	args := m.Called(ctx, postID)
	images, _ := args.Get(0).([]*domain.PostImage)
	return images, args.Error(1)
}

// FindRepresentative is a mock implementation of store.PostImageStore.FindRepresentative
func (m *MockPostImageStore) FindRepresentative(ctx context.Context, postID uuid.UUID) (*domain.PostImage, error) {
	args := m.Called(ctx, postID)
	if image, ok := args.Get(0).(*domain.PostImage); ok {
		return image, args.Error(1)
	}
	return nil, args.Error(1)
}

// SetRepresentative is a mock implementation of store.PostImageStore.SetRepresentative
func (m *MockPostImageStore) SetRepresentative(ctx context.Context, imageID uuid.UUID) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

// ExistsByID is a mock implementation of store.PostImageStore.ExistsByID
func (m *MockPostImageStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteByID is a mock implementation of store.PostImageStore.DeleteByID
func (m *MockPostImageStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself
func (m *MockPostImageStore) WithTx(_ *sql.Tx) store.PostImageStore {
	return m
}
