package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockPostDecorationStore is a mock of store.PostDecorationStore for use with testify/mock
type MockPostDecorationStore struct {
	mock.Mock
}

var _ store.PostDecorationStore = (*MockPostDecorationStore)(nil)

// Save is a mock implementation of store.PostDecorationStore.Save
func (m *MockPostDecorationStore) Save(ctx context.Context, decoration *domain.PostDecoration) error {
	args := m.Called(ctx, decoration)
	return args.Error(0)
}

// FindByID is a mock implementation of store.PostDecorationStore.FindByID
func (m *MockPostDecorationStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.PostDecoration, error) {
	args := m.Called(ctx, id)
	if decoration, ok := args.Get(0).(*domain.PostDecoration); ok {
		return decoration, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindByImage is a mock implementation of store.PostDecorationStore.FindByImage
func (m *MockPostDecorationStore) FindByImage(
	ctx context.Context,
	imageID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	args := m.Called(ctx, imageID)
	decorations, _ := args.Get(0).([]*domain.PostDecoration)
	return decorations, args.Error(1)
}

// FindByPostID is a mock implementation of store.PostDecorationStore.FindByPostID
func (m *MockPostDecorationStore) FindByPostID(
	ctx context.Context,
	postID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	args := m.Called(ctx, postID)
	decorations, _ := args.Get(0).([]*domain.PostDecoration)
	return decorations, args.Error(1)
}

// FindByUserID is a mock implementation of store.PostDecorationStore.FindByUserID
func (m *MockPostDecorationStore) FindByUserID(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.PostDecoration, error) {
	args := m.Called(ctx, userID)
	decorations, _ := args.Get(0).([]*domain.PostDecoration)
	return decorations, args.Error(1)
}

// CountByUserAndImage is a mock implementation of store.PostDecorationStore.CountByUserAndImage
func (m *MockPostDecorationStore) CountByUserAndImage(
	ctx context.Context,
	userID, imageID uuid.UUID,
) (int64, error) {
	args := m.Called(ctx, userID, imageID)
	return args.Get(0).(int64), args.Error(1)
}

// CountByImage is a mock implementation of store.PostDecorationStore.CountByImage
func (m *MockPostDecorationStore) CountByImage(ctx context.Context, imageID uuid.UUID) (int64, error) {
	args := m.Called(ctx, imageID)
	return args.Get(0).(int64), args.Error(1)
}

// NextZIndex is a mock implementation of store.PostDecorationStore.NextZIndex
func (m *MockPostDecorationStore) NextZIndex(ctx context.Context, imageID uuid.UUID) (int, error) {
	args := m.Called(ctx, imageID)
	return args.Int(0), args.Error(1)
}

// LockImage is a mock implementation of store.PostDecorationStore.LockImage
func (m *MockPostDecorationStore) LockImage(ctx context.Context, imageID uuid.UUID) error {
	args := m.Called(ctx, imageID)
	return args.Error(0)
}

// UpdateSingleSticker is a mock implementation of store.PostDecorationStore.UpdateSingleSticker
func (m *MockPostDecorationStore) UpdateSingleSticker(
	ctx context.Context,
	id uuid.UUID,
	x, y, scale, rotation float64,
) error {
	args := m.Called(ctx, id, x, y, scale, rotation)
	return args.Error(0)
}

// DeleteByPostID is a mock implementation of store.PostDecorationStore.DeleteByPostID
func (m *MockPostDecorationStore) DeleteByPostID(ctx context.Context, postID uuid.UUID) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

// ExistsByID is a mock implementation of store.PostDecorationStore.ExistsByID
func (m *MockPostDecorationStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// DeleteByID is a mock implementation of store.PostDecorationStore.DeleteByID
func (m *MockPostDecorationStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the mock itself
func (m *MockPostDecorationStore) WithTx(_ *sql.Tx) store.PostDecorationStore {
	return m
}
