package service_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/store"
	"github.com/stretchr/testify/require"
)

// newTxDB returns a sqlmock database used only to begin, commit and roll
// back the transactions the services open. Store calls go to testify mocks.
func newTxDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// memDecorationStore keeps decorations in memory so service behaviour that
// spans several calls can be checked against real stacking and removal.
// Post lookups are not modelled: FindByPostID returns nothing and
// DeleteByPostID removes nothing.
type memDecorationStore struct {
	mu   sync.Mutex
	rows []domain.PostDecoration
}

var _ store.PostDecorationStore = (*memDecorationStore)(nil)

func newMemDecorationStore() *memDecorationStore {
	return &memDecorationStore{}
}

func (m *memDecorationStore) Save(_ context.Context, d *domain.PostDecoration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
		m.rows = append(m.rows, *d)
		return nil
	}
	for i := range m.rows {
		if m.rows[i].ID == d.ID {
			m.rows[i] = *d
			return nil
		}
	}
	return store.ErrDecorationNotFound
}

func (m *memDecorationStore) FindByID(_ context.Context, id uuid.UUID) (*domain.PostDecoration, error) {
	found := m.filter(func(d domain.PostDecoration) bool { return d.ID == id })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (m *memDecorationStore) FindByImage(_ context.Context, imageID uuid.UUID) ([]*domain.PostDecoration, error) {
	return m.filter(func(d domain.PostDecoration) bool { return d.PostImageID == imageID }), nil
}

func (m *memDecorationStore) FindByPostID(context.Context, uuid.UUID) ([]*domain.PostDecoration, error) {
	return []*domain.PostDecoration{}, nil
}

func (m *memDecorationStore) FindByUserID(_ context.Context, userID uuid.UUID) ([]*domain.PostDecoration, error) {
	return m.filter(func(d domain.PostDecoration) bool { return d.UserID == userID }), nil
}

func (m *memDecorationStore) CountByUserAndImage(_ context.Context, userID, imageID uuid.UUID) (int64, error) {
	found := m.filter(func(d domain.PostDecoration) bool {
		return d.UserID == userID && d.PostImageID == imageID
	})
	return int64(len(found)), nil
}

func (m *memDecorationStore) CountByImage(_ context.Context, imageID uuid.UUID) (int64, error) {
	found := m.filter(func(d domain.PostDecoration) bool { return d.PostImageID == imageID })
	return int64(len(found)), nil
}

func (m *memDecorationStore) NextZIndex(_ context.Context, imageID uuid.UUID) (int, error) {
	next := 0
	for _, d := range m.filter(func(d domain.PostDecoration) bool { return d.PostImageID == imageID }) {
		if d.ZIndex >= next {
			next = d.ZIndex + 1
		}
	}
	return next, nil
}

func (m *memDecorationStore) LockImage(context.Context, uuid.UUID) error {
	return nil
}

func (m *memDecorationStore) UpdateSingleSticker(
	_ context.Context,
	id uuid.UUID,
	x, y, scale, rotation float64,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows[i].SetPlacement(domain.Placement{X: x, Y: y, Scale: scale, Rotation: rotation})
		}
	}
	return nil
}

func (m *memDecorationStore) DeleteByPostID(context.Context, uuid.UUID) error {
	return nil
}

func (m *memDecorationStore) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	d, err := m.FindByID(ctx, id)
	return d != nil, err
}

func (m *memDecorationStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.rows[:0]
	for _, d := range m.rows {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	m.rows = kept
	return nil
}

func (m *memDecorationStore) WithTx(*sql.Tx) store.PostDecorationStore {
	return m
}

func (m *memDecorationStore) filter(keep func(domain.PostDecoration) bool) []*domain.PostDecoration {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := []*domain.PostDecoration{}
	for _, d := range m.rows {
		if keep(d) {
			copied := d
			found = append(found, &copied)
		}
	}
	return found
}
