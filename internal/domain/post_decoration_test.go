package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostDecoration(t *testing.T) {
	imageID, userID, stickerID := uuid.New(), uuid.New(), uuid.New()

	deco, err := NewPostDecoration(imageID, userID, stickerID,
		Placement{X: 150.5, Y: 200, Scale: 1.2}, 10)
	require.NoError(t, err)

	assert.Equal(t, uuid.Nil, deco.ID, "ID is assigned by the store")
	assert.Equal(t, imageID, deco.PostImageID)
	assert.Equal(t, userID, deco.UserID)
	assert.Equal(t, stickerID, deco.StickerID)
	assert.Equal(t, 150.5, deco.PosX)
	assert.Equal(t, 200.0, deco.PosY)
	assert.Equal(t, 1.2, deco.Scale)
	assert.Equal(t, 0.0, deco.Rotation)
	assert.Equal(t, 10, deco.ZIndex)
	assert.Nil(t, deco.Sticker)
}

func TestPostDecorationValidate(t *testing.T) {
	placement := Placement{X: 1, Y: 2, Scale: 1, Rotation: 45}

	tests := []struct {
		name      string
		imageID   uuid.UUID
		userID    uuid.UUID
		stickerID uuid.UUID
		placement Placement
		wantErr   error
	}{
		{"missing image", uuid.Nil, uuid.New(), uuid.New(), placement, ErrEmptyDecorationImageID},
		{"missing user", uuid.New(), uuid.Nil, uuid.New(), placement, ErrEmptyDecorationUserID},
		{"missing sticker", uuid.New(), uuid.New(), uuid.Nil, placement, ErrEmptyDecorationStickerID},
		{"zero scale", uuid.New(), uuid.New(), uuid.New(), Placement{Scale: 0}, ErrInvalidPlacement},
		{"negative scale", uuid.New(), uuid.New(), uuid.New(), Placement{Scale: -1}, ErrInvalidPlacement},
		{"nan position", uuid.New(), uuid.New(), uuid.New(), Placement{X: math.NaN(), Scale: 1}, ErrInvalidPlacement},
		{"infinite rotation", uuid.New(), uuid.New(), uuid.New(), Placement{Scale: 1, Rotation: math.Inf(1)}, ErrInvalidPlacement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPostDecoration(tt.imageID, tt.userID, tt.stickerID, tt.placement, 0)
			assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
		})
	}
}

func TestPostDecorationSetPlacement(t *testing.T) {
	deco := &PostDecoration{}
	p := Placement{X: 500, Y: 300, Scale: 1.5, Rotation: 45}

	deco.SetPlacement(p)

	assert.Equal(t, p, deco.Placement())
}
