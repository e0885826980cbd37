package domain

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// PostDecoration validation errors
var (
	ErrEmptyDecorationImageID   = errors.New("decoration post image ID cannot be empty")
	ErrEmptyDecorationUserID    = errors.New("decoration user ID cannot be empty")
	ErrEmptyDecorationStickerID = errors.New("decoration sticker ID cannot be empty")
)

// Placement is where and how a sticker sits on an image: its position,
// scale factor and rotation in degrees.
type Placement struct {
	X        float64 `json:"pos_x"`
	Y        float64 `json:"pos_y"`
	Scale    float64 `json:"scale"`
	Rotation float64 `json:"rotation"`
}

// Validate checks that every component is finite and the scale is positive.
func (p Placement) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"pos_x", p.X},
		{"pos_y", p.Y},
		{"scale", p.Scale},
		{"rotation", p.Rotation},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalidPlacement, f.name)
		}
	}
	if p.Scale <= 0 {
		return fmt.Errorf("%w: scale must be positive", ErrInvalidPlacement)
	}
	return nil
}

// PostDecoration is one sticker placed by one user on one post image.
// ZIndex orders overlapping decorations; higher values draw on top.
//
// Sticker is populated by queries that resolve the sticker eagerly
// (see store.PostDecorationStore) and is nil otherwise.
type PostDecoration struct {
	ID          uuid.UUID `json:"id"`
	PostImageID uuid.UUID `json:"post_image_id"`
	UserID      uuid.UUID `json:"user_id"`
	StickerID   uuid.UUID `json:"sticker_id"`
	PosX        float64   `json:"pos_x"`
	PosY        float64   `json:"pos_y"`
	Scale       float64   `json:"scale"`
	Rotation    float64   `json:"rotation"`
	ZIndex      int       `json:"z_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Sticker *Sticker `json:"sticker,omitempty"`
}

// NewPostDecoration places stickerID on imageID on behalf of userID.
func NewPostDecoration(
	imageID, userID, stickerID uuid.UUID,
	placement Placement,
	zIndex int,
) (*PostDecoration, error) {
	now := time.Now().UTC()
	decoration := &PostDecoration{
		PostImageID: imageID,
		UserID:      userID,
		StickerID:   stickerID,
		ZIndex:      zIndex,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	decoration.SetPlacement(placement)

	if err := decoration.Validate(); err != nil {
		return nil, err
	}

	return decoration, nil
}

// Placement returns the decoration's position, scale and rotation.
func (d *PostDecoration) Placement() Placement {
	return Placement{X: d.PosX, Y: d.PosY, Scale: d.Scale, Rotation: d.Rotation}
}

// SetPlacement overwrites all four placement fields together.
func (d *PostDecoration) SetPlacement(p Placement) {
	d.PosX = p.X
	d.PosY = p.Y
	d.Scale = p.Scale
	d.Rotation = p.Rotation
}

// Validate checks if the PostDecoration has valid data.
func (d *PostDecoration) Validate() error {
	if d.PostImageID == uuid.Nil {
		return ErrEmptyDecorationImageID
	}
	if d.UserID == uuid.Nil {
		return ErrEmptyDecorationUserID
	}
	if d.StickerID == uuid.Nil {
		return ErrEmptyDecorationStickerID
	}
	return d.Placement().Validate()
}
