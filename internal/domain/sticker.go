package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxStickerNameLength is the longest name a sticker may have.
const MaxStickerNameLength = 100

// Sticker validation errors
var (
	ErrEmptyStickerCategoryID = errors.New("sticker category ID cannot be empty")
	ErrEmptyStickerName       = errors.New("sticker name cannot be empty")
	ErrStickerNameTooLong     = errors.New("sticker name must be at most 100 characters long")
	ErrEmptyStickerImageURL   = errors.New("sticker image URL cannot be empty")
)

// StickerCategory groups stickers in the sticker picker.
type StickerCategory struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewStickerCategory creates an active sticker category.
func NewStickerCategory(name string) (*StickerCategory, error) {
	now := time.Now().UTC()
	category := &StickerCategory{
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	return category, nil
}

// Validate checks if the StickerCategory has valid data.
func (c *StickerCategory) Validate() error {
	return validateCategoryName(c.Name)
}

// Sticker is a reusable decorative asset that users place on post images.
type Sticker struct {
	ID                uuid.UUID `json:"id"`
	StickerCategoryID uuid.UUID `json:"sticker_category_id"`
	Name              string    `json:"name"`
	ImageURL          string    `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NewSticker creates a sticker in the given sticker category.
func NewSticker(stickerCategoryID uuid.UUID, name, imageURL string) (*Sticker, error) {
	now := time.Now().UTC()
	sticker := &Sticker{
		StickerCategoryID: stickerCategoryID,
		Name:              name,
		ImageURL:          imageURL,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := sticker.Validate(); err != nil {
		return nil, err
	}

	return sticker, nil
}

// Validate checks if the Sticker has valid data.
func (s *Sticker) Validate() error {
	if s.StickerCategoryID == uuid.Nil {
		return ErrEmptyStickerCategoryID
	}
	if s.Name == "" {
		return ErrEmptyStickerName
	}
	if len([]rune(s.Name)) > MaxStickerNameLength {
		return ErrStickerNameTooLong
	}
	if s.ImageURL == "" {
		return ErrEmptyStickerImageURL
	}
	return nil
}
