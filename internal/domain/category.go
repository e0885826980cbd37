package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxCategoryNameLength is the longest name a post or sticker category may have.
const MaxCategoryNameLength = 100

// Category validation errors
var (
	ErrEmptyCategoryName   = errors.New("category name cannot be empty")
	ErrCategoryNameTooLong = errors.New("category name must be at most 100 characters long")
)

// Category is a board that posts are filed under.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCategory creates an active category with the given name.
func NewCategory(name string) (*Category, error) {
	now := time.Now().UTC()
	category := &Category{
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

// Validate checks if the Category has valid data.
func (c *Category) Validate() error {
	return validateCategoryName(c.Name)
}

func validateCategoryName(name string) error {
	if name == "" {
		return ErrEmptyCategoryName
	}
	if len([]rune(name)) > MaxCategoryNameLength {
		return ErrCategoryNameTooLong
	}
	return nil
}
