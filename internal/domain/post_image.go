package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PostImage validation errors
var (
	ErrEmptyPostImagePostID   = errors.New("post image post ID cannot be empty")
	ErrEmptyPostImageURL      = errors.New("post image URL cannot be empty")
	ErrNegativeImageSortOrder = errors.New("post image sort order cannot be negative")
)

// PostImage is one picture attached to a post. SortOrder positions it among
// the post's images and IsRepresentative marks the post's thumbnail; at most
// one image per post carries the flag.
type PostImage struct {
	ID               uuid.UUID `json:"id"`
	PostID           uuid.UUID `json:"post_id"`
	ImageURL         string    `json:"image_url"`
	SortOrder        int       `json:"sort_order"`
	IsRepresentative bool      `json:"is_representative"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewPostImage creates an image for postID at the given position.
func NewPostImage(postID uuid.UUID, imageURL string, sortOrder int, representative bool) (*PostImage, error) {
	image := &PostImage{
		PostID:           postID,
		ImageURL:         imageURL,
		SortOrder:        sortOrder,
		IsRepresentative: representative,
		CreatedAt:        time.Now().UTC(),
	}

	if err := image.Validate(); err != nil {
		return nil, err
	}

	return image, nil
}

// Validate checks if the PostImage has valid data.
func (i *PostImage) Validate() error {
	if i.PostID == uuid.Nil {
		return ErrEmptyPostImagePostID
	}
	if i.ImageURL == "" {
		return ErrEmptyPostImageURL
	}
	if i.SortOrder < 0 {
		return ErrNegativeImageSortOrder
	}
	return nil
}
