package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxPostTitleLength is the longest title a post may have.
const MaxPostTitleLength = 200

// Post validation errors
var (
	ErrEmptyPostUserID     = errors.New("post user ID cannot be empty")
	ErrEmptyPostCategoryID = errors.New("post category ID cannot be empty")
	ErrEmptyPostTitle      = errors.New("post title cannot be empty")
	ErrPostTitleTooLong    = errors.New("post title must be at most 200 characters long")
)

// Post is content authored by exactly one user and filed under exactly one
// category. Its images and their decorations hang off it.
type Post struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	CategoryID uuid.UUID `json:"category_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewPost creates a post written by userID under categoryID.
func NewPost(userID, categoryID uuid.UUID, title, content string) (*Post, error) {
	now := time.Now().UTC()
	post := &Post{
		UserID:     userID,
		CategoryID: categoryID,
		Title:      title,
		Content:    content,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
func (p *Post) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPostUserID
	}
	if p.CategoryID == uuid.Nil {
		return ErrEmptyPostCategoryID
	}
	if p.Title == "" {
		return ErrEmptyPostTitle
	}
	if len([]rune(p.Title)) > MaxPostTitleLength {
		return ErrPostTitleTooLong
	}
	return nil
}
