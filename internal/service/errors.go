package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	ErrNotOwned = errors.New("resource is owned by another user")

	// ErrDecorationLimitReached indicates the user already placed the
	// configured maximum number of stickers on the image.
	ErrDecorationLimitReached = errors.New("decoration limit reached for this image")

	// ErrImageNotInPost indicates the image does not exist or belongs to a
	// different post than the one named in the request.
	ErrImageNotInPost = errors.New("image does not belong to post")
)
