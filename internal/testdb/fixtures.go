package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/nasda/nasda/internal/domain"
	"github.com/nasda/nasda/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures insert rows through the postgres stores. Unique columns carry a
// random suffix so parallel tests do not collide.

func uniqueSuffix() string {
	return uuid.NewString()[:8]
}

// MustInsertUser inserts an active user whose login ID starts with prefix.
func MustInsertUser(t *testing.T, tx *sql.Tx, prefix string) uuid.UUID {
	t.Helper()

	suffix := uniqueSuffix()
	user, err := domain.NewUser(
		fmt.Sprintf("%s_%s", prefix, suffix),
		"integration-password",
		fmt.Sprintf("%s_%s@example.com", prefix, suffix),
		prefix,
	)
	require.NoError(t, err)

	store := postgres.NewPostgresUserStore(tx, bcrypt.MinCost, nil)
	require.NoError(t, store.Save(context.Background(), user), "failed to insert user")
	return user.ID
}

// MustInsertCategory inserts an active post category.
func MustInsertCategory(t *testing.T, tx *sql.Tx) uuid.UUID {
	t.Helper()

	category, err := domain.NewCategory("category " + uniqueSuffix())
	require.NoError(t, err)

	store := postgres.NewPostgresCategoryStore(tx, nil)
	require.NoError(t, store.Save(context.Background(), category), "failed to insert category")
	return category.ID
}

// MustInsertPost inserts a post by userID in a fresh category.
func MustInsertPost(t *testing.T, tx *sql.Tx, userID uuid.UUID) uuid.UUID {
	t.Helper()

	post, err := domain.NewPost(userID, MustInsertCategory(t, tx), "post "+uniqueSuffix(), "")
	require.NoError(t, err)

	store := postgres.NewPostgresPostStore(tx, nil)
	require.NoError(t, store.Save(context.Background(), post), "failed to insert post")
	return post.ID
}

// MustInsertPostImage inserts an image of postID at sortOrder.
func MustInsertPostImage(t *testing.T, tx *sql.Tx, postID uuid.UUID, sortOrder int, representative bool) uuid.UUID {
	t.Helper()

	image, err := domain.NewPostImage(
		postID,
		fmt.Sprintf("https://cdn.example.com/%s.jpg", uniqueSuffix()),
		sortOrder,
		representative,
	)
	require.NoError(t, err)

	store := postgres.NewPostgresPostImageStore(tx, nil)
	require.NoError(t, store.Save(context.Background(), image), "failed to insert post image")
	return image.ID
}

// MustInsertSticker inserts a sticker in a fresh sticker category.
func MustInsertSticker(t *testing.T, tx *sql.Tx, name string) uuid.UUID {
	t.Helper()

	category, err := domain.NewStickerCategory("stickers " + uniqueSuffix())
	require.NoError(t, err)
	require.NoError(t,
		postgres.NewPostgresStickerCategoryStore(tx, nil).Save(context.Background(), category),
		"failed to insert sticker category")

	sticker, err := domain.NewSticker(category.ID, name, "https://cdn.example.com/"+name+".png")
	require.NoError(t, err)
	require.NoError(t,
		postgres.NewPostgresStickerStore(tx, nil).Save(context.Background(), sticker),
		"failed to insert sticker")
	return sticker.ID
}
