package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

// newMockDB returns a sqlmock-backed database that matches statements
// exactly (modulo whitespace) against the query constants of this package.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return db, mock
}

func pgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		ConstraintName: constraint,
		Message:        "constraint violated",
	}
}

var decorationColumnNames = []string{
	"id", "post_image_id", "user_id", "sticker_id",
	"pos_x", "pos_y", "scale", "rotation", "z_index",
	"created_at", "updated_at",
	"s_id", "s_sticker_category_id", "s_name", "s_image_url", "s_created_at", "s_updated_at",
}

type decorationRow struct {
	id, imageID, userID, stickerID uuid.UUID
	x, y, scale, rotation          float64
	zIndex                         int
	createdAt                      time.Time
}

func addDecorationRow(rows *sqlmock.Rows, r decorationRow, stickerCategoryID uuid.UUID) *sqlmock.Rows {
	return rows.AddRow(
		r.id.String(), r.imageID.String(), r.userID.String(), r.stickerID.String(),
		r.x, r.y, r.scale, r.rotation, r.zIndex,
		r.createdAt, r.createdAt,
		r.stickerID.String(), stickerCategoryID.String(), "heart", "https://cdn.example.com/heart.png",
		r.createdAt, r.createdAt,
	)
}
