package entries

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/config"
)

// newMockDB opens GORM over a sqlmock connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func mockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	gdb, mock := newMockDB(t)
	cfg := &config.Config{
		ContentMinLen: 10,
		ContentMaxLen: 500,
		MaxTags:       5,
		MaxTagLen:     20,
		MaxImages:     3,
		CommentMaxLen: 200,
	}
	return NewService(gdb, cfg, nil, nil, nil, nil), mock
}

func TestTrendingScoreWeighsComments(t *testing.T) {
	svc, mock := mockService(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "entries"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`\(comment_count \* 2\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, total, err := svc.Trending(context.Background(), 1, 20)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Zero(t, total)

	require.NoError(t, mock.ExpectationsWereMet(),
		"trending query must rank by a score that includes comment_count")
}
