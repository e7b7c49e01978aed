package missions

import (
	"math/rand"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/dongkyukim1/confession-backend/internal/apps/achievements"
)

func newMockService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)

	return NewService(gdb, achievements.NewService(gdb), rand.New(rand.NewSource(1))), mock
}

func TestEnsureIsIdempotentWithinADay(t *testing.T) {
	svc, mock := newMockService(t)
	deviceID := uuid.New()
	date := "2025-06-10"

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	// First request of the day finds nothing and instantiates a set.
	mock.ExpectQuery(`SELECT \* FROM "mission_instances"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "mission_instances"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(ids[0].String()).
			AddRow(ids[1].String()).
			AddRow(ids[2].String()))
	mock.ExpectCommit()

	first, err := svc.ensure(deviceID, date)
	require.NoError(t, err)
	require.Len(t, first, dailyCount)

	// Second request the same day reads the stored set back; no
	// regeneration, no insert.
	stored := sqlmock.NewRows([]string{"id", "device_id", "mission_date", "type", "title", "target", "reward"})
	for i, inst := range first {
		stored.AddRow(ids[i].String(), deviceID.String(), date, inst.Type, inst.Title, inst.Target, inst.Reward)
	}
	mock.ExpectQuery(`SELECT \* FROM "mission_instances"`).WillReturnRows(stored)

	second, err := svc.ensure(deviceID, date)
	require.NoError(t, err)
	require.Len(t, second, dailyCount)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.Equal(t, first[i].Type, second[i].Type)
	}

	require.NoError(t, mock.ExpectationsWereMet(),
		"a second request on the same date must not insert a new set")
}
