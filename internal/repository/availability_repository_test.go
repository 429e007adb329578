package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/models"
)

func newAvailabilityRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAvailabilityRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectExec("INSERT INTO teacher_availability").
		WithArgs(sqlmock.AnyArg(), "t1", "p1", 2, "b1", true, 3, models.AvailabilityOriginManual, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Upsert(context.Background(), &models.TeacherAvailability{
		TeacherID: "t1",
		PeriodID:  "p1",
		Day:       2,
		BlockID:   "b1",
		Available: true,
		Weight:    3,
		Origin:    models.AvailabilityOriginManual,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryIsAvailableDefaultsToFalse(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT available FROM teacher_availability WHERE teacher_id = $1 AND period_id = $2 AND day = $3 AND block_id = $4")).
		WithArgs("t1", "p1", 1, "b1").
		WillReturnRows(sqlmock.NewRows([]string{"available"}))

	available, err := repo.IsAvailable(context.Background(), "t1", "p1", 1, "b1")
	require.NoError(t, err)
	assert.False(t, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvailabilityRepositoryIsAvailableMarkedSlot(t *testing.T) {
	db, mock, cleanup := newAvailabilityRepoMock(t)
	defer cleanup()
	repo := NewAvailabilityRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT available FROM teacher_availability")).
		WithArgs("t1", "p1", 1, "b1").
		WillReturnRows(sqlmock.NewRows([]string{"available"}).AddRow(true))

	available, err := repo.IsAvailable(context.Background(), "t1", "p1", 1, "b1")
	require.NoError(t, err)
	assert.True(t, available)
	assert.NoError(t, mock.ExpectationsWereMet())
}
