package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/models"
)

func newRestrictionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRestrictionRepositoryListActiveForPeriod(t *testing.T) {
	db, mock, cleanup := newRestrictionRepoMock(t)
	defer cleanup()
	repo := NewRestrictionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "code", "description", "kind", "entity_id_1", "entity_id_2", "numeric_param", "period_id", "active", "created_at", "updated_at"}).
		AddRow("r1", "R-001", "max daily load", models.RestrictionMaxHoursPerDay, "t1", nil, 6, nil, true, time.Now(), time.Now()).
		AddRow("r2", "R-002", "monday blackout", models.RestrictionTeacherDayBlackout, "t1", nil, nil, "p1", true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, code, description, kind, entity_id_1, entity_id_2, numeric_param, period_id, active, created_at, updated_at FROM restrictions WHERE active = TRUE AND (period_id = $1 OR period_id IS NULL) ORDER BY code ASC")).
		WithArgs("p1").
		WillReturnRows(rows)

	list, err := repo.ListActiveForPeriod(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.RestrictionMaxHoursPerDay, list[0].Kind)
	require.NotNil(t, list[0].NumericParam)
	assert.Equal(t, 6, *list[0].NumericParam)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRestrictionRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRestrictionRepoMock(t)
	defer cleanup()
	repo := NewRestrictionRepository(db)

	mock.ExpectExec("INSERT INTO restrictions").
		WithArgs(sqlmock.AnyArg(), "R-010", "no saturdays", models.RestrictionTeacherDayBlackout, "t1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacherID := "t1"
	err := repo.Create(context.Background(), &models.Restriction{
		Code:        "R-010",
		Description: "no saturdays",
		Kind:        models.RestrictionTeacherDayBlackout,
		EntityID1:   &teacherID,
		Active:      true,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
