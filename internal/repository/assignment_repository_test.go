package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/models"
)

func newAssignmentRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestAssignmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO schedule_assignments").
		WithArgs(sqlmock.AnyArg(), "p1", "g1", "s1", "t1", "c1", 1, "b1", models.AssignmentOriginManual, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.ScheduleAssignment{
		PeriodID:    "p1",
		GroupID:     "g1",
		SubjectID:   "s1",
		TeacherID:   "t1",
		ClassroomID: "c1",
		Day:         1,
		BlockID:     "b1",
		Origin:      models.AssignmentOriginManual,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryCreateUniqueViolation(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("INSERT INTO schedule_assignments").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "uq_assignments_teacher_slot"})

	err := repo.Create(context.Background(), &models.ScheduleAssignment{
		PeriodID:    "p1",
		GroupID:     "g1",
		SubjectID:   "s1",
		TeacherID:   "t1",
		ClassroomID: "c1",
		Day:         1,
		BlockID:     "b1",
		Origin:      models.AssignmentOriginManual,
	})
	assert.ErrorIs(t, err, ErrUniqueViolation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryListByPeriod(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "period_id", "group_id", "subject_id", "teacher_id", "classroom_id", "day", "block_id", "origin", "created_at"}).
		AddRow("a1", "p1", "g1", "s1", "t1", "c1", 1, "b1", models.AssignmentOriginAuto, time.Now()).
		AddRow("a2", "p1", "g2", "s2", "t2", "c2", 2, "b2", models.AssignmentOriginManual, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, period_id, group_id, subject_id, teacher_id, classroom_id, day, block_id, origin, created_at FROM schedule_assignments WHERE period_id = $1 ORDER BY day ASC, block_id ASC")).
		WithArgs("p1").
		WillReturnRows(rows)

	list, err := repo.ListByPeriod(context.Background(), "p1")
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, "g1", list[0].GroupID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentRepositoryDeleteAutoByPeriod(t *testing.T) {
	db, mock, cleanup := newAssignmentRepoMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_assignments WHERE period_id = $1 AND origin = $2")).
		WithArgs("p1", models.AssignmentOriginAuto).
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteAutoByPeriod(context.Background(), "p1")
	require.NoError(t, err)
	assert.EqualValues(t, 7, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
