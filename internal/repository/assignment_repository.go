package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/acadhub/horarios-api/internal/models"
)

// ErrUniqueViolation is returned when an insert loses the race on one of the
// slot uniqueness indexes (teacher, classroom or group per period/day/block).
var ErrUniqueViolation = errors.New("slot already occupied")

// AssignmentRepository provides persistence for schedule assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository creates a new assignment repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentColumns = "id, period_id, group_id, subject_id, teacher_id, classroom_id, day, block_id, origin, created_at"

// Create stores a new assignment. The database enforces slot uniqueness on
// the three resource axes; a violation surfaces as ErrUniqueViolation.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.ScheduleAssignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO schedule_assignments (id, period_id, group_id, subject_id, teacher_id, classroom_id, day, block_id, origin, created_at)
VALUES (:id, :period_id, :group_id, :subject_id, :teacher_id, :classroom_id, :day, :block_id, :origin, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrUniqueViolation
		}
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// CreateBatch inserts generated assignments in one transaction so a rerun
// never persists a half-written schedule.
func (r *AssignmentRepository) CreateBatch(ctx context.Context, assignments []models.ScheduleAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create assignments: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO schedule_assignments (id, period_id, group_id, subject_id, teacher_id, classroom_id, day, block_id, origin, created_at)
VALUES (:id, :period_id, :group_id, :subject_id, :teacher_id, :classroom_id, :day, :block_id, :origin, :created_at)`
	now := time.Now().UTC()
	for i := range assignments {
		if assignments[i].ID == "" {
			assignments[i].ID = uuid.NewString()
		}
		if assignments[i].CreatedAt.IsZero() {
			assignments[i].CreatedAt = now
		}
		if _, err = tx.NamedExecContext(ctx, query, &assignments[i]); err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				err = ErrUniqueViolation
				return err
			}
			return fmt.Errorf("create assignment batch: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create assignments: %w", err)
	}
	return nil
}

// List returns assignments matching the filter.
func (r *AssignmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.ScheduleAssignment, int, error) {
	base := "FROM schedule_assignments WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.PeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("period_id = $%d", len(args)+1))
		args = append(args, filter.PeriodID)
	}
	if filter.GroupID != "" {
		conditions = append(conditions, fmt.Sprintf("group_id = $%d", len(args)+1))
		args = append(args, filter.GroupID)
	}
	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassroomID != "" {
		conditions = append(conditions, fmt.Sprintf("classroom_id = $%d", len(args)+1))
		args = append(args, filter.ClassroomID)
	}
	if filter.SubjectID != "" {
		conditions = append(conditions, fmt.Sprintf("subject_id = $%d", len(args)+1))
		args = append(args, filter.SubjectID)
	}
	if filter.Day > 0 {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY day ASC, block_id ASC LIMIT %d OFFSET %d", assignmentColumns, base, size, offset)
	var assignments []models.ScheduleAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list assignments: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count assignments: %w", err)
	}
	return assignments, total, nil
}

// ListByPeriod returns every assignment of a period. Both the solver and the
// report builders seed their occupancy state from this.
func (r *AssignmentRepository) ListByPeriod(ctx context.Context, periodID string) ([]models.ScheduleAssignment, error) {
	query := fmt.Sprintf("SELECT %s FROM schedule_assignments WHERE period_id = $1 ORDER BY day ASC, block_id ASC", assignmentColumns)
	var assignments []models.ScheduleAssignment
	if err := r.db.SelectContext(ctx, &assignments, query, periodID); err != nil {
		return nil, fmt.Errorf("list assignments by period: %w", err)
	}
	return assignments, nil
}

// FindByID loads an assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.ScheduleAssignment, error) {
	var assignment models.ScheduleAssignment
	query := fmt.Sprintf("SELECT %s FROM schedule_assignments WHERE id = $1", assignmentColumns)
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

// DeleteAutoByPeriod clears generated rows before a rerun. Manual and
// override rows stay untouched.
func (r *AssignmentRepository) DeleteAutoByPeriod(ctx context.Context, periodID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schedule_assignments WHERE period_id = $1 AND origin = $2`, periodID, models.AssignmentOriginAuto)
	if err != nil {
		return 0, fmt.Errorf("delete auto assignments: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted assignments: %w", err)
	}
	return deleted, nil
}
