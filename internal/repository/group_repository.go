package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadhub/horarios-api/internal/models"
)

// GroupRepository provides persistence for groups and their subject sets.
type GroupRepository struct {
	db *sqlx.DB
}

// NewGroupRepository creates a new group repository.
func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

const groupColumns = "id, code, career_id, period_id, student_count, preferred_shift, override_teacher_id, created_at, updated_at"

// List returns groups with optional filtering and pagination.
func (r *GroupRepository) List(ctx context.Context, filter models.GroupFilter) ([]models.Group, int, error) {
	base := "FROM groups WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.PeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("period_id = $%d", len(args)+1))
		args = append(args, filter.PeriodID)
	}
	if filter.CareerID != "" {
		conditions = append(conditions, fmt.Sprintf("career_id = $%d", len(args)+1))
		args = append(args, filter.CareerID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("code ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", groupColumns, base, size, offset)
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list groups: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count groups: %w", err)
	}

	if err := r.attachSubjects(ctx, groups); err != nil {
		return nil, 0, err
	}
	return groups, total, nil
}

// ListByPeriod returns all groups of a period with subject sets attached,
// ordered by code for deterministic generation.
func (r *GroupRepository) ListByPeriod(ctx context.Context, periodID string) ([]models.Group, error) {
	query := fmt.Sprintf("SELECT %s FROM groups WHERE period_id = $1 ORDER BY code ASC", groupColumns)
	var groups []models.Group
	if err := r.db.SelectContext(ctx, &groups, query, periodID); err != nil {
		return nil, fmt.Errorf("list groups by period: %w", err)
	}
	if err := r.attachSubjects(ctx, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// FindByID loads a group with its subject set.
func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	query := fmt.Sprintf("SELECT %s FROM groups WHERE id = $1", groupColumns)
	if err := r.db.GetContext(ctx, &group, query, id); err != nil {
		return nil, err
	}
	groups := []models.Group{group}
	if err := r.attachSubjects(ctx, groups); err != nil {
		return nil, err
	}
	return &groups[0], nil
}

// Create stores a group and its subject links in one transaction.
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	group.CreatedAt = now
	group.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create group: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const query = `INSERT INTO groups (id, code, career_id, period_id, student_count, preferred_shift, override_teacher_id, created_at, updated_at)
VALUES (:id, :code, :career_id, :period_id, :student_count, :preferred_shift, :override_teacher_id, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, query, group); err != nil {
		return fmt.Errorf("create group: %w", err)
	}

	for _, subjectID := range group.SubjectIDs {
		if _, err = tx.ExecContext(ctx, `INSERT INTO group_subjects (group_id, subject_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, group.ID, subjectID); err != nil {
			return fmt.Errorf("link group subject: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create group: %w", err)
	}
	return nil
}

// Delete removes a group by id.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

type groupSubjectRow struct {
	GroupID   string `db:"group_id"`
	SubjectID string `db:"subject_id"`
}

func (r *GroupRepository) attachSubjects(ctx context.Context, groups []models.Group) error {
	if len(groups) == 0 {
		return nil
	}
	ids := make([]string, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.ID)
	}
	query, args, err := sqlx.In(`SELECT group_id, subject_id FROM group_subjects WHERE group_id IN (?) ORDER BY subject_id ASC`, ids)
	if err != nil {
		return fmt.Errorf("build group subjects query: %w", err)
	}
	query = r.db.Rebind(query)
	var rows []groupSubjectRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("list group subjects: %w", err)
	}
	bySubject := make(map[string][]string, len(groups))
	for _, row := range rows {
		bySubject[row.GroupID] = append(bySubject[row.GroupID], row.SubjectID)
	}
	for i := range groups {
		groups[i].SubjectIDs = bySubject[groups[i].ID]
	}
	return nil
}
