package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadhub/horarios-api/internal/models"
)

// AvailabilityRepository provides persistence for teacher availability slots.
type AvailabilityRepository struct {
	db *sqlx.DB
}

// NewAvailabilityRepository creates a new availability repository.
func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

const availabilityColumns = "id, teacher_id, period_id, day, block_id, available, weight, origin, created_at, updated_at"

// Upsert creates or replaces the slot for (teacher, period, day, block).
func (r *AvailabilityRepository) Upsert(ctx context.Context, slot *models.TeacherAvailability) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now

	const query = `
INSERT INTO teacher_availability (id, teacher_id, period_id, day, block_id, available, weight, origin, created_at, updated_at)
VALUES (:id, :teacher_id, :period_id, :day, :block_id, :available, :weight, :origin, :created_at, :updated_at)
ON CONFLICT (teacher_id, period_id, day, block_id) DO UPDATE
SET available = EXCLUDED.available,
    weight = EXCLUDED.weight,
    origin = EXCLUDED.origin,
    updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("upsert availability: %w", err)
	}
	return nil
}

// FindByID loads one availability row.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id string) (*models.TeacherAvailability, error) {
	var slot models.TeacherAvailability
	query := fmt.Sprintf("SELECT %s FROM teacher_availability WHERE id = $1", availabilityColumns)
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// Update patches availability flag and weight in place.
func (r *AvailabilityRepository) Update(ctx context.Context, slot *models.TeacherAvailability) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE teacher_availability SET available = :available, weight = :weight, origin = :origin, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update availability: %w", err)
	}
	return nil
}

// List returns availability rows matching the filter.
func (r *AvailabilityRepository) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.TeacherAvailability, int, error) {
	base := "FROM teacher_availability WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.PeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("period_id = $%d", len(args)+1))
		args = append(args, filter.PeriodID)
	}
	if filter.Day > 0 {
		conditions = append(conditions, fmt.Sprintf("day = $%d", len(args)+1))
		args = append(args, filter.Day)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY day ASC, block_id ASC LIMIT %d OFFSET %d", availabilityColumns, base, size, offset)
	var slots []models.TeacherAvailability
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list availability: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count availability: %w", err)
	}
	return slots, total, nil
}

// ListByPeriod returns every availability row of a period. The solver builds
// its in-memory index from this in one query.
func (r *AvailabilityRepository) ListByPeriod(ctx context.Context, periodID string) ([]models.TeacherAvailability, error) {
	query := fmt.Sprintf("SELECT %s FROM teacher_availability WHERE period_id = $1", availabilityColumns)
	var slots []models.TeacherAvailability
	if err := r.db.SelectContext(ctx, &slots, query, periodID); err != nil {
		return nil, fmt.Errorf("list availability by period: %w", err)
	}
	return slots, nil
}

// IsAvailable reports whether the slot is explicitly marked teachable.
// Missing rows mean unavailable.
func (r *AvailabilityRepository) IsAvailable(ctx context.Context, teacherID, periodID string, day int, blockID string) (bool, error) {
	const query = `SELECT available FROM teacher_availability WHERE teacher_id = $1 AND period_id = $2 AND day = $3 AND block_id = $4`
	var available bool
	err := r.db.GetContext(ctx, &available, query, teacherID, periodID, day, blockID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check availability: %w", err)
	}
	return available, nil
}
