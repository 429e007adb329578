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

// CareerRepository provides persistence for careers and their cycles.
type CareerRepository struct {
	db *sqlx.DB
}

// NewCareerRepository creates a new career repository.
func NewCareerRepository(db *sqlx.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

const careerColumns = "id, unit_id, code, name, total_hours, created_at, updated_at"

// List returns careers with optional filtering and pagination.
func (r *CareerRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.Career, int, error) {
	base := "FROM careers WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.UnitID != "" {
		conditions = append(conditions, fmt.Sprintf("unit_id = $%d", len(args)+1))
		args = append(args, filter.UnitID)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR code ILIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", careerColumns, base, size, offset)
	var careers []models.Career
	if err := r.db.SelectContext(ctx, &careers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list careers: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count careers: %w", err)
	}
	return careers, total, nil
}

// FindByID loads a career by id.
func (r *CareerRepository) FindByID(ctx context.Context, id string) (*models.Career, error) {
	var career models.Career
	query := fmt.Sprintf("SELECT %s FROM careers WHERE id = $1", careerColumns)
	if err := r.db.GetContext(ctx, &career, query, id); err != nil {
		return nil, err
	}
	return &career, nil
}

// Create stores a new career.
func (r *CareerRepository) Create(ctx context.Context, career *models.Career) error {
	if career.ID == "" {
		career.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	career.CreatedAt = now
	career.UpdatedAt = now
	const query = `INSERT INTO careers (id, unit_id, code, name, total_hours, created_at, updated_at)
VALUES (:id, :unit_id, :code, :name, :total_hours, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, career); err != nil {
		return fmt.Errorf("create career: %w", err)
	}
	return nil
}

// Update modifies a career.
func (r *CareerRepository) Update(ctx context.Context, career *models.Career) error {
	career.UpdatedAt = time.Now().UTC()
	const query = `UPDATE careers SET unit_id = :unit_id, code = :code, name = :name, total_hours = :total_hours, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, career); err != nil {
		return fmt.Errorf("update career: %w", err)
	}
	return nil
}

// Delete removes a career by id.
func (r *CareerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM careers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete career: %w", err)
	}
	return nil
}

// ListCycles returns the cycles of a career ordered by curriculum position.
func (r *CareerRepository) ListCycles(ctx context.Context, careerID string) ([]models.Cycle, error) {
	const query = `SELECT id, career_id, name, ord, created_at FROM cycles WHERE career_id = $1 ORDER BY ord ASC`
	var cycles []models.Cycle
	if err := r.db.SelectContext(ctx, &cycles, query, careerID); err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

// FindCycleByID loads one cycle.
func (r *CareerRepository) FindCycleByID(ctx context.Context, id string) (*models.Cycle, error) {
	var cycle models.Cycle
	if err := r.db.GetContext(ctx, &cycle, `SELECT id, career_id, name, ord, created_at FROM cycles WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &cycle, nil
}

// CreateCycle stores a new cycle.
func (r *CareerRepository) CreateCycle(ctx context.Context, cycle *models.Cycle) error {
	if cycle.ID == "" {
		cycle.ID = uuid.NewString()
	}
	cycle.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO cycles (id, career_id, name, ord, created_at) VALUES (:id, :career_id, :name, :ord, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cycle); err != nil {
		return fmt.Errorf("create cycle: %w", err)
	}
	return nil
}

// DeleteCycle removes a cycle by id.
func (r *CareerRepository) DeleteCycle(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM cycles WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete cycle: %w", err)
	}
	return nil
}
