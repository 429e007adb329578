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

// AcademicUnitRepository provides persistence for academic units.
type AcademicUnitRepository struct {
	db *sqlx.DB
}

// NewAcademicUnitRepository creates a new academic unit repository.
func NewAcademicUnitRepository(db *sqlx.DB) *AcademicUnitRepository {
	return &AcademicUnitRepository{db: db}
}

// List returns units with optional search and pagination.
func (r *AcademicUnitRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.AcademicUnit, int, error) {
	base := "FROM academic_units WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)+1))
		args = append(args, "%"+filter.Search+"%")
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)

	query := fmt.Sprintf("SELECT id, name, created_at, updated_at %s ORDER BY name ASC LIMIT %d OFFSET %d", base, size, offset)
	var units []models.AcademicUnit
	if err := r.db.SelectContext(ctx, &units, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list academic units: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count academic units: %w", err)
	}
	return units, total, nil
}

// FindByID loads a unit by id.
func (r *AcademicUnitRepository) FindByID(ctx context.Context, id string) (*models.AcademicUnit, error) {
	var unit models.AcademicUnit
	if err := r.db.GetContext(ctx, &unit, `SELECT id, name, created_at, updated_at FROM academic_units WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &unit, nil
}

// Create stores a new unit.
func (r *AcademicUnitRepository) Create(ctx context.Context, unit *models.AcademicUnit) error {
	if unit.ID == "" {
		unit.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	unit.CreatedAt = now
	unit.UpdatedAt = now
	const query = `INSERT INTO academic_units (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, unit); err != nil {
		return fmt.Errorf("create academic unit: %w", err)
	}
	return nil
}

// Update modifies a unit.
func (r *AcademicUnitRepository) Update(ctx context.Context, unit *models.AcademicUnit) error {
	unit.UpdatedAt = time.Now().UTC()
	const query = `UPDATE academic_units SET name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, unit); err != nil {
		return fmt.Errorf("update academic unit: %w", err)
	}
	return nil
}

// Delete removes a unit by id.
func (r *AcademicUnitRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM academic_units WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete academic unit: %w", err)
	}
	return nil
}

// paginate normalizes page-based list parameters shared by all repositories.
func paginate(page, size int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return size, (page - 1) * size
}
