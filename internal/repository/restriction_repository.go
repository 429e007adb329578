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

// RestrictionRepository provides persistence for scheduling restrictions.
type RestrictionRepository struct {
	db *sqlx.DB
}

// NewRestrictionRepository creates a new restriction repository.
func NewRestrictionRepository(db *sqlx.DB) *RestrictionRepository {
	return &RestrictionRepository{db: db}
}

const restrictionColumns = "id, code, description, kind, entity_id_1, entity_id_2, numeric_param, period_id, active, created_at, updated_at"

// List returns restrictions with optional filtering and pagination.
func (r *RestrictionRepository) List(ctx context.Context, filter models.RestrictionFilter) ([]models.Restriction, int, error) {
	base := "FROM restrictions WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.PeriodID != "" {
		conditions = append(conditions, fmt.Sprintf("(period_id = $%d OR period_id IS NULL)", len(args)+1))
		args = append(args, filter.PeriodID)
	}
	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("kind = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s %s ORDER BY code ASC LIMIT %d OFFSET %d", restrictionColumns, base, size, offset)
	var restrictions []models.Restriction
	if err := r.db.SelectContext(ctx, &restrictions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list restrictions: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) %s", base), args...); err != nil {
		return nil, 0, fmt.Errorf("count restrictions: %w", err)
	}
	return restrictions, total, nil
}

// ListActiveForPeriod returns active restrictions that apply to the period:
// rows scoped to it plus global rows with no period. Ordered by code so the
// evaluator walks them in a stable order.
func (r *RestrictionRepository) ListActiveForPeriod(ctx context.Context, periodID string) ([]models.Restriction, error) {
	query := fmt.Sprintf("SELECT %s FROM restrictions WHERE active = TRUE AND (period_id = $1 OR period_id IS NULL) ORDER BY code ASC", restrictionColumns)
	var restrictions []models.Restriction
	if err := r.db.SelectContext(ctx, &restrictions, query, periodID); err != nil {
		return nil, fmt.Errorf("list active restrictions: %w", err)
	}
	return restrictions, nil
}

// FindByID loads a restriction by id.
func (r *RestrictionRepository) FindByID(ctx context.Context, id string) (*models.Restriction, error) {
	var restriction models.Restriction
	query := fmt.Sprintf("SELECT %s FROM restrictions WHERE id = $1", restrictionColumns)
	if err := r.db.GetContext(ctx, &restriction, query, id); err != nil {
		return nil, err
	}
	return &restriction, nil
}

// Create stores a new restriction.
func (r *RestrictionRepository) Create(ctx context.Context, restriction *models.Restriction) error {
	if restriction.ID == "" {
		restriction.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	restriction.CreatedAt = now
	restriction.UpdatedAt = now
	const query = `INSERT INTO restrictions (id, code, description, kind, entity_id_1, entity_id_2, numeric_param, period_id, active, created_at, updated_at)
VALUES (:id, :code, :description, :kind, :entity_id_1, :entity_id_2, :numeric_param, :period_id, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, restriction); err != nil {
		return fmt.Errorf("create restriction: %w", err)
	}
	return nil
}

// Update modifies a restriction.
func (r *RestrictionRepository) Update(ctx context.Context, restriction *models.Restriction) error {
	restriction.UpdatedAt = time.Now().UTC()
	const query = `UPDATE restrictions SET code = :code, description = :description, kind = :kind, entity_id_1 = :entity_id_1, entity_id_2 = :entity_id_2, numeric_param = :numeric_param, period_id = :period_id, active = :active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, restriction); err != nil {
		return fmt.Errorf("update restriction: %w", err)
	}
	return nil
}

// Delete removes a restriction by id.
func (r *RestrictionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM restrictions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete restriction: %w", err)
	}
	return nil
}
