package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/acadhub/horarios-api/internal/models"
)

// TimeBlockRepository provides persistence for time blocks.
type TimeBlockRepository struct {
	db *sqlx.DB
}

// NewTimeBlockRepository creates a new time block repository.
func NewTimeBlockRepository(db *sqlx.DB) *TimeBlockRepository {
	return &TimeBlockRepository{db: db}
}

const timeBlockColumns = "id, start_time, end_time, shift, day_of_week, order_index, created_at"

// ListAll returns every time block ordered by position. The solver depends
// on this ordering for contiguity checks.
func (r *TimeBlockRepository) ListAll(ctx context.Context) ([]models.TimeBlock, error) {
	query := fmt.Sprintf("SELECT %s FROM time_blocks ORDER BY order_index ASC, start_time ASC", timeBlockColumns)
	var blocks []models.TimeBlock
	if err := r.db.SelectContext(ctx, &blocks, query); err != nil {
		return nil, fmt.Errorf("list time blocks: %w", err)
	}
	return blocks, nil
}

// List returns time blocks with pagination for the admin listing.
func (r *TimeBlockRepository) List(ctx context.Context, filter models.CatalogFilter) ([]models.TimeBlock, int, error) {
	size, offset := paginate(filter.Page, filter.PageSize)
	query := fmt.Sprintf("SELECT %s FROM time_blocks ORDER BY order_index ASC LIMIT %d OFFSET %d", timeBlockColumns, size, offset)
	var blocks []models.TimeBlock
	if err := r.db.SelectContext(ctx, &blocks, query); err != nil {
		return nil, 0, fmt.Errorf("list time blocks: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM time_blocks"); err != nil {
		return nil, 0, fmt.Errorf("count time blocks: %w", err)
	}
	return blocks, total, nil
}

// FindByID loads a time block by id.
func (r *TimeBlockRepository) FindByID(ctx context.Context, id string) (*models.TimeBlock, error) {
	var block models.TimeBlock
	query := fmt.Sprintf("SELECT %s FROM time_blocks WHERE id = $1", timeBlockColumns)
	if err := r.db.GetContext(ctx, &block, query, id); err != nil {
		return nil, err
	}
	return &block, nil
}

// Create stores a new time block.
func (r *TimeBlockRepository) Create(ctx context.Context, block *models.TimeBlock) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	block.CreatedAt = time.Now().UTC()
	const query = `INSERT INTO time_blocks (id, start_time, end_time, shift, day_of_week, order_index, created_at)
VALUES (:id, :start_time, :end_time, :shift, :day_of_week, :order_index, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, block); err != nil {
		return fmt.Errorf("create time block: %w", err)
	}
	return nil
}

// Delete removes a time block by id.
func (r *TimeBlockRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_blocks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}
	return nil
}
