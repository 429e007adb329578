package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

type periodStoreStub struct {
	periodReaderStub
	created *models.Period
}

func (s *periodStoreStub) List(context.Context, models.CatalogFilter) ([]models.Period, int, error) {
	return nil, 0, nil
}

func (s *periodStoreStub) Create(_ context.Context, period *models.Period) error {
	period.ID = "p-new"
	s.created = period
	return nil
}

func (s *periodStoreStub) Update(context.Context, *models.Period) error { return nil }
func (s *periodStoreStub) Delete(context.Context, string) error         { return nil }

type timeBlockStoreStub struct {
	created *models.TimeBlock
}

func (s *timeBlockStoreStub) List(context.Context, models.CatalogFilter) ([]models.TimeBlock, int, error) {
	return nil, 0, nil
}

func (s *timeBlockStoreStub) FindByID(context.Context, string) (*models.TimeBlock, error) {
	return nil, sql.ErrNoRows
}

func (s *timeBlockStoreStub) Create(_ context.Context, block *models.TimeBlock) error {
	block.ID = "b-new"
	s.created = block
	return nil
}

func (s *timeBlockStoreStub) Delete(context.Context, string) error { return nil }

func newCatalogFixture() (*CatalogService, *periodStoreStub, *timeBlockStoreStub) {
	periods := &periodStoreStub{}
	blocks := &timeBlockStoreStub{}
	service := NewCatalogService(nil, nil, periods, blocks, nil, zap.NewNop())
	return service, periods, blocks
}

func TestCreatePeriodRejectsInvertedDates(t *testing.T) {
	service, _, _ := newCatalogFixture()

	_, err := service.CreatePeriod(context.Background(), dto.CreatePeriodRequest{
		Name:      "2026-I",
		StartDate: "2026-07-31",
		EndDate:   "2026-03-01",
	})
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCreatePeriodParsesDates(t *testing.T) {
	service, periods, _ := newCatalogFixture()

	period, err := service.CreatePeriod(context.Background(), dto.CreatePeriodRequest{
		Name:      "2026-I",
		StartDate: "2026-03-01",
		EndDate:   "2026-07-31",
		Active:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "p-new", period.ID)
	assert.True(t, period.EndDate.After(period.StartDate))
	require.NotNil(t, periods.created)
}

func TestCreateTimeBlockRejectsInvertedTimes(t *testing.T) {
	service, _, _ := newCatalogFixture()

	_, err := service.CreateTimeBlock(context.Background(), dto.CreateTimeBlockRequest{
		StartTime:  "09:00",
		EndTime:    "08:00",
		Shift:      models.ShiftMorning,
		OrderIndex: 1,
	})
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func TestCreateTimeBlock(t *testing.T) {
	service, _, blocks := newCatalogFixture()

	block, err := service.CreateTimeBlock(context.Background(), dto.CreateTimeBlockRequest{
		StartTime:  "07:00",
		EndTime:    "08:00",
		Shift:      models.ShiftMorning,
		OrderIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "b-new", block.ID)
	require.NotNil(t, blocks.created)
}
