package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

type availabilityStoreStub struct {
	upserts []models.TeacherAvailability
	slots   map[string]*models.TeacherAvailability
}

func (s *availabilityStoreStub) Upsert(_ context.Context, slot *models.TeacherAvailability) error {
	s.upserts = append(s.upserts, *slot)
	return nil
}

func (s *availabilityStoreStub) FindByID(_ context.Context, id string) (*models.TeacherAvailability, error) {
	if slot, ok := s.slots[id]; ok {
		return slot, nil
	}
	return nil, sql.ErrNoRows
}

func (s *availabilityStoreStub) Update(_ context.Context, slot *models.TeacherAvailability) error {
	s.slots[slot.ID] = slot
	return nil
}

func (s *availabilityStoreStub) List(context.Context, models.AvailabilityFilter) ([]models.TeacherAvailability, int, error) {
	return nil, 0, nil
}

func newAvailabilityFixture(store *availabilityStoreStub) *AvailabilityService {
	return NewAvailabilityService(
		store,
		teacherReaderStub{items: map[string]*models.Teacher{
			"t1": {ID: "t1", Code: "DOC-1", FullName: "Ana Quispe", Active: true},
		}},
		periodReaderStub{periods: map[string]*models.Period{"p1": {ID: "p1"}}},
		genBlocksStub{items: []models.TimeBlock{
			{ID: "b1", StartTime: "07:00", EndTime: "08:00", Shift: models.ShiftMorning, OrderIndex: 1},
			{ID: "b2", StartTime: "08:00", EndTime: "09:00", Shift: models.ShiftMorning, OrderIndex: 2},
		}},
		nil,
		zap.NewNop(),
		100,
	)
}

func buildAvailabilityWorkbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()
	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]string{"dia", "bloque", "disponible"}))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		require.NoError(t, file.SetSheetRow(sheet, cell, &values))
	}
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestAvailabilityUpsertValidatesEntities(t *testing.T) {
	store := &availabilityStoreStub{}
	service := newAvailabilityFixture(store)

	slot, err := service.Upsert(context.Background(), dto.UpsertAvailabilityRequest{
		TeacherID: "t1", PeriodID: "p1", Day: 1, BlockID: "b1", Available: true, Weight: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, models.AvailabilityOriginManual, slot.Origin)
	require.Len(t, store.upserts, 1)

	_, err = service.Upsert(context.Background(), dto.UpsertAvailabilityRequest{
		TeacherID: "t-ghost", PeriodID: "p1", Day: 1, BlockID: "b1",
	})
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestAvailabilityPatchForcesManualOrigin(t *testing.T) {
	store := &availabilityStoreStub{slots: map[string]*models.TeacherAvailability{
		"av1": {ID: "av1", TeacherID: "t1", PeriodID: "p1", Day: 1, BlockID: "b1", Available: true, Origin: models.AvailabilityOriginImport},
	}}
	service := newAvailabilityFixture(store)

	available := false
	slot, err := service.Patch(context.Background(), "av1", dto.PatchAvailabilityRequest{Available: &available})
	require.NoError(t, err)
	assert.False(t, slot.Available)
	assert.Equal(t, models.AvailabilityOriginManual, slot.Origin, "a manual edit overrides the imported origin")
}

func TestAvailabilityImportCountsPerRow(t *testing.T) {
	store := &availabilityStoreStub{}
	service := newAvailabilityFixture(store)

	rows := [][]string{
		{"1", "b1", "si"},
		{"1", "b2", "1"},
		{"2", "b1", "true"},
		{"2", "b2", "no"},
		{"3", "b1", "yes"},
		{"3", "b2", "0"},
		{"4", "b1", "si"},
		{"4", "b2", "si"},
		{"5", "b1", "si"},
		{"6", "b1", "si"},
		{"9", "b1", "si"}, // unknown day
		{"2", "b9", "si"}, // unknown block
	}
	buf := buildAvailabilityWorkbook(t, rows)

	outcome, err := service.Import(context.Background(), "t1", "p1", buf)
	require.NoError(t, err)

	assert.Equal(t, 10, outcome.Imported)
	assert.Equal(t, 2, outcome.Failed)
	require.Len(t, outcome.Failures, 2)
	assert.Contains(t, outcome.Failures[0].Reason, "unknown day")
	assert.Contains(t, outcome.Failures[1].Reason, "unknown time block")
	require.Len(t, store.upserts, 10)
	for _, slot := range store.upserts {
		assert.Equal(t, models.AvailabilityOriginImport, slot.Origin)
		assert.Equal(t, "t1", slot.TeacherID)
		assert.Equal(t, "p1", slot.PeriodID)
	}
}

func TestAvailabilityImportRejectsOversizedSheet(t *testing.T) {
	store := &availabilityStoreStub{}
	service := newAvailabilityFixture(store)

	var rows [][]string
	for i := 0; i < 120; i++ {
		rows = append(rows, []string{"1", "b1", "si"})
	}
	buf := buildAvailabilityWorkbook(t, rows)

	_, err := service.Import(context.Background(), "t1", "p1", buf)
	assertErrorCode(t, err, "VALIDATION_ERROR")
}

func TestAvailabilityImportRejectsNonSpreadsheet(t *testing.T) {
	service := newAvailabilityFixture(&availabilityStoreStub{})

	_, err := service.Import(context.Background(), "t1", "p1", bytes.NewBufferString("not a workbook"))
	assertErrorCode(t, err, "VALIDATION_ERROR")
}
