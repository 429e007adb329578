package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

func newExportFixture(assignments []models.ScheduleAssignment, cache *reportCacheStub, cfg ExportServiceConfig) *ExportService {
	grids, _ := newReportFixture(assignments, nil)
	var cacheIface reportCache
	if cache != nil {
		cacheIface = cache
	}
	return NewExportService(
		grids,
		genGroupsStub{items: []models.Group{
			{ID: "g1", Code: "G1", PeriodID: "p1"},
			{ID: "g2", Code: "G2", PeriodID: "p1"},
		}},
		periodReaderStub{periods: map[string]*models.Period{"p1": {ID: "p1", Name: "2026-I"}}},
		nil,
		nil,
		cacheIface,
		cfg,
		zap.NewNop(),
	)
}

func TestExcelExportHeaderOnlySheetsWhenEmpty(t *testing.T) {
	service := newExportFixture(nil, nil, ExportServiceConfig{})

	result, err := service.Excel(context.Background(), dto.GridQuery{PeriodID: "p1"})
	require.NoError(t, err)
	assert.False(t, result.Deferred)
	assert.Contains(t, result.Filename, "horarios_p1_")

	workbook, err := excelize.OpenReader(bytes.NewReader(result.Payload))
	require.NoError(t, err)
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	require.Equal(t, []string{"Grupo G1", "Grupo G2"}, sheets, "one sheet per group in the period")
	for _, sheet := range sheets {
		rows, err := workbook.GetRows(sheet)
		require.NoError(t, err)
		require.Len(t, rows, 1, "empty grid leaves only the header row")
		assert.Equal(t, []string{"Bloque", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}, rows[0])
	}
}

func TestExcelExportSingleViewSheet(t *testing.T) {
	service := newExportFixture(reportFixtureAssignments(), nil, ExportServiceConfig{})

	result, err := service.Excel(context.Background(), dto.GridQuery{PeriodID: "p1", GroupID: "g1"})
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(result.Payload))
	require.NoError(t, err)
	defer workbook.Close()

	require.Equal(t, []string{"Grupo G1"}, workbook.GetSheetList())
	rows, err := workbook.GetRows("Grupo G1")
	require.NoError(t, err)
	require.Len(t, rows, 3, "header plus one row per time block")
	assert.Equal(t, "07:00 - 08:00", rows[1][0])
	assert.Contains(t, rows[1][1], "MAT101")
	assert.Contains(t, rows[1][1], "Ana Quispe")
	assert.NotContains(t, rows[1][1], "G1", "group column is omitted on a group sheet")
}

func TestPDFExport(t *testing.T) {
	service := newExportFixture(reportFixtureAssignments(), nil, ExportServiceConfig{})

	result, err := service.PDF(context.Background(), dto.GridQuery{PeriodID: "p1", TeacherID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")), "payload is a PDF document")
}

func TestExportDefersPastRowLimit(t *testing.T) {
	cache := newReportCacheStub()
	service := newExportFixture(reportFixtureAssignments(), cache, ExportServiceConfig{AsyncRowLimit: 1})
	service.Start(context.Background())
	defer service.Stop()

	result, err := service.Excel(context.Background(), dto.GridQuery{PeriodID: "p1", GroupID: "g1"})
	require.NoError(t, err)
	assert.True(t, result.Deferred)
	assert.Nil(t, result.Payload)

	// A worker materializes the workbook into the cache; subsequent requests
	// serve the rendered bytes.
	require.Eventually(t, func() bool {
		again, err := service.Excel(context.Background(), dto.GridQuery{PeriodID: "p1", GroupID: "g1"})
		return err == nil && !again.Deferred && len(again.Payload) > 0
	}, 3*time.Second, 50*time.Millisecond)
}

func TestExportUnknownPeriod(t *testing.T) {
	service := newExportFixture(nil, nil, ExportServiceConfig{})

	_, err := service.Excel(context.Background(), dto.GridQuery{PeriodID: "p-ghost"})
	assertErrorCode(t, err, "NOT_FOUND")
}
