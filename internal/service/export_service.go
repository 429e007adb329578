package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
	"github.com/acadhub/horarios-api/pkg/export"
	"github.com/acadhub/horarios-api/pkg/jobs"
)

// Export formats.
const (
	ExportFormatExcel = "xlsx"
	ExportFormatPDF   = "pdf"
)

var dayHeaders = map[int]string{
	1: "Lunes",
	2: "Martes",
	3: "Miércoles",
	4: "Jueves",
	5: "Viernes",
	6: "Sábado",
}

type gridSource interface {
	Grid(ctx context.Context, q dto.GridQuery) (*dto.ScheduleGrid, error)
}

type excelRenderer interface {
	Render(sheets []export.Sheet) ([]byte, error)
}

type pdfRenderer interface {
	Render(sheets []export.Sheet, title string) ([]byte, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	WorkerCount   int
	AsyncRowLimit int
	ResultTTL     time.Duration
}

// ExportResult carries either the rendered file or, for oversized exports,
// the deferred marker while a worker materializes the file into the cache.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
	Deferred    bool
}

type exportJobPayload struct {
	Query  dto.GridQuery
	Format string
}

// ExportService renders timetable grids into spreadsheet and PDF files.
// Small exports render inline; exports past the row limit are handed to the
// worker queue and served from the cache once materialized.
type ExportService struct {
	grids   gridSource
	groups  generationGroupSource
	periods periodReader
	excel   excelRenderer
	pdf     pdfRenderer
	cache   reportCache
	queue   *jobs.Queue
	cfg     ExportServiceConfig
	logger  *zap.Logger
}

// NewExportService constructs an ExportService and its worker queue. Call
// Start before serving and Stop on shutdown.
func NewExportService(
	grids gridSource,
	groups generationGroupSource,
	periods periodReader,
	excel excelRenderer,
	pdf pdfRenderer,
	cache reportCache,
	cfg ExportServiceConfig,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if excel == nil {
		excel = export.NewExcelExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.AsyncRowLimit <= 0 {
		cfg.AsyncRowLimit = 5000
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 30 * time.Minute
	}

	s := &ExportService{
		grids:   grids,
		groups:  groups,
		periods: periods,
		excel:   excel,
		pdf:     pdf,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
	}
	s.queue = jobs.NewQueue("exports", s.handleJob, jobs.QueueConfig{
		Workers: cfg.WorkerCount,
		Logger:  logger,
	})
	return s
}

// Start launches the export workers.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the export workers.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Excel renders the requested views into one xlsx workbook.
func (s *ExportService) Excel(ctx context.Context, q dto.GridQuery) (*ExportResult, error) {
	return s.export(ctx, q, ExportFormatExcel)
}

// PDF renders the requested views into one PDF document.
func (s *ExportService) PDF(ctx context.Context, q dto.GridQuery) (*ExportResult, error) {
	return s.export(ctx, q, ExportFormatPDF)
}

func (s *ExportService) export(ctx context.Context, q dto.GridQuery, format string) (*ExportResult, error) {
	if q.PeriodID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period_id is required")
	}
	period, err := s.periods.FindByID(ctx, q.PeriodID)
	if err != nil {
		return nil, notFoundOr(err, "period not found")
	}

	if s.cache != nil {
		var cached []byte
		if err := s.cache.Get(ctx, s.resultKey(q, format), &cached); err == nil {
			return s.result(q, format, cached, false), nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("export cache read failed", zap.Error(err))
		}
	}

	sheets, err := s.buildSheets(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.countRows(sheets) > s.cfg.AsyncRowLimit {
		job := jobs.Job{
			ID:      s.resultKey(q, format),
			Type:    "export." + format,
			Payload: exportJobPayload{Query: q, Format: format},
		}
		if err := s.queue.Enqueue(job); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
		}
		s.logger.Info("export deferred to worker queue",
			zap.String("periodId", q.PeriodID),
			zap.String("format", format))
		return &ExportResult{Deferred: true}, nil
	}

	payload, err := s.render(sheets, format, period.Name)
	if err != nil {
		return nil, err
	}
	return s.result(q, format, payload, false), nil
}

// handleJob materializes one deferred export into the cache.
func (s *ExportService) handleJob(ctx context.Context, job jobs.Job) error {
	payload, ok := job.Payload.(exportJobPayload)
	if !ok {
		return fmt.Errorf("unexpected export payload %T", job.Payload)
	}
	period, err := s.periods.FindByID(ctx, payload.Query.PeriodID)
	if err != nil {
		return err
	}
	sheets, err := s.buildSheets(ctx, payload.Query)
	if err != nil {
		return err
	}
	rendered, err := s.render(sheets, payload.Format, period.Name)
	if err != nil {
		return err
	}
	if s.cache == nil {
		return fmt.Errorf("no cache to hold deferred export")
	}
	return s.cache.Set(ctx, s.resultKey(payload.Query, payload.Format), rendered, s.cfg.ResultTTL)
}

func (s *ExportService) render(sheets []export.Sheet, format, title string) ([]byte, error) {
	var payload []byte
	var err error
	switch format {
	case ExportFormatExcel:
		payload, err = s.excel.Render(sheets)
	case ExportFormatPDF:
		payload, err = s.pdf.Render(sheets, title)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return payload, nil
}

// buildSheets resolves the requested views into sheets. Each entity filter
// contributes one sheet; with no filter the export covers the whole period,
// one sheet per group.
func (s *ExportService) buildSheets(ctx context.Context, q dto.GridQuery) ([]export.Sheet, error) {
	queries := []dto.GridQuery{}
	if q.GroupID != "" {
		queries = append(queries, dto.GridQuery{PeriodID: q.PeriodID, GroupID: q.GroupID})
	}
	if q.TeacherID != "" {
		queries = append(queries, dto.GridQuery{PeriodID: q.PeriodID, TeacherID: q.TeacherID})
	}
	if q.ClassroomID != "" {
		queries = append(queries, dto.GridQuery{PeriodID: q.PeriodID, ClassroomID: q.ClassroomID})
	}
	if len(queries) == 0 {
		groups, err := s.groups.ListByPeriod(ctx, q.PeriodID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
		}
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Code < groups[j].Code })
		for _, group := range groups {
			queries = append(queries, dto.GridQuery{PeriodID: q.PeriodID, GroupID: group.ID})
		}
		if len(queries) == 0 {
			queries = append(queries, dto.GridQuery{PeriodID: q.PeriodID})
		}
	}

	sheets := make([]export.Sheet, 0, len(queries))
	for _, query := range queries {
		grid, err := s.grids.Grid(ctx, query)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, sheetFromGrid(grid))
	}
	return sheets, nil
}

func (s *ExportService) countRows(sheets []export.Sheet) int {
	total := 0
	for _, sheet := range sheets {
		total += len(sheet.Data.Rows)
	}
	return total
}

func (s *ExportService) result(q dto.GridQuery, format string, payload []byte, deferred bool) *ExportResult {
	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if format == ExportFormatPDF {
		contentType = "application/pdf"
	}
	return &ExportResult{
		Filename:    buildExportFilename(q.PeriodID, format),
		ContentType: contentType,
		Payload:     payload,
		Deferred:    deferred,
	}
}

// resultKey lives under the schedule:{periodID}: prefix so rendered files
// are dropped together with the grids when the schedule changes.
func (s *ExportService) resultKey(q dto.GridQuery, format string) string {
	view, entityID := resolveView(q)
	key := "schedule:" + q.PeriodID + ":export:" + format + ":" + view
	if entityID != "" {
		key += ":" + entityID
	}
	return key
}

func buildExportFilename(periodID, format string) string {
	stamp := time.Now().UTC().Format("20060102_150405")
	return fmt.Sprintf("horarios_%s_%s.%s", sanitizeFilename(periodID), stamp, format)
}

func sanitizeFilename(raw string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-")
	return replacer.Replace(raw)
}

// sheetFromGrid flattens a grid into the tabular dataset the renderers
// consume: one row per time block, one column per weekday.
func sheetFromGrid(grid *dto.ScheduleGrid) export.Sheet {
	headers := []string{"Bloque"}
	for day := 1; day <= 6; day++ {
		headers = append(headers, dayHeaders[day])
	}

	rows := make([]map[string]string, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		record := map[string]string{"Bloque": row.StartTime + " - " + row.EndTime}
		for day := 1; day <= 6; day++ {
			cell, ok := row.Cells[day]
			if !ok {
				continue
			}
			record[dayHeaders[day]] = formatCell(grid.View, cell)
		}
		rows = append(rows, record)
	}

	return export.Sheet{
		Name: grid.Title,
		Data: export.Dataset{Headers: headers, Rows: rows},
	}
}

// formatCell omits the axis the sheet is already read along.
func formatCell(view string, cell dto.GridCell) string {
	parts := []string{cell.SubjectCode}
	if view != GridViewGroup {
		parts = append(parts, cell.GroupCode)
	}
	if view != GridViewTeacher {
		parts = append(parts, cell.TeacherName)
	}
	if view != GridViewRoom {
		parts = append(parts, cell.ClassroomName)
	}
	return strings.Join(parts, " | ")
}
