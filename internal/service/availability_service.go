package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type availabilityStore interface {
	Upsert(ctx context.Context, slot *models.TeacherAvailability) error
	FindByID(ctx context.Context, id string) (*models.TeacherAvailability, error)
	Update(ctx context.Context, slot *models.TeacherAvailability) error
	List(ctx context.Context, filter models.AvailabilityFilter) ([]models.TeacherAvailability, int, error)
}

// AvailabilityService manages teacher availability slots, including the
// spreadsheet bulk import.
type AvailabilityService struct {
	availability availabilityStore
	teachers     teacherReader
	periods      periodReader
	blocks       blockReader
	validator    *validator.Validate
	logger       *zap.Logger
	maxRows      int
}

// NewAvailabilityService wires the availability dependencies.
func NewAvailabilityService(
	availability availabilityStore,
	teachers teacherReader,
	periods periodReader,
	blocks blockReader,
	validate *validator.Validate,
	logger *zap.Logger,
	maxRows int,
) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 2000
	}
	return &AvailabilityService{
		availability: availability,
		teachers:     teachers,
		periods:      periods,
		blocks:       blocks,
		validator:    validate,
		logger:       logger,
		maxRows:      maxRows,
	}
}

// Upsert creates or replaces one availability slot.
func (s *AvailabilityService) Upsert(ctx context.Context, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	if _, err := s.periods.FindByID(ctx, req.PeriodID); err != nil {
		return nil, notFoundOr(err, "period not found")
	}
	if _, err := s.blocks.FindByID(ctx, req.BlockID); err != nil {
		return nil, notFoundOr(err, "time block not found")
	}

	slot := &models.TeacherAvailability{
		TeacherID: req.TeacherID,
		PeriodID:  req.PeriodID,
		Day:       req.Day,
		BlockID:   req.BlockID,
		Available: req.Available,
		Weight:    req.Weight,
		Origin:    models.AvailabilityOriginManual,
	}
	if err := s.availability.Upsert(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}
	return slot, nil
}

// Patch updates the available flag and weight of one slot in place.
func (s *AvailabilityService) Patch(ctx context.Context, id string, req dto.PatchAvailabilityRequest) (*models.TeacherAvailability, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}
	slot, err := s.availability.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "availability record not found")
	}
	if req.Available != nil {
		slot.Available = *req.Available
	}
	if req.Weight != nil {
		slot.Weight = *req.Weight
	}
	slot.Origin = models.AvailabilityOriginManual
	if err := s.availability.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update availability")
	}
	return slot, nil
}

// List returns availability slots matching the filter.
func (s *AvailabilityService) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.TeacherAvailability, int, error) {
	list, total, err := s.availability.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability")
	}
	return list, total, nil
}

// Import bulk-upserts availability rows from a spreadsheet for one
// (teacher, period) pair. Each data row is (day, block id, available flag).
// Malformed rows are rejected individually; the batch never aborts.
func (s *AvailabilityService) Import(ctx context.Context, teacherID, periodID string, file io.Reader) (*dto.ImportOutcome, error) {
	if teacherID == "" || periodID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacher_id and period_id are required")
	}
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	if _, err := s.periods.FindByID(ctx, periodID); err != nil {
		return nil, notFoundOr(err, "period not found")
	}
	blocks, err := s.blocks.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time blocks")
	}
	knownBlocks := make(map[string]bool, len(blocks))
	for _, block := range blocks {
		knownBlocks[block.ID] = true
	}

	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "file is not a readable spreadsheet")
	}
	defer workbook.Close()

	sheet := workbook.GetSheetName(0)
	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read spreadsheet rows")
	}
	if len(rows) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("spreadsheet exceeds the %d row limit", s.maxRows))
	}

	outcome := &dto.ImportOutcome{Failures: []dto.ImportRowFailure{}}
	for i, row := range rows {
		rowNum := i + 1
		if i == 0 && looksLikeHeader(row) {
			continue
		}
		if isEmptyRow(row) {
			continue
		}
		if len(row) < 3 {
			outcome.AddFailure(rowNum, "expected columns: day, block, available")
			continue
		}
		day, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || day < models.DayMin || day > models.DayMax {
			outcome.AddFailure(rowNum, fmt.Sprintf("unknown day id %q", strings.TrimSpace(row[0])))
			continue
		}
		blockID := strings.TrimSpace(row[1])
		if !knownBlocks[blockID] {
			outcome.AddFailure(rowNum, fmt.Sprintf("unknown time block %q", blockID))
			continue
		}
		available, ok := parseAvailableFlag(row[2])
		if !ok {
			outcome.AddFailure(rowNum, fmt.Sprintf("invalid available flag %q", strings.TrimSpace(row[2])))
			continue
		}

		slot := &models.TeacherAvailability{
			TeacherID: teacherID,
			PeriodID:  periodID,
			Day:       day,
			BlockID:   blockID,
			Available: available,
			Origin:    models.AvailabilityOriginImport,
		}
		if err := s.availability.Upsert(ctx, slot); err != nil {
			s.logger.Warn("availability import row failed", zap.Int("row", rowNum), zap.Error(err))
			outcome.AddFailure(rowNum, "storage failure")
			continue
		}
		outcome.Imported++
	}

	s.logger.Info("availability import finished",
		zap.String("teacherId", teacherID),
		zap.String("periodId", periodID),
		zap.Int("imported", outcome.Imported),
		zap.Int("failed", outcome.Failed))
	return outcome, nil
}

func looksLikeHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSpace(row[0]))
	return err != nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseAvailableFlag(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "si", "sí", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}
