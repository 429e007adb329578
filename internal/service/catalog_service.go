package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type unitStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.AcademicUnit, int, error)
	FindByID(ctx context.Context, id string) (*models.AcademicUnit, error)
	Create(ctx context.Context, unit *models.AcademicUnit) error
	Update(ctx context.Context, unit *models.AcademicUnit) error
	Delete(ctx context.Context, id string) error
}

type careerStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Career, int, error)
	FindByID(ctx context.Context, id string) (*models.Career, error)
	Create(ctx context.Context, career *models.Career) error
	Update(ctx context.Context, career *models.Career) error
	Delete(ctx context.Context, id string) error
	ListCycles(ctx context.Context, careerID string) ([]models.Cycle, error)
	CreateCycle(ctx context.Context, cycle *models.Cycle) error
	DeleteCycle(ctx context.Context, id string) error
}

type periodStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.Period, int, error)
	FindByID(ctx context.Context, id string) (*models.Period, error)
	Create(ctx context.Context, period *models.Period) error
	Update(ctx context.Context, period *models.Period) error
	Delete(ctx context.Context, id string) error
}

type timeBlockStore interface {
	List(ctx context.Context, filter models.CatalogFilter) ([]models.TimeBlock, int, error)
	FindByID(ctx context.Context, id string) (*models.TimeBlock, error)
	Create(ctx context.Context, block *models.TimeBlock) error
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the structural catalog: units, careers, cycles,
// periods and time blocks.
type CatalogService struct {
	units     unitStore
	careers   careerStore
	periods   periodStore
	blocks    timeBlockStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogService wires the catalog dependencies.
func NewCatalogService(units unitStore, careers careerStore, periods periodStore, blocks timeBlockStore, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{units: units, careers: careers, periods: periods, blocks: blocks, validator: validate, logger: logger}
}

// --- Academic units ---

func (s *CatalogService) ListUnits(ctx context.Context, filter models.CatalogFilter) ([]models.AcademicUnit, int, error) {
	list, total, err := s.units.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list units")
	}
	return list, total, nil
}

func (s *CatalogService) CreateUnit(ctx context.Context, req dto.CreateUnitRequest) (*models.AcademicUnit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid unit payload")
	}
	unit := &models.AcademicUnit{Name: req.Name}
	if err := s.units.Create(ctx, unit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create unit")
	}
	return unit, nil
}

func (s *CatalogService) DeleteUnit(ctx context.Context, id string) error {
	if _, err := s.units.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "unit not found")
	}
	if err := s.units.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete unit")
	}
	return nil
}

// --- Careers and cycles ---

func (s *CatalogService) ListCareers(ctx context.Context, filter models.CatalogFilter) ([]models.Career, int, error) {
	list, total, err := s.careers.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list careers")
	}
	return list, total, nil
}

func (s *CatalogService) CreateCareer(ctx context.Context, req dto.CreateCareerRequest) (*models.Career, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid career payload")
	}
	if _, err := s.units.FindByID(ctx, req.UnitID); err != nil {
		return nil, notFoundOr(err, "unit not found")
	}
	career := &models.Career{UnitID: req.UnitID, Code: req.Code, Name: req.Name, TotalHours: req.TotalHours}
	if err := s.careers.Create(ctx, career); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create career")
	}
	return career, nil
}

func (s *CatalogService) DeleteCareer(ctx context.Context, id string) error {
	if _, err := s.careers.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "career not found")
	}
	if err := s.careers.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete career")
	}
	return nil
}

func (s *CatalogService) ListCycles(ctx context.Context, careerID string) ([]models.Cycle, error) {
	if _, err := s.careers.FindByID(ctx, careerID); err != nil {
		return nil, notFoundOr(err, "career not found")
	}
	cycles, err := s.careers.ListCycles(ctx, careerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list cycles")
	}
	return cycles, nil
}

func (s *CatalogService) CreateCycle(ctx context.Context, req dto.CreateCycleRequest) (*models.Cycle, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid cycle payload")
	}
	if _, err := s.careers.FindByID(ctx, req.CareerID); err != nil {
		return nil, notFoundOr(err, "career not found")
	}
	cycle := &models.Cycle{CareerID: req.CareerID, Name: req.Name, Order: req.Order}
	if err := s.careers.CreateCycle(ctx, cycle); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create cycle")
	}
	return cycle, nil
}

func (s *CatalogService) DeleteCycle(ctx context.Context, id string) error {
	if err := s.careers.DeleteCycle(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete cycle")
	}
	return nil
}

// --- Periods ---

func (s *CatalogService) ListPeriods(ctx context.Context, filter models.CatalogFilter) ([]models.Period, int, error) {
	list, total, err := s.periods.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list periods")
	}
	return list, total, nil
}

func (s *CatalogService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest) (*models.Period, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid period payload")
	}
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must be after start_date")
	}
	period := &models.Period{Name: req.Name, StartDate: start, EndDate: end, Active: req.Active}
	if err := s.periods.Create(ctx, period); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create period")
	}
	return period, nil
}

func (s *CatalogService) DeletePeriod(ctx context.Context, id string) error {
	if _, err := s.periods.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "period not found")
	}
	if err := s.periods.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete period")
	}
	return nil
}

// --- Time blocks ---

func (s *CatalogService) ListTimeBlocks(ctx context.Context, filter models.CatalogFilter) ([]models.TimeBlock, int, error) {
	list, total, err := s.blocks.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list time blocks")
	}
	return list, total, nil
}

func (s *CatalogService) CreateTimeBlock(ctx context.Context, req dto.CreateTimeBlockRequest) (*models.TimeBlock, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time block payload")
	}
	if req.EndTime <= req.StartTime {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_time must be after start_time")
	}
	block := &models.TimeBlock{
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Shift:      req.Shift,
		DayOfWeek:  req.DayOfWeek,
		OrderIndex: req.OrderIndex,
	}
	if err := s.blocks.Create(ctx, block); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create time block")
	}
	return block, nil
}

func (s *CatalogService) DeleteTimeBlock(ctx context.Context, id string) error {
	if _, err := s.blocks.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "time block not found")
	}
	if err := s.blocks.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete time block")
	}
	return nil
}
