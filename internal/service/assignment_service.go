package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	"github.com/acadhub/horarios-api/internal/repository"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type assignmentStore interface {
	Create(ctx context.Context, assignment *models.ScheduleAssignment) error
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.ScheduleAssignment, int, error)
	ListByPeriod(ctx context.Context, periodID string) ([]models.ScheduleAssignment, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleAssignment, error)
	Delete(ctx context.Context, id string) error
}

type availabilityChecker interface {
	IsAvailable(ctx context.Context, teacherID, periodID string, day int, blockID string) (bool, error)
}

type restrictionSource interface {
	ListActiveForPeriod(ctx context.Context, periodID string) ([]models.Restriction, error)
}

type groupReader interface {
	FindByID(ctx context.Context, id string) (*models.Group, error)
}

type subjectReader interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type classroomReader interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	ListAll(ctx context.Context) ([]models.Classroom, error)
}

type blockReader interface {
	FindByID(ctx context.Context, id string) (*models.TimeBlock, error)
	ListAll(ctx context.Context) ([]models.TimeBlock, error)
}

type cycleReader interface {
	FindCycleByID(ctx context.Context, id string) (*models.Cycle, error)
	FindByID(ctx context.Context, id string) (*models.Career, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// AssignmentService gates manual schedule assignments through the fixed
// validation chain and owns listing/removal of committed rows.
type AssignmentService struct {
	assignments  assignmentStore
	availability availabilityChecker
	restrictions restrictionSource
	groups       groupReader
	subjects     subjectReader
	teachers     teacherReader
	classrooms   classroomReader
	blocks       blockReader
	cycles       cycleReader
	cache        cacheInvalidator
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewAssignmentService wires the manual assignment dependencies.
func NewAssignmentService(
	assignments assignmentStore,
	availability availabilityChecker,
	restrictions restrictionSource,
	groups groupReader,
	subjects subjectReader,
	teachers teacherReader,
	classrooms classroomReader,
	blocks blockReader,
	cycles cycleReader,
	cache cacheInvalidator,
	validate *validator.Validate,
	logger *zap.Logger,
) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		assignments:  assignments,
		availability: availability,
		restrictions: restrictions,
		groups:       groups,
		subjects:     subjects,
		teachers:     teachers,
		classrooms:   classrooms,
		blocks:       blocks,
		cycles:       cycles,
		cache:        cache,
		validator:    validate,
		logger:       logger,
	}
}

// Create validates a manual assignment candidate in the fixed rule order and
// persists it. The first failed rule short-circuits with its specific reason.
func (s *AssignmentService) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.ScheduleAssignment, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, appErrors.WithReason(appErrors.ErrValidation, appErrors.ReasonMissingField,
			fmt.Sprintf("missing or invalid fields: %s", strings.Join(missing, ", ")))
	}

	group, err := s.groups.FindByID(ctx, req.GroupID)
	if err != nil {
		return nil, notFoundOr(err, "group not found")
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		return nil, notFoundOr(err, "subject not found")
	}
	teacher, err := s.teachers.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	if _, err := s.classrooms.FindByID(ctx, req.ClassroomID); err != nil {
		return nil, notFoundOr(err, "classroom not found")
	}
	block, err := s.blocks.FindByID(ctx, req.BlockID)
	if err != nil {
		return nil, notFoundOr(err, "time block not found")
	}

	existing, err := s.assignments.ListByPeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load period assignments")
	}

	for _, a := range existing {
		if a.GroupID == req.GroupID && a.Day == req.Day && a.BlockID == req.BlockID {
			return nil, appErrors.WithReason(appErrors.ErrConflict, appErrors.ReasonGroupScheduled,
				"group already has an assignment in this slot")
		}
	}

	available, err := s.availability.IsAvailable(ctx, req.TeacherID, req.PeriodID, req.Day, req.BlockID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher availability")
	}
	if !available {
		return nil, appErrors.WithReason(appErrors.ErrAvailability, appErrors.ReasonTeacherUnavailable,
			"teacher is not available in this slot")
	}

	for _, a := range existing {
		if a.Day != req.Day || a.BlockID != req.BlockID {
			continue
		}
		if a.TeacherID == req.TeacherID {
			return nil, appErrors.WithReason(appErrors.ErrConflict, appErrors.ReasonResourceConflict,
				"teacher already occupies this slot")
		}
		if a.ClassroomID == req.ClassroomID {
			return nil, appErrors.WithReason(appErrors.ErrConflict, appErrors.ReasonResourceConflict,
				"classroom already occupies this slot")
		}
	}

	if err := s.checkCycleWindow(ctx, group, subject, block); err != nil {
		return nil, err
	}

	restrictions, err := s.restrictions.ListActiveForPeriod(ctx, req.PeriodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load restrictions")
	}
	if len(restrictions) > 0 {
		blocks, err := s.blocks.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time blocks")
		}
		rooms, err := s.classrooms.ListAll(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classrooms")
		}
		evalCtx := newEvalContext(blocks, rooms, []models.Group{*group}, existing)
		cand := candidateSlot{
			PeriodID:    req.PeriodID,
			GroupID:     req.GroupID,
			SubjectID:   req.SubjectID,
			TeacherID:   req.TeacherID,
			ClassroomID: req.ClassroomID,
			Day:         req.Day,
			Block:       *block,
		}
		if violated, _ := evaluateAll(restrictions, cand, evalCtx); violated != nil {
			return nil, appErrors.WithReason(appErrors.ErrPolicy, appErrors.ReasonRestrictionViolated,
				fmt.Sprintf("restriction %s violated: %s", violated.Code, violated.Description))
		}
	}

	assignment := &models.ScheduleAssignment{
		PeriodID:    req.PeriodID,
		GroupID:     req.GroupID,
		SubjectID:   req.SubjectID,
		TeacherID:   req.TeacherID,
		ClassroomID: req.ClassroomID,
		Day:         req.Day,
		BlockID:     req.BlockID,
		Origin:      models.AssignmentOriginManual,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		if errors.Is(err, repository.ErrUniqueViolation) {
			// A concurrent submission won the slot between validation and
			// insert. The unique indexes are the source of truth.
			return nil, appErrors.WithReason(appErrors.ErrConflict, appErrors.ReasonResourceConflict,
				"slot was taken by a concurrent assignment")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist assignment")
	}

	s.invalidatePeriod(ctx, req.PeriodID)
	s.logger.Info("manual assignment created",
		zap.String("assignmentId", assignment.ID),
		zap.String("periodId", assignment.PeriodID),
		zap.String("groupId", assignment.GroupID),
		zap.String("teacherId", teacher.ID))
	return assignment, nil
}

// List returns assignments matching the filter.
func (s *AssignmentService) List(ctx context.Context, filter models.AssignmentFilter) ([]models.ScheduleAssignment, int, error) {
	list, total, err := s.assignments.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return list, total, nil
}

// Delete removes one assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "assignment not found")
	}
	if err := s.assignments.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	s.invalidatePeriod(ctx, assignment.PeriodID)
	return nil
}

// checkCycleWindow enforces the cycle-band time policy: lower cycles study in
// the morning, middle cycles in the afternoon, upper cycles in the evening.
func (s *AssignmentService) checkCycleWindow(ctx context.Context, group *models.Group, subject *models.Subject, block *models.TimeBlock) error {
	order, err := s.cycleOrder(ctx, group, subject)
	if err != nil {
		return err
	}
	if order <= 0 {
		return nil
	}
	startHour := blockStartHour(block.StartTime)
	if startHour < 0 {
		return nil
	}
	var lo, hi int
	switch {
	case order <= 3:
		lo, hi = 7, 13
	case order <= 6:
		lo, hi = 13, 18
	default:
		lo, hi = 18, 22
	}
	if startHour < lo || startHour >= hi {
		return appErrors.WithReason(appErrors.ErrPolicy, appErrors.ReasonCycleTimeWindow,
			fmt.Sprintf("cycle %d requires blocks starting between %02d:00 and %02d:00", order, lo, hi))
	}
	return nil
}

// cycleOrder resolves the group's cycle position. The explicit Cycle row
// wins; groups whose subject has no cycle fall back to the curriculum-hours
// formula the upstream client used. That formula is a documented placeholder
// carried for compatibility, not a verified business rule.
func (s *AssignmentService) cycleOrder(ctx context.Context, group *models.Group, subject *models.Subject) (int, error) {
	if subject.CycleID != nil && *subject.CycleID != "" {
		cycle, err := s.cycles.FindCycleByID(ctx, *subject.CycleID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return 0, nil
			}
			return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load cycle")
		}
		return cycle.Order, nil
	}
	career, err := s.cycles.FindByID(ctx, group.CareerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load career")
	}
	return (career.TotalHours + 1) / 2, nil
}

func (s *AssignmentService) invalidatePeriod(ctx context.Context, periodID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "schedule:"+periodID+":*"); err != nil {
		s.logger.Warn("failed to invalidate schedule cache", zap.String("periodId", periodID), zap.Error(err))
	}
}

// blockStartHour parses the hour out of an HH:MM clock string, returning -1
// when the value is malformed.
func blockStartHour(start string) int {
	parts := strings.SplitN(start, ":", 2)
	if len(parts) == 0 {
		return -1
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return -1
	}
	return hour
}

func notFoundOr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "unexpected storage failure")
}
