package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type generationGroupSource interface {
	ListByPeriod(ctx context.Context, periodID string) ([]models.Group, error)
}

type generationSubjectSource interface {
	ListByIDs(ctx context.Context, ids []string) ([]models.Subject, error)
}

type generationTeacherSource interface {
	ListActive(ctx context.Context) ([]models.Teacher, error)
}

type generationAvailabilitySource interface {
	ListByPeriod(ctx context.Context, periodID string) ([]models.TeacherAvailability, error)
}

type generationAssignmentStore interface {
	ListByPeriod(ctx context.Context, periodID string) ([]models.ScheduleAssignment, error)
	DeleteAutoByPeriod(ctx context.Context, periodID string) (int64, error)
	CreateBatch(ctx context.Context, assignments []models.ScheduleAssignment) error
}

type periodReader interface {
	FindByID(ctx context.Context, id string) (*models.Period, error)
}

type generationLocker interface {
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// GeneratorConfig tunes the solve loop.
type GeneratorConfig struct {
	MaxCandidatesPerUnit int
	LockTTL              time.Duration
}

// GeneratorService runs automatic timetable generation for one period at a
// time. The search is deterministic: teachers, days, blocks and rooms are
// iterated in stable sorted order and ties keep the first best candidate.
type GeneratorService struct {
	periods      periodReader
	groups       generationGroupSource
	subjects     generationSubjectSource
	teachers     generationTeacherSource
	classrooms   classroomReader
	blocks       blockReader
	availability generationAvailabilitySource
	restrictions restrictionSource
	assignments  generationAssignmentStore
	locks        generationLocker
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	cfg          GeneratorConfig

	periodMu sync.Map // period id -> *sync.Mutex
}

// NewGeneratorService wires the generation dependencies.
func NewGeneratorService(
	periods periodReader,
	groups generationGroupSource,
	subjects generationSubjectSource,
	teachers generationTeacherSource,
	classrooms classroomReader,
	blocks blockReader,
	availability generationAvailabilitySource,
	restrictions restrictionSource,
	assignments generationAssignmentStore,
	locks generationLocker,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg GeneratorConfig,
) *GeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxCandidatesPerUnit <= 0 {
		cfg.MaxCandidatesPerUnit = 512
	}
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 10 * time.Minute
	}
	return &GeneratorService{
		periods:      periods,
		groups:       groups,
		subjects:     subjects,
		teachers:     teachers,
		classrooms:   classrooms,
		blocks:       blocks,
		availability: availability,
		restrictions: restrictions,
		assignments:  assignments,
		locks:        locks,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		cfg:          cfg,
	}
}

// Generate solves the period and returns the generation report. A rerun
// first clears prior auto-generated rows; manual and override rows survive
// and constrain the new solve.
func (s *GeneratorService) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerationResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	if _, err := s.periods.FindByID(ctx, req.PeriodID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load period")
	}

	muIface, _ := s.periodMu.LoadOrStore(req.PeriodID, &sync.Mutex{})
	mu := muIface.(*sync.Mutex)
	if !mu.TryLock() {
		return nil, appErrors.Clone(appErrors.ErrConflict, "a generation run is already in progress for this period")
	}
	defer mu.Unlock()

	lockKey := "schedule:lock:" + req.PeriodID
	if s.locks != nil {
		acquired, err := s.locks.AcquireLock(ctx, lockKey, s.cfg.LockTTL)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to acquire generation lock")
		}
		if !acquired {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a generation run is already in progress for this period")
		}
		defer func() {
			if err := s.locks.ReleaseLock(context.WithoutCancel(ctx), lockKey); err != nil {
				s.logger.Warn("failed to release generation lock", zap.String("periodId", req.PeriodID), zap.Error(err))
			}
		}()
	}

	started := time.Now()
	report, err := s.solve(ctx, req.PeriodID)
	if err != nil {
		return nil, err
	}

	duration := time.Since(started)
	s.metrics.ObserveGeneration(report.AssignedCount, report.ConflictCount, duration)
	if s.locks != nil {
		if err := s.locks.DeleteByPattern(ctx, "schedule:"+req.PeriodID+":*"); err != nil {
			s.logger.Warn("failed to invalidate schedule cache", zap.String("periodId", req.PeriodID), zap.Error(err))
		}
	}
	s.logger.Info("automatic generation finished",
		zap.String("periodId", req.PeriodID),
		zap.Int("assigned", report.AssignedCount),
		zap.Int("conflicts", report.ConflictCount),
		zap.Duration("duration", duration))
	return report, nil
}

func (s *GeneratorService) solve(ctx context.Context, periodID string) (*dto.GenerationResponse, error) {
	cleared, err := s.assignments.DeleteAutoByPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear prior generated assignments")
	}
	if cleared > 0 {
		s.logger.Info("cleared prior generated assignments", zap.String("periodId", periodID), zap.Int64("rows", cleared))
	}

	groups, err := s.groups.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load groups")
	}
	subjectIDs := collectSubjectIDs(groups)
	subjectList, err := s.subjects.ListByIDs(ctx, subjectIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subjects")
	}
	subjects := make(map[string]models.Subject, len(subjectList))
	for _, subject := range subjectList {
		subjects[subject.ID] = subject
	}
	teachers, err := s.teachers.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teachers")
	}
	rooms, err := s.classrooms.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classrooms")
	}
	blocks, err := s.blocks.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time blocks")
	}
	availability, err := s.availability.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability")
	}
	restrictions, err := s.restrictions.ListActiveForPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load restrictions")
	}
	existing, err := s.assignments.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing assignments")
	}

	state := newGeneratorState(blocks, rooms, groups, availability, existing)
	units := expandDemand(groups, subjects, existing)
	for i := range units {
		units[i].candidates = s.estimateCandidates(units[i], teachers, rooms, state)
	}
	orderUnits(units)

	var placed []models.ScheduleAssignment
	var unresolved []dto.UnresolvedConflict
	for _, unit := range units {
		assignment, reason := s.placeUnit(periodID, unit, teachers, rooms, blocks, restrictions, state)
		if assignment == nil {
			unresolved = append(unresolved, dto.UnresolvedConflict{
				GroupID:     unit.Group.ID,
				GroupCode:   unit.Group.Code,
				SubjectID:   unit.Subject.ID,
				SubjectCode: unit.Subject.Code,
				Reason:      reason,
			})
			continue
		}
		state.occupy(*assignment)
		placed = append(placed, *assignment)
	}

	if err := s.assignments.CreateBatch(ctx, placed); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist generated assignments")
	}

	assigned := len(placed)
	conflicts := len(unresolved)
	var pct float64
	if assigned+conflicts > 0 {
		pct = math.Round(float64(assigned)/float64(assigned+conflicts)*1000) / 10
	}
	if unresolved == nil {
		unresolved = []dto.UnresolvedConflict{}
	}
	return &dto.GenerationResponse{
		AssignedCount:       assigned,
		ConflictCount:       conflicts,
		TotalGroups:         len(groups),
		SuccessPercentage:   pct,
		UnresolvedConflicts: unresolved,
	}, nil
}

// placeUnit searches (teacher × day × block × room) in deterministic order
// and commits the best-scoring candidate. It returns nil plus a readable
// reason when nothing fits.
func (s *GeneratorService) placeUnit(
	periodID string,
	unit demandUnit,
	teachers []models.Teacher,
	rooms []models.Classroom,
	blocks []models.TimeBlock,
	restrictions []models.Restriction,
	state *generatorState,
) (*models.ScheduleAssignment, string) {
	override := unit.Group.OverrideTeacherID != nil && *unit.Group.OverrideTeacherID != ""
	origin := models.AssignmentOriginAuto
	var pool []models.Teacher
	if override {
		// Pinned teacher: skip qualification and availability search, the
		// group owner decided. Occupancy and hard restrictions still apply.
		// Override rows survive the clearing pass on reruns.
		origin = models.AssignmentOriginOverride
		pool = []models.Teacher{{ID: *unit.Group.OverrideTeacherID}}
	} else {
		pool = qualifiedTeachers(teachers, unit.Subject)
		if len(pool) == 0 {
			return nil, fmt.Sprintf("no active teacher qualified for subject %s", unit.Subject.Code)
		}
	}

	candidateRooms := compatibleRooms(rooms, unit.RoomType, unit.Group.StudentCount)
	if len(candidateRooms) == 0 {
		return nil, fmt.Sprintf("no classroom matches type/capacity for subject %s", unit.Subject.Code)
	}

	var best *models.ScheduleAssignment
	bestScore := math.MaxFloat64
	scored := 0
	sawFreeSlot := false

	for _, teacher := range pool {
		if !override && teacher.MaxWeeklyHours > 0 && state.teacherLoad[teacher.ID] >= teacher.MaxWeeklyHours {
			continue
		}
		for day := models.DayMin; day <= models.DayMax; day++ {
			for _, block := range blocksForDay(blocks, day) {
				ref := slotRef{Day: day, BlockID: block.ID}
				if !override && !state.isTeacherAvailable(teacher.ID, ref) {
					continue
				}
				for _, room := range candidateRooms {
					if !state.slotFree(teacher.ID, room.ID, unit.Group.ID, ref) {
						continue
					}
					sawFreeSlot = true
					cand := candidateSlot{
						PeriodID:    periodID,
						GroupID:     unit.Group.ID,
						SubjectID:   unit.Subject.ID,
						TeacherID:   teacher.ID,
						ClassroomID: room.ID,
						Day:         day,
						Block:       block,
					}
					violated, penalty := evaluateAll(restrictions, cand, state.eval)
					if violated != nil {
						continue
					}
					score := penalty*10 +
						float64(state.teacherLoad[teacher.ID]) +
						float64(state.roomLoad[room.ID]) -
						float64(state.availabilityWeight(teacher.ID, ref))
					if score < bestScore {
						bestScore = score
						best = &models.ScheduleAssignment{
							PeriodID:    periodID,
							GroupID:     unit.Group.ID,
							SubjectID:   unit.Subject.ID,
							TeacherID:   teacher.ID,
							ClassroomID: room.ID,
							Day:         day,
							BlockID:     block.ID,
							Origin:      origin,
						}
					}
					scored++
					if scored >= s.cfg.MaxCandidatesPerUnit {
						if best != nil {
							return best, ""
						}
						return nil, fmt.Sprintf("candidate budget exhausted for subject %s without a valid slot", unit.Subject.Code)
					}
				}
			}
		}
	}

	if best != nil {
		return best, ""
	}
	if sawFreeSlot {
		return nil, fmt.Sprintf("all free slots for subject %s violate a hard restriction", unit.Subject.Code)
	}
	return nil, fmt.Sprintf("no available teacher slot with a free compatible classroom for subject %s", unit.Subject.Code)
}

// estimateCandidates computes the scarcity key used to order units: fewer
// feasible teacher-slot-room combinations solve first.
func (s *GeneratorService) estimateCandidates(unit demandUnit, teachers []models.Teacher, rooms []models.Classroom, state *generatorState) int {
	if unit.Group.OverrideTeacherID != nil && *unit.Group.OverrideTeacherID != "" {
		return len(compatibleRooms(rooms, unit.RoomType, unit.Group.StudentCount))
	}
	pool := qualifiedTeachers(teachers, unit.Subject)
	slots := 0
	for _, teacher := range pool {
		slots += state.availableSlotCount(teacher.ID)
	}
	return slots * len(compatibleRooms(rooms, unit.RoomType, unit.Group.StudentCount))
}

func collectSubjectIDs(groups []models.Group) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, group := range groups {
		for _, id := range group.SubjectIDs {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
