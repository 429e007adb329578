package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

// Grid views, named after the axis the timetable is read along.
const (
	GridViewGroup  = "group"
	GridViewRoom   = "room"
	GridViewPeriod = "period"
	// GridViewTeacher reads the timetable along the teacher axis.
	GridViewTeacher = "teacher"
)

type reportCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ScheduleReportService builds the day-by-block timetable grids used by the
// UI endpoint and the spreadsheet exports. Grids are cached per view and
// invalidated whenever the period's schedule changes.
type ScheduleReportService struct {
	assignments assignmentStore
	blocks      blockReader
	groups      groupReader
	subjects    subjectReader
	teachers    teacherReader
	classrooms  classroomReader
	periods     periodReader
	cache       reportCache
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewScheduleReportService wires the grid builder dependencies.
func NewScheduleReportService(
	assignments assignmentStore,
	blocks blockReader,
	groups groupReader,
	subjects subjectReader,
	teachers teacherReader,
	classrooms classroomReader,
	periods periodReader,
	cache reportCache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *ScheduleReportService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleReportService{
		assignments: assignments,
		blocks:      blocks,
		groups:      groups,
		subjects:    subjects,
		teachers:    teachers,
		classrooms:  classrooms,
		periods:     periods,
		cache:       cache,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// Grid assembles the timetable matrix for one view. An empty Rows slice is
// the valid answer when no assignment matches the filter.
func (s *ScheduleReportService) Grid(ctx context.Context, q dto.GridQuery) (*dto.ScheduleGrid, error) {
	if q.PeriodID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period_id is required")
	}
	period, err := s.periods.FindByID(ctx, q.PeriodID)
	if err != nil {
		return nil, notFoundOr(err, "period not found")
	}

	view, entityID := resolveView(q)
	cacheKey := gridCacheKey(q.PeriodID, view, entityID)
	if s.cache != nil {
		var cached dto.ScheduleGrid
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("grid cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}

	title, err := s.viewTitle(ctx, view, entityID, period)
	if err != nil {
		return nil, err
	}

	grid, err := s.buildGrid(ctx, q, view, title)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, grid, s.cacheTTL); err != nil {
			s.logger.Warn("grid cache write failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return grid, nil
}

func (s *ScheduleReportService) buildGrid(ctx context.Context, q dto.GridQuery, view, title string) (*dto.ScheduleGrid, error) {
	all, err := s.assignments.ListByPeriod(ctx, q.PeriodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignments")
	}
	matched := make([]models.ScheduleAssignment, 0, len(all))
	for _, a := range all {
		if q.GroupID != "" && a.GroupID != q.GroupID {
			continue
		}
		if q.TeacherID != "" && a.TeacherID != q.TeacherID {
			continue
		}
		if q.ClassroomID != "" && a.ClassroomID != q.ClassroomID {
			continue
		}
		matched = append(matched, a)
	}

	grid := &dto.ScheduleGrid{
		View:     view,
		Title:    title,
		PeriodID: q.PeriodID,
		Rows:     []dto.GridRow{},
	}
	if len(matched) == 0 {
		return grid, nil
	}

	blocks, err := s.blocks.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time blocks")
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].OrderIndex < blocks[j].OrderIndex })

	names := newNameResolver(s)
	byBlock := make(map[string]map[int]dto.GridCell, len(blocks))
	for _, a := range matched {
		cell, err := names.cell(ctx, a)
		if err != nil {
			return nil, err
		}
		if byBlock[a.BlockID] == nil {
			byBlock[a.BlockID] = make(map[int]dto.GridCell)
		}
		byBlock[a.BlockID][a.Day] = cell
	}

	for _, block := range blocks {
		cells := byBlock[block.ID]
		if cells == nil {
			cells = map[int]dto.GridCell{}
		}
		grid.Rows = append(grid.Rows, dto.GridRow{
			BlockID:   block.ID,
			StartTime: block.StartTime,
			EndTime:   block.EndTime,
			Cells:     cells,
		})
	}
	return grid, nil
}

func (s *ScheduleReportService) viewTitle(ctx context.Context, view, entityID string, period *models.Period) (string, error) {
	switch view {
	case GridViewGroup:
		group, err := s.groups.FindByID(ctx, entityID)
		if err != nil {
			return "", notFoundOr(err, "group not found")
		}
		return "Grupo " + group.Code, nil
	case GridViewTeacher:
		teacher, err := s.teachers.FindByID(ctx, entityID)
		if err != nil {
			return "", notFoundOr(err, "teacher not found")
		}
		return teacher.FullName, nil
	case GridViewRoom:
		room, err := s.classrooms.FindByID(ctx, entityID)
		if err != nil {
			return "", notFoundOr(err, "classroom not found")
		}
		return "Aula " + room.Name, nil
	default:
		return period.Name, nil
	}
}

// resolveView picks the reading axis. Group wins over teacher over room so
// a request with several filters still yields one deterministic view.
func resolveView(q dto.GridQuery) (view, entityID string) {
	switch {
	case q.GroupID != "":
		return GridViewGroup, q.GroupID
	case q.TeacherID != "":
		return GridViewTeacher, q.TeacherID
	case q.ClassroomID != "":
		return GridViewRoom, q.ClassroomID
	default:
		return GridViewPeriod, ""
	}
}

// gridCacheKey stays under the schedule:{periodID}: prefix so the write
// paths can invalidate every cached view of a period with one pattern.
func gridCacheKey(periodID, view, entityID string) string {
	key := "schedule:" + periodID + ":grid:" + view
	if entityID != "" {
		key += ":" + entityID
	}
	return key
}

// nameResolver memoizes entity lookups while filling grid cells so a grid
// with many assignments does not refetch the same subject or teacher.
type nameResolver struct {
	svc        *ScheduleReportService
	subjects   map[string]*models.Subject
	teachers   map[string]*models.Teacher
	classrooms map[string]*models.Classroom
	groups     map[string]*models.Group
}

func newNameResolver(svc *ScheduleReportService) *nameResolver {
	return &nameResolver{
		svc:        svc,
		subjects:   map[string]*models.Subject{},
		teachers:   map[string]*models.Teacher{},
		classrooms: map[string]*models.Classroom{},
		groups:     map[string]*models.Group{},
	}
}

func (r *nameResolver) cell(ctx context.Context, a models.ScheduleAssignment) (dto.GridCell, error) {
	cell := dto.GridCell{AssignmentID: a.ID}

	subject, ok := r.subjects[a.SubjectID]
	if !ok {
		loaded, err := r.svc.subjects.FindByID(ctx, a.SubjectID)
		if err != nil {
			return cell, notFoundOr(err, "subject not found: "+a.SubjectID)
		}
		r.subjects[a.SubjectID] = loaded
		subject = loaded
	}
	cell.SubjectCode = subject.Code
	cell.SubjectName = subject.Name

	teacher, ok := r.teachers[a.TeacherID]
	if !ok {
		loaded, err := r.svc.teachers.FindByID(ctx, a.TeacherID)
		if err != nil {
			return cell, notFoundOr(err, "teacher not found: "+a.TeacherID)
		}
		r.teachers[a.TeacherID] = loaded
		teacher = loaded
	}
	cell.TeacherName = teacher.FullName

	room, ok := r.classrooms[a.ClassroomID]
	if !ok {
		loaded, err := r.svc.classrooms.FindByID(ctx, a.ClassroomID)
		if err != nil {
			return cell, notFoundOr(err, "classroom not found: "+a.ClassroomID)
		}
		r.classrooms[a.ClassroomID] = loaded
		room = loaded
	}
	cell.ClassroomName = room.Name

	group, ok := r.groups[a.GroupID]
	if !ok {
		loaded, err := r.svc.groups.FindByID(ctx, a.GroupID)
		if err != nil {
			return cell, notFoundOr(err, "group not found: "+a.GroupID)
		}
		r.groups[a.GroupID] = loaded
		group = loaded
	}
	cell.GroupCode = group.Code

	return cell, nil
}
