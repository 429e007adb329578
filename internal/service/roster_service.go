package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type teacherStore interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
	Create(ctx context.Context, teacher *models.Teacher) error
	Update(ctx context.Context, teacher *models.Teacher) error
	Deactivate(ctx context.Context, id string) error
}

type subjectStore interface {
	List(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	Create(ctx context.Context, subject *models.Subject, careerIDs []string) error
	Update(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) error
}

type classroomStore interface {
	List(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, room *models.Classroom) error
	Update(ctx context.Context, room *models.Classroom) error
	Delete(ctx context.Context, id string) error
}

type groupStore interface {
	List(ctx context.Context, filter models.GroupFilter) ([]models.Group, int, error)
	FindByID(ctx context.Context, id string) (*models.Group, error)
	Create(ctx context.Context, group *models.Group) error
	Delete(ctx context.Context, id string) error
}

// RosterService manages the scheduling resources: teachers, subjects,
// classrooms and groups.
type RosterService struct {
	teachers   teacherStore
	subjects   subjectStore
	classrooms classroomStore
	groups     groupStore
	periods    periodReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRosterService wires the roster dependencies.
func NewRosterService(teachers teacherStore, subjects subjectStore, classrooms classroomStore, groups groupStore, periods periodReader, validate *validator.Validate, logger *zap.Logger) *RosterService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RosterService{
		teachers:   teachers,
		subjects:   subjects,
		classrooms: classrooms,
		groups:     groups,
		periods:    periods,
		validator:  validate,
		logger:     logger,
	}
}

// --- Teachers ---

func (s *RosterService) ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error) {
	list, total, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	return list, total, nil
}

func (s *RosterService) GetTeacher(ctx context.Context, id string) (*models.Teacher, error) {
	teacher, err := s.teachers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "teacher not found")
	}
	return teacher, nil
}

func (s *RosterService) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher := &models.Teacher{
		Code:           req.Code,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		ContractType:   req.ContractType,
		MaxWeeklyHours: req.MaxWeeklyHours,
		UnitID:         req.UnitID,
		Specialties:    req.Specialties,
		Active:         true,
	}
	if err := s.teachers.Create(ctx, teacher); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teacher")
	}
	return teacher, nil
}

// DeactivateTeacher retires a teacher from future scheduling without
// deleting historical assignments.
func (s *RosterService) DeactivateTeacher(ctx context.Context, id string) error {
	if _, err := s.teachers.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "teacher not found")
	}
	if err := s.teachers.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate teacher")
	}
	return nil
}

// --- Subjects ---

func (s *RosterService) ListSubjects(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error) {
	list, total, err := s.subjects.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return list, total, nil
}

func (s *RosterService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if req.TheoryHours+req.PracticeHours+req.LabHours == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject requires at least one weekly hour")
	}
	subject := &models.Subject{
		Code:             req.Code,
		Name:             req.Name,
		TheoryHours:      req.TheoryHours,
		PracticeHours:    req.PracticeHours,
		LabHours:         req.LabHours,
		RequiredRoomType: req.RequiredRoomType,
		Specialties:      req.Specialties,
		CycleID:          req.CycleID,
		Active:           req.Active,
	}
	if err := s.subjects.Create(ctx, subject, req.CareerIDs); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

func (s *RosterService) DeleteSubject(ctx context.Context, id string) error {
	if _, err := s.subjects.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "subject not found")
	}
	if err := s.subjects.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	return nil
}

// --- Classrooms ---

func (s *RosterService) ListClassrooms(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error) {
	list, total, err := s.classrooms.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return list, total, nil
}

func (s *RosterService) CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest) (*models.Classroom, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid classroom payload")
	}
	room := &models.Classroom{
		UnitID:   req.UnitID,
		Name:     req.Name,
		RoomType: req.RoomType,
		Capacity: req.Capacity,
		Location: req.Location,
	}
	if err := s.classrooms.Create(ctx, room); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}
	return room, nil
}

func (s *RosterService) DeleteClassroom(ctx context.Context, id string) error {
	if _, err := s.classrooms.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "classroom not found")
	}
	if err := s.classrooms.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}
	return nil
}

// --- Groups ---

func (s *RosterService) ListGroups(ctx context.Context, filter models.GroupFilter) ([]models.Group, int, error) {
	list, total, err := s.groups.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list groups")
	}
	return list, total, nil
}

func (s *RosterService) CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid group payload")
	}
	if _, err := s.periods.FindByID(ctx, req.PeriodID); err != nil {
		return nil, notFoundOr(err, "period not found")
	}
	for _, subjectID := range req.SubjectIDs {
		if _, err := s.subjects.FindByID(ctx, subjectID); err != nil {
			return nil, notFoundOr(err, "subject not found: "+subjectID)
		}
	}
	if req.OverrideTeacherID != nil && *req.OverrideTeacherID != "" {
		if _, err := s.teachers.FindByID(ctx, *req.OverrideTeacherID); err != nil {
			return nil, notFoundOr(err, "override teacher not found")
		}
	}
	group := &models.Group{
		Code:              req.Code,
		CareerID:          req.CareerID,
		PeriodID:          req.PeriodID,
		StudentCount:      req.StudentCount,
		PreferredShift:    req.PreferredShift,
		OverrideTeacherID: req.OverrideTeacherID,
		SubjectIDs:        req.SubjectIDs,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create group")
	}
	return group, nil
}

func (s *RosterService) DeleteGroup(ctx context.Context, id string) error {
	if _, err := s.groups.FindByID(ctx, id); err != nil {
		return notFoundOr(err, "group not found")
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete group")
	}
	return nil
}
