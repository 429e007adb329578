package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	"github.com/acadhub/horarios-api/internal/service"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
	"github.com/acadhub/horarios-api/pkg/response"
)

type rosterManager interface {
	ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
	GetTeacher(ctx context.Context, id string) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error)
	DeactivateTeacher(ctx context.Context, id string) error
	ListSubjects(ctx context.Context, filter models.SubjectFilter) ([]models.Subject, int, error)
	CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id string) error
	ListClassrooms(ctx context.Context, filter models.ClassroomFilter) ([]models.Classroom, int, error)
	CreateClassroom(ctx context.Context, req dto.CreateClassroomRequest) (*models.Classroom, error)
	DeleteClassroom(ctx context.Context, id string) error
	ListGroups(ctx context.Context, filter models.GroupFilter) ([]models.Group, int, error)
	CreateGroup(ctx context.Context, req dto.CreateGroupRequest) (*models.Group, error)
	DeleteGroup(ctx context.Context, id string) error
}

// RosterHandler exposes the scheduling resource endpoints.
type RosterHandler struct {
	service rosterManager
}

// NewRosterHandler constructs the handler.
func NewRosterHandler(svc *service.RosterService) *RosterHandler {
	return &RosterHandler{service: svc}
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Recursos
// @Produce json
// @Param buscar query string false "Name or code search"
// @Param unidad query string false "Unit ID"
// @Param especialidad query string false "Specialty tag"
// @Param activa query bool false "Active flag"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /docentes [get]
func (h *RosterHandler) ListTeachers(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.TeacherFilter{
		Search:    c.Query("buscar"),
		UnitID:    c.Query("unidad"),
		Specialty: c.Query("especialidad"),
		Active:    queryBoolPtr(c, "activa"),
		Page:      page,
		PageSize:  pageSize,
	}
	list, total, err := h.service.ListTeachers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// GetTeacher godoc
// @Summary Load one teacher
// @Tags Recursos
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} models.Teacher
// @Failure 404 {object} errors.Error
// @Router /docentes/{id} [get]
func (h *RosterHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.service.GetTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher)
}

// CreateTeacher godoc
// @Summary Add a teacher
// @Tags Recursos
// @Accept json
// @Produce json
// @Param payload body dto.CreateTeacherRequest true "Teacher payload"
// @Success 201 {object} models.Teacher
// @Router /docentes [post]
func (h *RosterHandler) CreateTeacher(c *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}
	teacher, err := h.service.CreateTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, teacher)
}

// DeactivateTeacher godoc
// @Summary Retire a teacher from future scheduling
// @Tags Recursos
// @Param id path string true "Teacher ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /docentes/{id} [delete]
func (h *RosterHandler) DeactivateTeacher(c *gin.Context) {
	if err := h.service.DeactivateTeacher(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListSubjects godoc
// @Summary List subjects
// @Tags Recursos
// @Produce json
// @Param buscar query string false "Name or code search"
// @Param carrera query string false "Career ID"
// @Param activa query bool false "Active flag"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /materias [get]
func (h *RosterHandler) ListSubjects(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.SubjectFilter{
		Search:   c.Query("buscar"),
		CareerID: c.Query("carrera"),
		Active:   queryBoolPtr(c, "activa"),
		Page:     page,
		PageSize: pageSize,
	}
	list, total, err := h.service.ListSubjects(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// CreateSubject godoc
// @Summary Add a subject
// @Tags Recursos
// @Accept json
// @Produce json
// @Param payload body dto.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} models.Subject
// @Router /materias [post]
func (h *RosterHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid subject payload"))
		return
	}
	subject, err := h.service.CreateSubject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// DeleteSubject godoc
// @Summary Remove a subject
// @Tags Recursos
// @Param id path string true "Subject ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /materias/{id} [delete]
func (h *RosterHandler) DeleteSubject(c *gin.Context) {
	if err := h.service.DeleteSubject(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListClassrooms godoc
// @Summary List classrooms
// @Tags Recursos
// @Produce json
// @Param unidad query string false "Unit ID"
// @Param tipo query string false "Room type"
// @Param capacidad_minima query int false "Minimum capacity"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /aulas [get]
func (h *RosterHandler) ListClassrooms(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.ClassroomFilter{
		UnitID:   c.Query("unidad"),
		RoomType: c.Query("tipo"),
		Page:     page,
		PageSize: pageSize,
	}
	if capacity, err := strconv.Atoi(c.Query("capacidad_minima")); err == nil {
		filter.MinCapacity = capacity
	}
	list, total, err := h.service.ListClassrooms(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// CreateClassroom godoc
// @Summary Add a classroom
// @Tags Recursos
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} models.Classroom
// @Router /aulas [post]
func (h *RosterHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid classroom payload"))
		return
	}
	room, err := h.service.CreateClassroom(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// DeleteClassroom godoc
// @Summary Remove a classroom
// @Tags Recursos
// @Param id path string true "Classroom ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /aulas/{id} [delete]
func (h *RosterHandler) DeleteClassroom(c *gin.Context) {
	if err := h.service.DeleteClassroom(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListGroups godoc
// @Summary List student groups
// @Tags Recursos
// @Produce json
// @Param periodo query string false "Period ID"
// @Param carrera query string false "Career ID"
// @Param buscar query string false "Code search"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /grupos [get]
func (h *RosterHandler) ListGroups(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.GroupFilter{
		PeriodID: c.Query("periodo"),
		CareerID: c.Query("carrera"),
		Search:   c.Query("buscar"),
		Page:     page,
		PageSize: pageSize,
	}
	list, total, err := h.service.ListGroups(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// CreateGroup godoc
// @Summary Add a student group
// @Tags Recursos
// @Accept json
// @Produce json
// @Param payload body dto.CreateGroupRequest true "Group payload"
// @Success 201 {object} models.Group
// @Failure 404 {object} errors.Error
// @Router /grupos [post]
func (h *RosterHandler) CreateGroup(c *gin.Context) {
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid group payload"))
		return
	}
	group, err := h.service.CreateGroup(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, group)
}

// DeleteGroup godoc
// @Summary Remove a student group
// @Tags Recursos
// @Param id path string true "Group ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /grupos/{id} [delete]
func (h *RosterHandler) DeleteGroup(c *gin.Context) {
	if err := h.service.DeleteGroup(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
