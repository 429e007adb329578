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

type assignmentManager interface {
	Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.ScheduleAssignment, error)
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.ScheduleAssignment, int, error)
	Delete(ctx context.Context, id string) error
}

type gridReader interface {
	Grid(ctx context.Context, q dto.GridQuery) (*dto.ScheduleGrid, error)
}

// AssignmentHandler exposes manual assignment endpoints and the JSON grid.
type AssignmentHandler struct {
	service assignmentManager
	grids   gridReader
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(svc *service.AssignmentService, grids *service.ScheduleReportService) *AssignmentHandler {
	return &AssignmentHandler{service: svc, grids: grids}
}

// Create godoc
// @Summary Create a manual schedule assignment
// @Description Runs the fixed validation chain; the first failed rule is reported with its specific reason code.
// @Tags Horarios
// @Accept json
// @Produce json
// @Param payload body dto.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} models.ScheduleAssignment
// @Failure 409 {object} errors.Error
// @Failure 422 {object} errors.Error
// @Router /horarios-asignados [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// List godoc
// @Summary List schedule assignments
// @Tags Horarios
// @Produce json
// @Param periodo query string false "Period ID"
// @Param grupo query string false "Group ID"
// @Param docente query string false "Teacher ID"
// @Param aula query string false "Classroom ID"
// @Param dia query int false "Day of week (1-6)"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /horarios-asignados [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.AssignmentFilter{
		PeriodID:    c.Query("periodo"),
		GroupID:     c.Query("grupo"),
		TeacherID:   c.Query("docente"),
		ClassroomID: c.Query("aula"),
		SubjectID:   c.Query("materia"),
		Page:        page,
		PageSize:    pageSize,
	}
	if day, err := strconv.Atoi(c.Query("dia")); err == nil {
		filter.Day = day
	}
	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// Delete godoc
// @Summary Remove one schedule assignment
// @Tags Horarios
// @Param id path string true "Assignment ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /horarios-asignados/{id} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Grid godoc
// @Summary Timetable grid for one view
// @Description Day-by-block matrix read along the group, teacher or room axis. Cached per view.
// @Tags Horarios
// @Produce json
// @Param period_id query string true "Period ID"
// @Param group_id query string false "Group ID"
// @Param teacher_id query string false "Teacher ID"
// @Param classroom_id query string false "Classroom ID"
// @Success 200 {object} dto.ScheduleGrid
// @Router /horarios-asignados/grid [get]
func (h *AssignmentHandler) Grid(c *gin.Context) {
	var q dto.GridQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid grid query"))
		return
	}
	grid, err := h.grids.Grid(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grid)
}
