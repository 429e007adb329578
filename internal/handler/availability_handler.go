package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	"github.com/acadhub/horarios-api/internal/service"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
	"github.com/acadhub/horarios-api/pkg/response"
)

type availabilityManager interface {
	Upsert(ctx context.Context, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error)
	Patch(ctx context.Context, id string, req dto.PatchAvailabilityRequest) (*models.TeacherAvailability, error)
	List(ctx context.Context, filter models.AvailabilityFilter) ([]models.TeacherAvailability, int, error)
	Import(ctx context.Context, teacherID, periodID string, file io.Reader) (*dto.ImportOutcome, error)
}

// AvailabilityHandler exposes teacher availability endpoints.
type AvailabilityHandler struct {
	service availabilityManager
}

// NewAvailabilityHandler constructs the handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// Upsert godoc
// @Summary Create or replace one availability slot
// @Tags Disponibilidad
// @Accept json
// @Produce json
// @Param payload body dto.UpsertAvailabilityRequest true "Availability payload"
// @Success 201 {object} models.TeacherAvailability
// @Router /disponibilidad-docentes [post]
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	var req dto.UpsertAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	slot, err := h.service.Upsert(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// Patch godoc
// @Summary Update one availability slot in place
// @Tags Disponibilidad
// @Accept json
// @Produce json
// @Param id path string true "Availability ID"
// @Param payload body dto.PatchAvailabilityRequest true "Patch payload"
// @Success 200 {object} models.TeacherAvailability
// @Failure 404 {object} errors.Error
// @Router /disponibilidad-docentes/{id} [patch]
func (h *AvailabilityHandler) Patch(c *gin.Context) {
	var req dto.PatchAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	slot, err := h.service.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot)
}

// List godoc
// @Summary List availability slots
// @Tags Disponibilidad
// @Produce json
// @Param docente query string false "Teacher ID"
// @Param periodo query string false "Period ID"
// @Param dia query int false "Day of week (1-6)"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /disponibilidad-docentes [get]
func (h *AvailabilityHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.AvailabilityFilter{
		TeacherID: c.Query("docente"),
		PeriodID:  c.Query("periodo"),
		Page:      page,
		PageSize:  pageSize,
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

// Import godoc
// @Summary Bulk-import availability from a spreadsheet
// @Description Each data row is (day, block id, available). Malformed rows are reported individually; the batch never aborts.
// @Tags Disponibilidad
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx file"
// @Param teacher_id formData string true "Teacher ID"
// @Param period_id formData string true "Period ID"
// @Success 200 {object} dto.ImportOutcome
// @Failure 400 {object} errors.Error
// @Router /importar-disponibilidad-excel [post]
func (h *AvailabilityHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close()

	teacherID := c.PostForm("teacher_id")
	periodID := c.PostForm("period_id")
	outcome, err := h.service.Import(c.Request.Context(), teacherID, periodID, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if outcome.Failed > 0 {
		status = appErrors.ErrPartialFailure.Status
	}
	response.JSON(c, status, outcome)
}
