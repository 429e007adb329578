package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
	"github.com/acadhub/horarios-api/internal/service"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
	"github.com/acadhub/horarios-api/pkg/response"
)

type catalogManager interface {
	ListUnits(ctx context.Context, filter models.CatalogFilter) ([]models.AcademicUnit, int, error)
	CreateUnit(ctx context.Context, req dto.CreateUnitRequest) (*models.AcademicUnit, error)
	DeleteUnit(ctx context.Context, id string) error
	ListCareers(ctx context.Context, filter models.CatalogFilter) ([]models.Career, int, error)
	CreateCareer(ctx context.Context, req dto.CreateCareerRequest) (*models.Career, error)
	DeleteCareer(ctx context.Context, id string) error
	ListCycles(ctx context.Context, careerID string) ([]models.Cycle, error)
	CreateCycle(ctx context.Context, req dto.CreateCycleRequest) (*models.Cycle, error)
	DeleteCycle(ctx context.Context, id string) error
	ListPeriods(ctx context.Context, filter models.CatalogFilter) ([]models.Period, int, error)
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest) (*models.Period, error)
	DeletePeriod(ctx context.Context, id string) error
	ListTimeBlocks(ctx context.Context, filter models.CatalogFilter) ([]models.TimeBlock, int, error)
	CreateTimeBlock(ctx context.Context, req dto.CreateTimeBlockRequest) (*models.TimeBlock, error)
	DeleteTimeBlock(ctx context.Context, id string) error
}

// CatalogHandler exposes the structural catalog endpoints.
type CatalogHandler struct {
	service catalogManager
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

func catalogFilter(c *gin.Context) models.CatalogFilter {
	page, pageSize := pageParams(c)
	return models.CatalogFilter{
		Search:   c.Query("buscar"),
		UnitID:   c.Query("unidad"),
		CareerID: c.Query("carrera"),
		Active:   queryBoolPtr(c, "activa"),
		Page:     page,
		PageSize: pageSize,
	}
}

// ListUnits godoc
// @Summary List academic units
// @Tags Catalogo
// @Produce json
// @Param buscar query string false "Name search"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /unidades-academicas [get]
func (h *CatalogHandler) ListUnits(c *gin.Context) {
	filter := catalogFilter(c)
	list, total, err := h.service.ListUnits(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, filter.Page, filter.PageSize, total, list)
}

// CreateUnit godoc
// @Summary Add an academic unit
// @Tags Catalogo
// @Accept json
// @Produce json
// @Param payload body dto.CreateUnitRequest true "Unit payload"
// @Success 201 {object} models.AcademicUnit
// @Router /unidades-academicas [post]
func (h *CatalogHandler) CreateUnit(c *gin.Context) {
	var req dto.CreateUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid unit payload"))
		return
	}
	unit, err := h.service.CreateUnit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, unit)
}

// DeleteUnit godoc
// @Summary Remove an academic unit
// @Tags Catalogo
// @Param id path string true "Unit ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /unidades-academicas/{id} [delete]
func (h *CatalogHandler) DeleteUnit(c *gin.Context) {
	if err := h.service.DeleteUnit(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCareers godoc
// @Summary List careers
// @Tags Catalogo
// @Produce json
// @Param unidad query string false "Unit ID"
// @Param buscar query string false "Name search"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /carreras [get]
func (h *CatalogHandler) ListCareers(c *gin.Context) {
	filter := catalogFilter(c)
	list, total, err := h.service.ListCareers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, filter.Page, filter.PageSize, total, list)
}

// CreateCareer godoc
// @Summary Add a career
// @Tags Catalogo
// @Accept json
// @Produce json
// @Param payload body dto.CreateCareerRequest true "Career payload"
// @Success 201 {object} models.Career
// @Router /carreras [post]
func (h *CatalogHandler) CreateCareer(c *gin.Context) {
	var req dto.CreateCareerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid career payload"))
		return
	}
	career, err := h.service.CreateCareer(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, career)
}

// DeleteCareer godoc
// @Summary Remove a career
// @Tags Catalogo
// @Param id path string true "Career ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /carreras/{id} [delete]
func (h *CatalogHandler) DeleteCareer(c *gin.Context) {
	if err := h.service.DeleteCareer(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListCycles godoc
// @Summary List the cycles of a career ordered by position
// @Tags Catalogo
// @Produce json
// @Param id path string true "Career ID"
// @Success 200 {array} models.Cycle
// @Failure 404 {object} errors.Error
// @Router /carreras/{id}/ciclos [get]
func (h *CatalogHandler) ListCycles(c *gin.Context) {
	cycles, err := h.service.ListCycles(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cycles)
}

// CreateCycle godoc
// @Summary Add a cycle to a career
// @Tags Catalogo
// @Accept json
// @Produce json
// @Param payload body dto.CreateCycleRequest true "Cycle payload"
// @Success 201 {object} models.Cycle
// @Router /ciclos [post]
func (h *CatalogHandler) CreateCycle(c *gin.Context) {
	var req dto.CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cycle payload"))
		return
	}
	cycle, err := h.service.CreateCycle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cycle)
}

// DeleteCycle godoc
// @Summary Remove a cycle
// @Tags Catalogo
// @Param id path string true "Cycle ID"
// @Success 204
// @Router /ciclos/{id} [delete]
func (h *CatalogHandler) DeleteCycle(c *gin.Context) {
	if err := h.service.DeleteCycle(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPeriods godoc
// @Summary List academic periods
// @Tags Catalogo
// @Produce json
// @Param activa query bool false "Active flag"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /periodos-academicos [get]
func (h *CatalogHandler) ListPeriods(c *gin.Context) {
	filter := catalogFilter(c)
	list, total, err := h.service.ListPeriods(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, filter.Page, filter.PageSize, total, list)
}

// CreatePeriod godoc
// @Summary Add an academic period
// @Tags Catalogo
// @Accept json
// @Produce json
// @Param payload body dto.CreatePeriodRequest true "Period payload"
// @Success 201 {object} models.Period
// @Router /periodos-academicos [post]
func (h *CatalogHandler) CreatePeriod(c *gin.Context) {
	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid period payload"))
		return
	}
	period, err := h.service.CreatePeriod(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, period)
}

// DeletePeriod godoc
// @Summary Remove an academic period
// @Tags Catalogo
// @Param id path string true "Period ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /periodos-academicos/{id} [delete]
func (h *CatalogHandler) DeletePeriod(c *gin.Context) {
	if err := h.service.DeletePeriod(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListTimeBlocks godoc
// @Summary List time blocks ordered by position
// @Tags Catalogo
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /bloques-horarios [get]
func (h *CatalogHandler) ListTimeBlocks(c *gin.Context) {
	filter := catalogFilter(c)
	list, total, err := h.service.ListTimeBlocks(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, filter.Page, filter.PageSize, total, list)
}

// CreateTimeBlock godoc
// @Summary Add a time block
// @Tags Catalogo
// @Accept json
// @Produce json
// @Param payload body dto.CreateTimeBlockRequest true "Time block payload"
// @Success 201 {object} models.TimeBlock
// @Router /bloques-horarios [post]
func (h *CatalogHandler) CreateTimeBlock(c *gin.Context) {
	var req dto.CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid time block payload"))
		return
	}
	block, err := h.service.CreateTimeBlock(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, block)
}

// DeleteTimeBlock godoc
// @Summary Remove a time block
// @Tags Catalogo
// @Param id path string true "Block ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /bloques-horarios/{id} [delete]
func (h *CatalogHandler) DeleteTimeBlock(c *gin.Context) {
	if err := h.service.DeleteTimeBlock(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
