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

type restrictionManager interface {
	List(ctx context.Context, filter models.RestrictionFilter) ([]models.Restriction, int, error)
	Get(ctx context.Context, id string) (*models.Restriction, error)
	Create(ctx context.Context, req dto.CreateRestrictionRequest) (*models.Restriction, error)
	Update(ctx context.Context, id string, req dto.UpdateRestrictionRequest) (*models.Restriction, error)
	Delete(ctx context.Context, id string) error
}

// RestrictionHandler exposes the restriction catalog CRUD.
type RestrictionHandler struct {
	service restrictionManager
}

// NewRestrictionHandler constructs the handler.
func NewRestrictionHandler(svc *service.RestrictionService) *RestrictionHandler {
	return &RestrictionHandler{service: svc}
}

// List godoc
// @Summary List restrictions
// @Tags Restricciones
// @Produce json
// @Param periodo query string false "Period ID"
// @Param tipo query string false "Restriction kind"
// @Param activa query bool false "Active flag"
// @Param page query int false "Page number"
// @Success 200 {object} response.Page
// @Router /configuracion-restricciones [get]
func (h *RestrictionHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)
	filter := models.RestrictionFilter{
		PeriodID: c.Query("periodo"),
		Kind:     c.Query("tipo"),
		Active:   queryBoolPtr(c, "activa"),
		Page:     page,
		PageSize: pageSize,
	}
	list, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, page, pageSize, total, list)
}

// Get godoc
// @Summary Load one restriction
// @Tags Restricciones
// @Produce json
// @Param id path string true "Restriction ID"
// @Success 200 {object} models.Restriction
// @Failure 404 {object} errors.Error
// @Router /configuracion-restricciones/{id} [get]
func (h *RestrictionHandler) Get(c *gin.Context) {
	restriction, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restriction)
}

// Create godoc
// @Summary Add a restriction
// @Tags Restricciones
// @Accept json
// @Produce json
// @Param payload body dto.CreateRestrictionRequest true "Restriction payload"
// @Success 201 {object} models.Restriction
// @Router /configuracion-restricciones [post]
func (h *RestrictionHandler) Create(c *gin.Context) {
	var req dto.CreateRestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid restriction payload"))
		return
	}
	restriction, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, restriction)
}

// Update godoc
// @Summary Patch a restriction
// @Tags Restricciones
// @Accept json
// @Produce json
// @Param id path string true "Restriction ID"
// @Param payload body dto.UpdateRestrictionRequest true "Patch payload"
// @Success 200 {object} models.Restriction
// @Failure 404 {object} errors.Error
// @Router /configuracion-restricciones/{id} [patch]
func (h *RestrictionHandler) Update(c *gin.Context) {
	var req dto.UpdateRestrictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid restriction payload"))
		return
	}
	restriction, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, restriction)
}

// Delete godoc
// @Summary Remove a restriction
// @Tags Restricciones
// @Param id path string true "Restriction ID"
// @Success 204
// @Failure 404 {object} errors.Error
// @Router /configuracion-restricciones/{id} [delete]
func (h *RestrictionHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
