package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/service"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
	"github.com/acadhub/horarios-api/pkg/response"
)

type scheduleGenerator interface {
	Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerationResponse, error)
}

// GeneratorHandler exposes the automatic generation endpoint.
type GeneratorHandler struct {
	service scheduleGenerator
}

// NewGeneratorHandler constructs the handler.
func NewGeneratorHandler(svc *service.GeneratorService) *GeneratorHandler {
	return &GeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Run automatic timetable generation for a period
// @Description Clears prior auto-generated rows and solves the period. Always returns a report; unplaceable demand is listed under unresolved_conflicts.
// @Tags Generacion
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRequest true "Generation payload"
// @Success 200 {object} dto.GenerationResponse
// @Failure 409 {object} errors.Error
// @Router /generar-horario-automatico [post]
func (h *GeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	report, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}
