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

type exportRunner interface {
	Excel(ctx context.Context, q dto.GridQuery) (*service.ExportResult, error)
	PDF(ctx context.Context, q dto.GridQuery) (*service.ExportResult, error)
}

// ExportHandler exposes the timetable file exports.
type ExportHandler struct {
	service exportRunner
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Excel godoc
// @Summary Export timetables as an xlsx workbook
// @Description One sheet per requested view; with no entity filter, one sheet per group in the period. Oversized exports return 202 while a worker materializes the file; retry the same request to download it.
// @Tags Exportacion
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param period_id query string true "Period ID"
// @Param group_id query string false "Group ID"
// @Param teacher_id query string false "Teacher ID"
// @Param classroom_id query string false "Classroom ID"
// @Success 200 {file} binary
// @Success 202 {object} map[string]string
// @Router /exportar-horarios-excel [get]
func (h *ExportHandler) Excel(c *gin.Context) {
	h.serve(c, h.service.Excel)
}

// PDF godoc
// @Summary Export timetables as a PDF document
// @Tags Exportacion
// @Produce application/pdf
// @Param period_id query string true "Period ID"
// @Param group_id query string false "Group ID"
// @Param teacher_id query string false "Teacher ID"
// @Param classroom_id query string false "Classroom ID"
// @Success 200 {file} binary
// @Success 202 {object} map[string]string
// @Router /exportar-horarios-pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.serve(c, h.service.PDF)
}

func (h *ExportHandler) serve(c *gin.Context, run func(context.Context, dto.GridQuery) (*service.ExportResult, error)) {
	var q dto.GridQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	result, err := run(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	if result.Deferred {
		response.JSON(c, http.StatusAccepted, gin.H{
			"status": "processing",
			"detail": "export is being generated, retry this request shortly",
		})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}
