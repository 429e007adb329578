package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/service"
)

type exportRunnerMock struct {
	result   service.ExportResult
	captured dto.GridQuery
}

func (m *exportRunnerMock) Excel(ctx context.Context, q dto.GridQuery) (*service.ExportResult, error) {
	m.captured = q
	return &m.result, nil
}

func (m *exportRunnerMock) PDF(ctx context.Context, q dto.GridQuery) (*service.ExportResult, error) {
	m.captured = q
	return &m.result, nil
}

func TestExportInlineDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &exportRunnerMock{result: service.ExportResult{
		Filename:    "horarios_p1.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Payload:     []byte("PK\x03\x04"),
	}}
	handler := &ExportHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodGet, "/exportar-horarios-excel?period_id=p1&group_id=g1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Excel(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "p1", mockSvc.captured.PeriodID)
	require.Equal(t, "g1", mockSvc.captured.GroupID)
	require.Contains(t, w.Header().Get("Content-Disposition"), "horarios_p1.xlsx")
	require.Equal(t, []byte("PK\x03\x04"), w.Body.Bytes())
}

func TestExportDeferredAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ExportHandler{service: &exportRunnerMock{result: service.ExportResult{Deferred: true}}}
	req, _ := http.NewRequest(http.MethodGet, "/exportar-horarios-pdf?period_id=p1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.PDF(c)

	require.Equal(t, http.StatusAccepted, w.Code)
	require.Contains(t, w.Body.String(), "processing")
}

func TestExportMissingPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ExportHandler{service: &exportRunnerMock{}}
	req, _ := http.NewRequest(http.MethodGet, "/exportar-horarios-excel", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Excel(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
