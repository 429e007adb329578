package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/dto"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type scheduleGeneratorMock struct {
	captured dto.GenerateRequest
	err      error
}

func (m *scheduleGeneratorMock) Generate(ctx context.Context, req dto.GenerateRequest) (*dto.GenerationResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerationResponse{AssignedCount: 12, SuccessPercentage: 100, UnresolvedConflicts: []dto.UnresolvedConflict{}}, nil
}

func TestGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{}
	handler := &GeneratorHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodPost, "/generar-horario-automatico", bytes.NewReader([]byte(`{"period_id":"p1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "p1", mockSvc.captured.PeriodID)
	require.Contains(t, w.Body.String(), `"assigned_count":12`)
}

func TestGenerateMalformedPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &GeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/generar-horario-automatico", bytes.NewReader([]byte(`{"period_id":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateLockHeld(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{err: appErrors.Clone(appErrors.ErrConflict, "generation already running for this period")}
	handler := &GeneratorHandler{service: mockSvc}
	req, _ := http.NewRequest(http.MethodPost, "/generar-horario-automatico", bytes.NewReader([]byte(`{"period_id":"p1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "CONFLICT_ERROR")
}
