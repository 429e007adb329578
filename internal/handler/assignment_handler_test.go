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
	"github.com/acadhub/horarios-api/internal/models"
	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

type assignmentManagerMock struct {
	captured  dto.CreateAssignmentRequest
	filter    models.AssignmentFilter
	createErr error
}

func (m *assignmentManagerMock) Create(ctx context.Context, req dto.CreateAssignmentRequest) (*models.ScheduleAssignment, error) {
	m.captured = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.ScheduleAssignment{ID: "a1", GroupID: req.GroupID}, nil
}

func (m *assignmentManagerMock) List(ctx context.Context, filter models.AssignmentFilter) ([]models.ScheduleAssignment, int, error) {
	m.filter = filter
	return []models.ScheduleAssignment{{ID: "a1"}}, 1, nil
}

func (m *assignmentManagerMock) Delete(ctx context.Context, id string) error {
	return nil
}

type gridReaderMock struct {
	captured dto.GridQuery
}

func (m *gridReaderMock) Grid(ctx context.Context, q dto.GridQuery) (*dto.ScheduleGrid, error) {
	m.captured = q
	return &dto.ScheduleGrid{View: "group", PeriodID: q.PeriodID, Rows: []dto.GridRow{}}, nil
}

func validAssignmentPayload() []byte {
	return []byte(`{"group_id":"g1","subject_id":"s1","teacher_id":"t1","classroom_id":"r1","period_id":"p1","day":2,"block_id":"b1"}`)
}

func TestAssignmentCreateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentManagerMock{}
	handler := &AssignmentHandler{service: mockSvc, grids: &gridReaderMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/horarios-asignados", bytes.NewReader(validAssignmentPayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "g1", mockSvc.captured.GroupID)
	require.Equal(t, 2, mockSvc.captured.Day)
}

func TestAssignmentCreateConflictPassthrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentManagerMock{
		createErr: appErrors.WithReason(appErrors.ErrConflict, appErrors.ReasonResourceConflict, "teacher already booked"),
	}
	handler := &AssignmentHandler{service: mockSvc, grids: &gridReaderMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/horarios-asignados", bytes.NewReader(validAssignmentPayload()))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Create(c)

	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "RESOURCE_CONFLICT")
}

func TestAssignmentListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &assignmentManagerMock{}
	handler := &AssignmentHandler{service: mockSvc, grids: &gridReaderMock{}}
	req, _ := http.NewRequest(http.MethodGet, "/horarios-asignados?periodo=p1&docente=t1&dia=3", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "p1", mockSvc.filter.PeriodID)
	require.Equal(t, "t1", mockSvc.filter.TeacherID)
	require.Equal(t, 3, mockSvc.filter.Day)
	require.Contains(t, w.Body.String(), `"count":1`)
}

func TestGridQueryBinding(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockGrids := &gridReaderMock{}
	handler := &AssignmentHandler{service: &assignmentManagerMock{}, grids: mockGrids}
	req, _ := http.NewRequest(http.MethodGet, "/horarios-asignados/grid?period_id=p1&teacher_id=t1", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Grid(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "p1", mockGrids.captured.PeriodID)
	require.Equal(t, "t1", mockGrids.captured.TeacherID)
}

func TestGridMissingPeriod(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &AssignmentHandler{service: &assignmentManagerMock{}, grids: &gridReaderMock{}}
	req, _ := http.NewRequest(http.MethodGet, "/horarios-asignados/grid", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Grid(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
