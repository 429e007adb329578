package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/acadhub/horarios-api/internal/dto"
	"github.com/acadhub/horarios-api/internal/models"
)

type availabilityManagerMock struct {
	outcome   dto.ImportOutcome
	teacherID string
	periodID  string
}

func (m *availabilityManagerMock) Upsert(ctx context.Context, req dto.UpsertAvailabilityRequest) (*models.TeacherAvailability, error) {
	return &models.TeacherAvailability{ID: "av1", TeacherID: req.TeacherID}, nil
}

func (m *availabilityManagerMock) Patch(ctx context.Context, id string, req dto.PatchAvailabilityRequest) (*models.TeacherAvailability, error) {
	return &models.TeacherAvailability{ID: id}, nil
}

func (m *availabilityManagerMock) List(ctx context.Context, filter models.AvailabilityFilter) ([]models.TeacherAvailability, int, error) {
	return nil, 0, nil
}

func (m *availabilityManagerMock) Import(ctx context.Context, teacherID, periodID string, file io.Reader) (*dto.ImportOutcome, error) {
	m.teacherID = teacherID
	m.periodID = periodID
	return &m.outcome, nil
}

func multipartImportRequest(t *testing.T, withFile bool) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if withFile {
		part, err := writer.CreateFormFile("file", "disponibilidad.xlsx")
		require.NoError(t, err)
		_, err = part.Write([]byte("not a real workbook, the service mock ignores it"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.WriteField("teacher_id", "t1"))
	require.NoError(t, writer.WriteField("period_id", "p1"))
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, "/importar-disponibilidad-excel", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportAllRowsAccepted(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &availabilityManagerMock{outcome: dto.ImportOutcome{Imported: 10}}
	handler := &AvailabilityHandler{service: mockSvc}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImportRequest(t, true)

	handler.Import(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "t1", mockSvc.teacherID)
	require.Equal(t, "p1", mockSvc.periodID)
}

func TestImportPartialFailureStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	outcome := dto.ImportOutcome{Imported: 8}
	outcome.AddFailure(4, "unknown block")
	outcome.AddFailure(9, "day out of range")
	handler := &AvailabilityHandler{service: &availabilityManagerMock{outcome: outcome}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImportRequest(t, true)

	handler.Import(c)

	require.Equal(t, http.StatusMultiStatus, w.Code)
	require.Contains(t, w.Body.String(), `"failed":2`)
}

func TestImportMissingFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &AvailabilityHandler{service: &availabilityManagerMock{}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = multipartImportRequest(t, false)

	handler.Import(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
