package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performRequest(origins []string, method, origin string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(New(origins))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/ping", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	r.ServeHTTP(w, req)

	return w
}

func TestListedOriginGetsCredentials(t *testing.T) {
	w := performRequest([]string{"https://horarios.acadhub.edu"}, http.MethodGet, "https://horarios.acadhub.edu")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://horarios.acadhub.edu", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestUnlistedOriginGetsNothing(t *testing.T) {
	w := performRequest([]string{"https://horarios.acadhub.edu"}, http.MethodGet, "https://evil.example.com")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestEmptyAllowlistIsOpenWithoutCredentials(t *testing.T) {
	w := performRequest(nil, http.MethodGet, "https://anywhere.example.com")

	assert.Equal(t, "https://anywhere.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestOriginMatchIgnoresCaseAndTrailingSlash(t *testing.T) {
	w := performRequest([]string{"https://Horarios.AcadHub.edu/"}, http.MethodGet, "https://horarios.acadhub.edu")

	assert.Equal(t, "https://horarios.acadhub.edu", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreflightShortCircuits(t *testing.T) {
	w := performRequest([]string{"https://horarios.acadhub.edu"}, http.MethodOptions, "https://horarios.acadhub.edu")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
}
