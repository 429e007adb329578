package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen string
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping", func(c *gin.Context) {
		seen = Value(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	r.ServeHTTP(w, req)

	return w, seen
}

func TestGeneratesIDWhenMissing(t *testing.T) {
	w, seen := performRequest(t, nil)

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(Header))
}

func TestReusesInboundID(t *testing.T) {
	w, seen := performRequest(t, map[string]string{Header: "front-42"})

	assert.Equal(t, "front-42", seen)
	assert.Equal(t, "front-42", w.Header().Get(Header))
}

func TestReplacesOversizedInboundID(t *testing.T) {
	long := strings.Repeat("x", maxInboundLength+1)
	w, seen := performRequest(t, map[string]string{Header: long})

	require.NotEmpty(t, seen)
	assert.NotEqual(t, long, seen)
	assert.NotEqual(t, long, w.Header().Get(Header))
}

func TestValueOutsideMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, Value(c))
}
