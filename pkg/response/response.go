package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/acadhub/horarios-api/pkg/errors"
)

// Page is the list envelope every paginated endpoint returns.
type Page struct {
	Count    int         `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// JSON sends a plain success payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paged wraps results in the page-based contract, deriving next/previous
// links from the request URL.
func Paged(c *gin.Context, page, pageSize, total int, results interface{}) {
	envelope := Page{Count: total, Results: results}
	if page > 1 {
		envelope.Previous = pageURL(c, page-1)
	}
	if page*pageSize < total {
		envelope.Next = pageURL(c, page+1)
	}
	JSON(c, http.StatusOK, envelope)
}

// Error renders the typed error envelope.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr})
}

func pageURL(c *gin.Context, page int) *string {
	query := c.Request.URL.Query()
	query.Set("page", fmt.Sprintf("%d", page))
	u := *c.Request.URL
	u.RawQuery = query.Encode()
	s := u.String()
	return &s
}
