package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pageParams reads the page-based list contract query params.
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if v, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("page_size", "20")); err == nil && v > 0 {
		pageSize = v
	}
	return page, pageSize
}

// queryBoolPtr parses an optional boolean query param, nil when absent.
func queryBoolPtr(c *gin.Context, name string) *bool {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
