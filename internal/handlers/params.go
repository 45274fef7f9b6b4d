package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/library_ledger_app/internal/utils/pagination"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive integer path parameter, responding 400 when it is not one.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		msg := name + " must be an integer and must be greater than 0"
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   msg,
			Details: map[string]string{name: msg},
		})
		return 0, false
	}
	return id, true
}

// bindPage reads page and per_page, responding 400 when either is missing its bounds.
func bindPage(c *gin.Context) (pagination.Params, bool) {
	var page pagination.Params
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "page and per_page parameters must be positive integers"})
		return pagination.Params{}, false
	}
	if err := page.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: messageOr(err, "invalid pagination")})
		return pagination.Params{}, false
	}
	return page, true
}

// withHandler returns a fresh chain of middleware followed by h.
func withHandler(middleware []gin.HandlerFunc, h gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(middleware)+1)
	chain = append(chain, middleware...)
	return append(chain, h)
}
