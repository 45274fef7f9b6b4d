package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects requests whose body is not declared as application/json.
func RequireJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.ContentType() != gin.MIMEJSON {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rejected non-JSON request body", "content_type", c.ContentType())
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Content-Type must be application/json"})
			return
		}
		c.Next()
	}
}
