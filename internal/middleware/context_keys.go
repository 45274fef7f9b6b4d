package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is the type of the values this package stores in request contexts.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	subjectKey   = contextKey("subject")
)

// GetSubjectFromContext returns the authenticated token subject, if any.
func GetSubjectFromContext(c *gin.Context) (string, bool) {
	return subjectFromCtx(c.Request.Context())
}

func subjectFromCtx(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(subjectKey).(string)
	return subject, ok && subject != ""
}
