package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/library_ledger_app/internal/apperrors"
	"github.com/SscSPs/library_ledger_app/internal/middleware"
	"github.com/SscSPs/library_ledger_app/internal/utils/filtering"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Reason  string            `json:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// respondWithError maps err onto a status code and a JSON error body. Storage details
// never reach the client.
func respondWithError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var fieldErr *filtering.FieldError
	switch {
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   fieldErr.Error(),
			Details: map[string]string{fieldErr.Field: fieldErr.Message},
		})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: messageOr(err, "invalid request")})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: messageOr(err, "not found")})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{
			Error:  messageOr(err, "conflict"),
			Reason: apperrors.ConflictReason(err),
		})
	default:
		if errors.Is(err, apperrors.ErrIntegrityViolation) {
			logger.Error("Inventory integrity violation", slog.String("error", err.Error()), slog.Bool("bug", true))
		} else {
			logger.Error("Request failed", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func messageOr(err error, fallback string) string {
	if msg := apperrors.UserMessage(err); msg != "" {
		return msg
	}
	return fallback
}

// respondWithBindError reports a request body or query that failed binding.
func respondWithBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			details[fe.Field()] = validationMessage(fe)
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: details})
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request",
			Details: map[string]string{typeErr.Field: typeErr.Field + " has the wrong type"},
		})
		return
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
}
