package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lshigami/analyquiz/internal/apperror"
	"github.com/lshigami/analyquiz/internal/dto"
)

// respondError maps service errors onto HTTP status codes. Unrecognized
// errors become generic 500s so internals never leak to clients.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperror.ErrEmailTaken),
		errors.Is(err, apperror.ErrInvalidUpload),
		errors.Is(err, apperror.ErrExtractionFailed),
		errors.Is(err, apperror.ErrUnreadableContent):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperror.ErrInvalidCredentials),
		errors.Is(err, apperror.ErrInvalidToken):
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
	}
}

// parseID parses an entity identifier, answering 400 itself on failure.
// Callers must return immediately when ok is false.
func parseID(ctx *gin.Context, raw, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + label + " ID"})
		return uuid.Nil, false
	}
	return id, true
}
