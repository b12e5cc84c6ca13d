package controller

import (
	"errors"

	"science_lms_backend/internal/service"
	"science_lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// respondError maps the service error taxonomy onto HTTP statuses so every
// controller reports failures the same way.
func respondError(ctx *gin.Context, err error) {
	if verr, ok := service.AsValidationError(err); ok {
		util.ValidationFailed(ctx, verr.Fields)
		return
	}
	switch {
	case errors.Is(err, service.ErrNotFound):
		util.NotFound(ctx)
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrNotParticipant):
		util.Forbidden(ctx)
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrForumLocked),
		errors.Is(err, service.ErrQuizNotAvailable),
		errors.Is(err, service.ErrAttemptsExceeded),
		errors.Is(err, service.ErrAttemptFinished):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
