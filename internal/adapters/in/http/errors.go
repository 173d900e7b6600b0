package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

func statusFor(err error) int {
	switch domain.ErrorTypeOf(err) {
	case domain.ErrorTypeValidation:
		return http.StatusBadRequest
	case domain.ErrorTypeUnauthorized:
		return http.StatusUnauthorized
	case domain.ErrorTypeNotFound:
		return http.StatusNotFound
	case domain.ErrorTypeConflict:
		return http.StatusConflict
	case domain.ErrorTypeNetwork, domain.ErrorTypeUpstream, domain.ErrorTypeMalformed:
		return http.StatusBadGateway
	case domain.ErrorTypeNotConfigured:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondError(ctx *gin.Context, err error) {
	body := gin.H{"error": err.Error()}

	var appErr *domain.AppError
	if errors.As(err, &appErr) {
		body["error"] = appErr.Message
		body["type"] = appErr.Type
	}

	ctx.JSON(statusFor(err), body)
}
