package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/in"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

const (
	requestIDHeader = "X-Request-ID"
	principalKey    = "principal"
)

func requestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		ctx.Set(requestIDHeader, id)
		ctx.Header(requestIDHeader, id)
		ctx.Next()
	}
}

func accessLog(logger out.LoggerPort) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		fields := out.LogFields{
			"method":    ctx.Request.Method,
			"path":      ctx.FullPath(),
			"status":    ctx.Writer.Status(),
			"latency":   time.Since(start).String(),
			"requestId": ctx.GetString(requestIDHeader),
		}
		if ctx.Writer.Status() >= http.StatusInternalServerError {
			logger.Warn("http.request.failed", fields)
			return
		}
		logger.Debug("http.request.completed", fields)
	}
}

// authenticate resolves the bearer token and enforces the allowed roles.
func authenticate(sessions in.SessionUseCase, roles ...domain.Role) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization required"})
			return
		}

		principal, err := sessions.ParseToken(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		allowed := false
		for _, role := range roles {
			if principal.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		ctx.Set(principalKey, *principal)
		ctx.Next()
	}
}

func principalFrom(ctx *gin.Context) domain.Principal {
	principal, _ := ctx.MustGet(principalKey).(domain.Principal)
	return principal
}

func confirmed(ctx *gin.Context) bool {
	return ctx.Query("confirm") == "true"
}
