package http

import (
	"github.com/gin-gonic/gin"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
)

type Controller interface {
	RegisterRoutes(api *gin.RouterGroup)
}

func NewRouter(logger out.LoggerPort, health *HealthController, controllers ...Controller) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID(), accessLog(logger.WithModule("HttpServer")))

	health.RegisterRoutes(router)

	api := router.Group("/api/v1")
	for _, controller := range controllers {
		controller.RegisterRoutes(api)
	}
	return router
}
