package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/mirror_service"
)

type SnapshotSource interface {
	Snapshot() mirror_service.Snapshot
}

type HealthController struct {
	mirror  SnapshotSource
	version string
}

func NewHealthController(mirror SnapshotSource, version string) *HealthController {
	return &HealthController{mirror: mirror, version: version}
}

func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", c.health)
}

func (c *HealthController) health(ctx *gin.Context) {
	snapshot := c.mirror.Snapshot()
	ctx.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"version":      c.version,
		"offline":      snapshot.Offline,
		"specialists":  len(snapshot.Specialists),
		"appointments": len(snapshot.Appointments),
		"loadedAt":     snapshot.LoadedAt,
	})
}
