package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/in"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/intake_service"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/matcher_service"
)

const sessionIDHeader = "X-Session-ID"

type SearchController struct {
	roster   in.RosterUseCase
	matcher  in.MatchUseCase
	intake   in.IntakeUseCase
	sessions *matcher_service.Sessions
}

func NewSearchController(
	roster in.RosterUseCase,
	matcher in.MatchUseCase,
	intake in.IntakeUseCase,
	sessions *matcher_service.Sessions,
) *SearchController {
	return &SearchController{
		roster:   roster,
		matcher:  matcher,
		intake:   intake,
		sessions: sessions,
	}
}

func (c *SearchController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/specialists", c.listSpecialists)
	api.POST("/search", c.search)
	api.GET("/search/mode", c.getMode)
	api.PUT("/search/mode", c.switchMode)
	api.POST("/intake/:kind", c.runIntake)
}

type SearchRequest struct {
	Query string `json:"query"`
}

type SwitchModeRequest struct {
	Mode      domain.SearchMode `json:"mode" binding:"required"`
	Confirmed bool              `json:"confirmed"`
}

// session возвращает сессию поиска; новый id отдаётся клиенту в заголовке
func (c *SearchController) session(ctx *gin.Context) *matcher_service.Session {
	id := ctx.GetHeader(sessionIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	ctx.Header(sessionIDHeader, id)
	return c.sessions.Get(id)
}

func (c *SearchController) listSpecialists(ctx *gin.Context) {
	specialists := c.roster.Specialists()
	ctx.JSON(http.StatusOK, gin.H{
		"specialists": specialists,
		"label":       domain.ResultLabel(domain.MatchKindAll, len(specialists)),
	})
}

func (c *SearchController) search(ctx *gin.Context) {
	var req SearchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := c.session(ctx)
	result := c.matcher.Match(ctx.Request.Context(), req.Query, session.Mode(), c.roster.Specialists())

	ctx.JSON(http.StatusOK, result)
}

func (c *SearchController) getMode(ctx *gin.Context) {
	session := c.session(ctx)
	ctx.JSON(http.StatusOK, gin.H{"mode": session.Mode()})
}

func (c *SearchController) switchMode(ctx *gin.Context) {
	var req SwitchModeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session := c.session(ctx)
	changed, err := session.SwitchMode(req.Mode, req.Confirmed)
	if errors.Is(err, matcher_service.ErrConfirmationRequired) {
		ctx.JSON(http.StatusPreconditionRequired, gin.H{
			"error":      err.Error(),
			"disclaimer": matcher_service.KeywordModeDisclaimer,
			"mode":       session.Mode(),
		})
		return
	}
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"mode":    session.Mode(),
		"changed": changed,
	})
}

// runIntake streams the simulated intake as server-sent events.
func (c *SearchController) runIntake(ctx *gin.Context) {
	kind, err := intake_service.ParseKind(ctx.Param("kind"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	session := c.session(ctx)
	updates := make(chan intake_service.Update)
	done := make(chan error, 1)

	go func() {
		defer close(updates)
		_, err := c.intake.Run(ctx.Request.Context(), kind, session.Mode(), func(update intake_service.Update) {
			select {
			case updates <- update:
			case <-ctx.Request.Context().Done():
			}
		})
		done <- err
	}()

	ctx.Stream(func(w io.Writer) bool {
		update, ok := <-updates
		if !ok {
			return false
		}
		ctx.SSEvent("update", update)
		return true
	})

	if err := <-done; err != nil {
		ctx.SSEvent("error", gin.H{"error": err.Error()})
	}
}
