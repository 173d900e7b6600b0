package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/in"
)

type AccountController struct {
	roster    in.RosterUseCase
	sessions  in.SessionUseCase
	dashboard in.DashboardUseCase
	reports   in.ReportUseCase
}

func NewAccountController(
	roster in.RosterUseCase,
	sessions in.SessionUseCase,
	dashboard in.DashboardUseCase,
	reports in.ReportUseCase,
) *AccountController {
	return &AccountController{
		roster:    roster,
		sessions:  sessions,
		dashboard: dashboard,
		reports:   reports,
	}
}

func (c *AccountController) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/auth/login", c.login)

	doctor := api.Group("", authenticate(c.sessions, domain.RoleDoctor))
	{
		doctor.GET("/dashboard", c.doctorDashboard)
		doctor.GET("/reports/:patient", c.getReport)
		doctor.PUT("/reports/:patient", c.saveReport)
	}

	api.GET("/admin/appointments", authenticate(c.sessions, domain.RoleAdmin), c.adminTable)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ReportRequest struct {
	Notes     string `json:"notes"`
	Diagnosis string `json:"diagnosis"`
	Rx        string `json:"rx"`
}

func (c *AccountController) login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	principal, err := c.sessions.Authenticate(req.Username, req.Password, c.roster.Specialists())
	if err != nil {
		respondError(ctx, err)
		return
	}

	token, err := c.sessions.IssueToken(*principal)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token":     token,
		"principal": principal,
	})
}

func (c *AccountController) doctorDashboard(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.dashboard.DoctorDashboard(principalFrom(ctx)))
}

func (c *AccountController) adminTable(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.dashboard.AdminTable())
}

func (c *AccountController) getReport(ctx *gin.Context) {
	report, err := c.reports.GetReport(ctx.Request.Context(), ctx.Param("patient"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, report)
}

func (c *AccountController) saveReport(ctx *gin.Context) {
	var req ReportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := c.reports.SaveReport(ctx.Request.Context(), domain.PatientReport{
		Patient:   ctx.Param("patient"),
		Notes:     req.Notes,
		Diagnosis: req.Diagnosis,
		Rx:        req.Rx,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Report saved successfully",
		"report":  report,
	})
}
