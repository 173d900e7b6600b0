package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/in"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/booking_service"
	"github.com/suchimauz/specialist-triage-booking/internal/utils"
)

type BookingController struct {
	roster       in.RosterUseCase
	availability in.AvailabilityUseCase
	booking      in.BookingUseCase
	sessions     in.SessionUseCase
}

func NewBookingController(
	roster in.RosterUseCase,
	availability in.AvailabilityUseCase,
	booking in.BookingUseCase,
	sessions in.SessionUseCase,
) *BookingController {
	return &BookingController{
		roster:       roster,
		availability: availability,
		booking:      booking,
		sessions:     sessions,
	}
}

func (c *BookingController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/availability/dates", c.listDates)
	api.GET("/availability/slots", c.listSlots)
	api.POST("/bookings", c.submit)

	api.POST("/appointments/:id/resolve",
		authenticate(c.sessions, domain.RoleDoctor, domain.RoleAdmin),
		c.resolve,
	)

	admin := api.Group("/admin", authenticate(c.sessions, domain.RoleAdmin))
	{
		admin.DELETE("/appointments/:id", c.cancel)
	}
}

type BookingRequest struct {
	PatientName string            `json:"patient_name"`
	DoctorID    json_types.FlexID `json:"doctor_id"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
}

func (c *BookingController) listDates(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"dates": c.availability.OfferableDates(utils.Today()),
	})
}

func (c *BookingController) listSlots(ctx *gin.Context) {
	doctor, ok := domain.FindSpecialist(c.roster.Specialists(), json_types.FlexID(ctx.Query("doctor_id")))
	if !ok {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Specialist not found"})
		return
	}

	date := ctx.Query("date")
	if _, err := utils.ParseDate(date); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctor": doctor,
		"date":   date,
		"slots":  c.availability.SlotsFor(ctx.Request.Context(), doctor.Name, date),
	})
}

func (c *BookingController) submit(ctx *gin.Context) {
	var req BookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appointment, err := c.booking.Submit(ctx.Request.Context(), booking_service.BookingRequest{
		PatientName: req.PatientName,
		DoctorID:    req.DoctorID,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment Confirmed",
		"appointment": appointment,
	})
}

func (c *BookingController) resolve(ctx *gin.Context) {
	if !confirmed(ctx) {
		ctx.JSON(http.StatusPreconditionRequired, gin.H{
			"error": "Mark this appointment as resolved? Repeat with confirm=true.",
		})
		return
	}

	if err := c.booking.Resolve(ctx.Request.Context(), principalFrom(ctx), json_types.FlexID(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Appointment resolved and archived."})
}

func (c *BookingController) cancel(ctx *gin.Context) {
	if !confirmed(ctx) {
		ctx.JSON(http.StatusPreconditionRequired, gin.H{
			"error": "Remove this appointment? Repeat with confirm=true.",
		})
		return
	}

	if err := c.booking.Cancel(ctx.Request.Context(), json_types.FlexID(ctx.Param("id"))); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Appointment removed."})
}
