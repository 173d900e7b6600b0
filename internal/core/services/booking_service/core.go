package booking_service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
	"github.com/suchimauz/specialist-triage-booking/internal/core/services/availability_service"
)

// Mirror is the part of the local mirror the coordinator needs.
type Mirror interface {
	Specialists() []domain.Specialist
	Appointments() []domain.Appointment
	Reload(ctx context.Context) error
}

// Availability supplies the dates and slots a booking may target.
type Availability interface {
	OfferableDates(today time.Time) []domain.OfferableDate
	NewSelection(doctor domain.Specialist) *availability_service.Selection
}

type BookingRequest struct {
	PatientName string
	DoctorID    json_types.FlexID
	Date        string
	Time        string
}

type BookingService struct {
	storePort    out.RemoteStorePort
	eventPort    out.EventPort
	mirror       Mirror
	availability Availability
	now          func() time.Time
	logger       out.LoggerPort
}

func NewBookingService(
	storePort out.RemoteStorePort,
	eventPort out.EventPort,
	mirror Mirror,
	availability Availability,
	logger out.LoggerPort,
) *BookingService {
	return &BookingService{
		storePort:    storePort,
		eventPort:    eventPort,
		mirror:       mirror,
		availability: availability,
		now:          time.Now,
		logger:       logger.WithModule("BookingService"),
	}
}

// Submit validates and inserts a booking. On success the mirror has been fully
// reloaded by the time Submit returns. On any failure the mirror is untouched.
func (s *BookingService) Submit(ctx context.Context, req BookingRequest) (*domain.Appointment, error) {
	patient := strings.TrimSpace(req.PatientName)
	date := strings.TrimSpace(req.Date)
	slotTime := json_types.NewClockTime(strings.TrimSpace(req.Time))

	// Валидация до любого сетевого вызова
	if patient == "" || req.DoctorID == "" || date == "" || slotTime.IsZero() {
		return nil, domain.NewValidationError("Please select a date, time, and enter name")
	}

	doctor, ok := domain.FindSpecialist(s.mirror.Specialists(), req.DoctorID)
	if !ok {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown specialist %q", req.DoctorID))
	}

	if !s.isOfferable(date) {
		return nil, domain.NewValidationError(fmt.Sprintf("date %q is not open for booking", date))
	}

	// Занятый слот в зеркале выбрать нельзя
	for _, appointment := range s.mirror.Appointments() {
		if appointment.Occupies(doctor.Name, date, slotTime) {
			s.logger.Info("booking.submit.slot_taken", out.LogFields{
				"doctor": doctor.Name,
				"date":   date,
				"time":   slotTime,
			})
			return nil, domain.NewConflictError("this time slot is already booked")
		}
	}

	selection := s.availability.NewSelection(doctor)
	selection.SelectDate(ctx, date)
	if !selection.SelectTime(slotTime) {
		return nil, domain.NewValidationError(fmt.Sprintf("time %q is not an available slot", slotTime))
	}

	newAppointment := domain.NewAppointment{
		Patient:   patient,
		Doctor:    selection.Doctor().Name,
		Specialty: selection.Doctor().Specialty,
		Date:      selection.Date(),
		Time:      selection.Time(),
	}

	if err := s.storePort.InsertAppointment(ctx, newAppointment); err != nil {
		s.logger.Error("booking.submit.insert_failed", out.LogFields{
			"doctor": doctor.Name,
			"date":   date,
			"time":   slotTime,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("booking.submit.insert_failed: %w", err)
	}

	if err := s.mirror.Reload(ctx); err != nil {
		s.logger.Warn("booking.submit.reload_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	s.publish(ctx, out.AppointmentEvent{
		Type:   out.AppointmentEventStore,
		Doctor: doctor.Name,
		Date:   date,
		Time:   slotTime,
	})

	s.logger.Info("booking.submit.confirmed", out.LogFields{
		"doctor": doctor.Name,
		"date":   date,
		"time":   slotTime,
	})

	return &domain.Appointment{
		Patient:   patient,
		Doctor:    doctor.Name,
		Specialty: doctor.Specialty,
		Date:      date,
		Time:      slotTime,
	}, nil
}

// Resolve marks an appointment done. Like Cancel it is a hard delete.
// A doctor may only resolve their own appointments; others look missing.
func (s *BookingService) Resolve(ctx context.Context, principal domain.Principal, appointmentID json_types.FlexID) error {
	if appointmentID == "" {
		return domain.NewValidationError("appointment id is required")
	}

	if !principal.IsAdmin() {
		appointment, ok := s.findAppointment(appointmentID)
		if !ok || appointment.Doctor != principal.Name {
			s.logger.Info("booking.resolve.not_owner", out.LogFields{
				"appointmentId": appointmentID,
				"doctor":        principal.Name,
			})
			return domain.NewNotFoundError("appointment not found")
		}
	}

	return s.remove(ctx, "booking.resolve", appointmentID)
}

// Cancel removes an appointment on behalf of the admin.
func (s *BookingService) Cancel(ctx context.Context, appointmentID json_types.FlexID) error {
	return s.remove(ctx, "booking.cancel", appointmentID)
}

func (s *BookingService) remove(ctx context.Context, event string, appointmentID json_types.FlexID) error {
	if appointmentID == "" {
		return domain.NewValidationError("appointment id is required")
	}

	removed, found := s.findAppointment(appointmentID)

	if err := s.storePort.DeleteAppointment(ctx, appointmentID); err != nil {
		s.logger.Error(event+".delete_failed", out.LogFields{
			"appointmentId": appointmentID,
			"error":         err.Error(),
		})
		return fmt.Errorf("%s.delete_failed: %w", event, err)
	}

	if err := s.mirror.Reload(ctx); err != nil {
		s.logger.Warn(event+".reload_failed", out.LogFields{
			"error": err.Error(),
		})
	}

	appointmentEvent := out.AppointmentEvent{
		Type:          out.AppointmentEventInvalidate,
		AppointmentID: appointmentID,
	}
	if found {
		appointmentEvent.Doctor = removed.Doctor
		appointmentEvent.Date = removed.Date
		appointmentEvent.Time = removed.Time
	}
	s.publish(ctx, appointmentEvent)

	s.logger.Info(event+".completed", out.LogFields{
		"appointmentId": appointmentID,
	})
	return nil
}

func (s *BookingService) findAppointment(appointmentID json_types.FlexID) (domain.Appointment, bool) {
	for _, appointment := range s.mirror.Appointments() {
		if appointment.ID == appointmentID {
			return appointment, true
		}
	}
	return domain.Appointment{}, false
}

// isOfferable checks date against the booking horizon starting tomorrow.
func (s *BookingService) isOfferable(date string) bool {
	for _, offerable := range s.availability.OfferableDates(s.now()) {
		if offerable.Date == date {
			return true
		}
	}
	return false
}

func (s *BookingService) publish(ctx context.Context, event out.AppointmentEvent) {
	if s.eventPort == nil {
		return
	}
	if err := s.eventPort.PublishAppointmentEvent(ctx, event); err != nil {
		s.logger.Warn("booking.event.publish_failed", out.LogFields{
			"type":  event.Type,
			"error": err.Error(),
		})
	}
}
