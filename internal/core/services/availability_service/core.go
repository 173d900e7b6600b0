package availability_service

import (
	"context"
	"sync"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
	"github.com/suchimauz/specialist-triage-booking/internal/core/ports/out"
	"github.com/suchimauz/specialist-triage-booking/internal/utils"
)

// AppointmentSource is the read side of the local mirror.
type AppointmentSource interface {
	Appointments() []domain.Appointment
}

type AvailabilityService struct {
	catalogue   []json_types.ClockTime
	horizonDays int
	location    *time.Location
	source      AppointmentSource
	cachePort   out.CachePort
	logger      out.LoggerPort

	// generation растёт при каждой инвалидации; устаревший расчёт в кэш не пишется
	mu         sync.Mutex
	generation uint64
}

func NewAvailabilityService(
	catalogue []json_types.ClockTime,
	horizonDays int,
	location *time.Location,
	source AppointmentSource,
	cachePort out.CachePort,
	logger out.LoggerPort,
) *AvailabilityService {
	if location == nil {
		location = time.UTC
	}
	return &AvailabilityService{
		catalogue:   catalogue,
		horizonDays: horizonDays,
		location:    location,
		source:      source,
		cachePort:   cachePort,
		logger:      logger.WithModule("AvailabilityService"),
	}
}

func (s *AvailabilityService) Catalogue() []json_types.ClockTime {
	return append([]json_types.ClockTime(nil), s.catalogue...)
}

// OfferableDates returns today+1 … today+horizon in ascending order. Today is never offered.
func (s *AvailabilityService) OfferableDates(today time.Time) []domain.OfferableDate {
	return OfferableDates(today.In(s.location), s.horizonDays)
}

// SlotsFor computes the slots of doctor on date from the current mirror.
// A result computed across a cache invalidation is returned but not cached.
func (s *AvailabilityService) SlotsFor(ctx context.Context, doctor, date string) []domain.Slot {
	// Проверяем кэш только если он включен
	if s.cachePort != nil {
		if slots, exists := s.cachePort.GetSlots(ctx, doctor, date); exists {
			return slots
		}
	}

	generation := s.currentGeneration()
	slots := FreeSlots(doctor, date, s.source.Appointments(), s.catalogue)

	if s.cachePort != nil {
		s.storeIfCurrent(ctx, generation, doctor, date, slots)
	}

	s.logger.Debug("availability.slots.computed", out.LogFields{
		"doctor": doctor,
		"date":   date,
		"booked": countBooked(slots),
	})

	return slots
}

// InvalidateCache drops every cached slot list; called after each mirror reload.
func (s *AvailabilityService) InvalidateCache(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	if s.cachePort != nil {
		s.cachePort.InvalidateAllSlotsCache(ctx)
	}
}

func (s *AvailabilityService) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

func (s *AvailabilityService) storeIfCurrent(ctx context.Context, generation uint64, doctor, date string, slots []domain.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if generation != s.generation {
		s.logger.Debug("availability.slots.stale", out.LogFields{
			"doctor": doctor,
			"date":   date,
		})
		return
	}
	s.cachePort.StoreSlots(ctx, doctor, date, slots)
}

// OfferableDates is the pure form of AvailabilityService.OfferableDates.
func OfferableDates(today time.Time, horizonDays int) []domain.OfferableDate {
	dates := make([]domain.OfferableDate, 0, horizonDays)

	day := utils.StartCurrentDay(today)
	for i := 1; i <= horizonDays; i++ {
		day = utils.StartNextDay(day)
		dates = append(dates, domain.OfferableDate{
			Date:    json_types.FormatCalendarDate(day),
			Weekday: day.Weekday().String()[:3],
			Day:     day.Day(),
		})
	}

	return dates
}

// FreeSlots marks a catalogue slot booked iff an appointment has the same doctor
// name, the same date and a time equal to the slot after truncating seconds.
func FreeSlots(doctor, date string, appointments []domain.Appointment, catalogue []json_types.ClockTime) []domain.Slot {
	booked := make(map[json_types.ClockTime]struct{})
	for _, appointment := range appointments {
		if appointment.Doctor != doctor || appointment.Date != date {
			continue
		}
		// пустое время (null в базе) ни с одним слотом не совпадёт
		booked[json_types.NewClockTime(string(appointment.Time))] = struct{}{}
	}

	slots := make([]domain.Slot, 0, len(catalogue))
	for _, slotTime := range catalogue {
		status := domain.SlotStatusFree
		if _, ok := booked[slotTime]; ok {
			status = domain.SlotStatusBooked
		}
		slots = append(slots, domain.Slot{Time: slotTime, Status: status})
	}

	return slots
}

func countBooked(slots []domain.Slot) int {
	count := 0
	for _, slot := range slots {
		if !slot.Bookable() {
			count++
		}
	}
	return count
}
