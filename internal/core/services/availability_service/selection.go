package availability_service

import (
	"context"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

// Selection is the booking form state for one doctor.
// Choosing a date recomputes the slots and clears any chosen time.
type Selection struct {
	service *AvailabilityService
	doctor  domain.Specialist
	date    string
	time    json_types.ClockTime
	slots   []domain.Slot
}

func (s *AvailabilityService) NewSelection(doctor domain.Specialist) *Selection {
	return &Selection{
		service: s,
		doctor:  doctor,
		slots:   []domain.Slot{},
	}
}

func (sel *Selection) SelectDate(ctx context.Context, date string) []domain.Slot {
	sel.date = date
	sel.time = ""
	sel.slots = sel.service.SlotsFor(ctx, sel.doctor.Name, date)
	return sel.slots
}

// SelectTime accepts only a free slot of the current date; anything else is a no-op.
func (sel *Selection) SelectTime(slotTime json_types.ClockTime) bool {
	if sel.date == "" {
		return false
	}
	for _, slot := range sel.slots {
		if slot.Time == slotTime && slot.Bookable() {
			sel.time = slotTime
			return true
		}
	}
	return false
}

func (sel *Selection) Doctor() domain.Specialist {
	return sel.doctor
}

func (sel *Selection) Date() string {
	return sel.date
}

func (sel *Selection) Time() json_types.ClockTime {
	return sel.time
}
