package out

import (
	"context"

	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type AppointmentEventType string

const (
	AppointmentEventStore      AppointmentEventType = "store"
	AppointmentEventInvalidate AppointmentEventType = "invalidate"
)

type AppointmentEvent struct {
	Type          AppointmentEventType `json:"type"`
	AppointmentID json_types.FlexID    `json:"appointment_id,omitempty"`
	Doctor        string               `json:"doctor"`
	Date          string               `json:"date"`
	Time          json_types.ClockTime `json:"time"`
}

// EventPort tells other instances that the appointments collection changed.
type EventPort interface {
	PublishAppointmentEvent(ctx context.Context, event AppointmentEvent) error
}
