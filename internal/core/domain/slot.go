package domain

import (
	"fmt"
	"strings"

	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

type SlotStatus string

const (
	SlotStatusFree   SlotStatus = "free"
	SlotStatusBooked SlotStatus = "booked"
)

type Slot struct {
	Time   json_types.ClockTime `json:"time"`
	Status SlotStatus           `json:"status"`
}

func (s Slot) Bookable() bool {
	return s.Status == SlotStatusFree
}

type OfferableDate struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Day     int    `json:"day"`
}

// SlotWindow is a business window [Start, End) in which slots are offered.
type SlotWindow struct {
	Start json_types.ClockTime `json:"start"`
	End   json_types.ClockTime `json:"end"`
}

// ParseSlotWindow разбирает окно вида "09:00-12:00"
func ParseSlotWindow(raw string) (SlotWindow, error) {
	parts := strings.Split(strings.TrimSpace(raw), "-")
	if len(parts) != 2 {
		return SlotWindow{}, fmt.Errorf("invalid slot window: %q", raw)
	}

	window := SlotWindow{
		Start: json_types.NewClockTime(strings.TrimSpace(parts[0])),
		End:   json_types.NewClockTime(strings.TrimSpace(parts[1])),
	}

	start, err := window.Start.Minutes()
	if err != nil {
		return SlotWindow{}, err
	}
	end, err := window.End.Minutes()
	if err != nil {
		return SlotWindow{}, err
	}
	if end <= start {
		return SlotWindow{}, fmt.Errorf("slot window %q ends before it starts", raw)
	}

	return window, nil
}
