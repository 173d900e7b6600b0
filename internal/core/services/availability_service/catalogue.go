package availability_service

import (
	"fmt"
	"sort"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

// BuildCatalogue lays fixed-length slots inside each window. A slot is only
// generated when it ends no later than the window end, so 09:00-12:00 at 30
// minutes yields 09:00 … 11:30.
func BuildCatalogue(windows []domain.SlotWindow, slotMinutes int) ([]json_types.ClockTime, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %d", slotMinutes)
	}

	seen := make(map[int]struct{})
	minutes := make([]int, 0)

	for _, window := range windows {
		start, err := window.Start.Minutes()
		if err != nil {
			return nil, err
		}
		end, err := window.End.Minutes()
		if err != nil {
			return nil, err
		}

		for slotStart := start; slotStart+slotMinutes <= end; slotStart += slotMinutes {
			if _, ok := seen[slotStart]; ok {
				continue
			}
			seen[slotStart] = struct{}{}
			minutes = append(minutes, slotStart)
		}
	}

	// Окна могут быть заданы в любом порядке
	sort.Ints(minutes)

	catalogue := make([]json_types.ClockTime, 0, len(minutes))
	for _, m := range minutes {
		catalogue = append(catalogue, json_types.ClockFromMinutes(m))
	}
	return catalogue, nil
}
