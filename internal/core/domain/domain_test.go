package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

func TestParseSlotWindow(t *testing.T) {
	window, err := ParseSlotWindow(" 09:00-12:00 ")
	require.NoError(t, err)
	assert.Equal(t, json_types.ClockTime("09:00"), window.Start)
	assert.Equal(t, json_types.ClockTime("12:00"), window.End)

	for _, raw := range []string{"09:00", "12:00-09:00", "9am-noon"} {
		_, err := ParseSlotWindow(raw)
		assert.Error(t, err, raw)
	}
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "Showing All", ResultLabel(MatchKindAll, 4))
	assert.Equal(t, "No Matches", ResultLabel(MatchKindAI, 0))
	assert.Equal(t, "Found 1 Specialist", ResultLabel(MatchKindKeyword, 1))
	assert.Equal(t, "Found 3 Specialists", ResultLabel(MatchKindFallback, 3))
}

func TestParseSearchMode(t *testing.T) {
	mode, err := ParseSearchMode("keyword")
	require.NoError(t, err)
	assert.Equal(t, SearchModeKeyword, mode)

	_, err = ParseSearchMode("semantic")
	assert.True(t, IsType(err, ErrorTypeValidation))

	var decoded struct {
		Mode SearchMode `json:"mode"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"mode":"fuzzy"}`), &decoded))
	require.NoError(t, json.Unmarshal([]byte(`{"mode":"ai"}`), &decoded))
	assert.Equal(t, SearchModeAI, decoded.Mode)
}

func TestAppointmentOccupies(t *testing.T) {
	appointment := Appointment{Doctor: "Dr. Sarah Chen", Date: "2025-01-10", Time: "09:00:00"}

	assert.True(t, appointment.Occupies("Dr. Sarah Chen", "2025-01-10", "09:00"))
	assert.False(t, appointment.Occupies("Dr. Sarah Chen", "2025-01-10", "09:30"))
	assert.False(t, appointment.Occupies("Dr. Lisa Park", "2025-01-10", "09:00"))
	assert.False(t, appointment.Occupies("Dr. Sarah Chen", "2025-01-11", "09:00"))
}

func TestFallbackSpecialists(t *testing.T) {
	roster := FallbackSpecialists()
	require.Len(t, roster, 4)

	specialist, ok := FindSpecialist(roster, "3")
	require.True(t, ok)
	assert.Equal(t, "Dermatologist", specialist.Specialty)

	_, ok = FindSpecialist(roster, "99")
	assert.False(t, ok)
}

func TestSpecialistJSONHidesCredentials(t *testing.T) {
	data, err := json.Marshal(FallbackSpecialists()[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "username")
	assert.Contains(t, string(data), `"img"`)
}

func TestErrorTypeOf(t *testing.T) {
	wrapped := fmt.Errorf("booking.submit.insert_failed: %w", NewConflictError("taken"))

	assert.Equal(t, ErrorTypeConflict, ErrorTypeOf(wrapped))
	assert.True(t, IsType(wrapped, ErrorTypeConflict))
	assert.False(t, IsType(errors.New("plain"), ErrorTypeConflict))
}
