package json_types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a time-of-day label normalised to HH:MM.
// Stores report "09:00:00"; the seconds component is dropped on decode.
type ClockTime string

const clockLayout = "15:04"

// NormalizeClock truncates a HH:MM[:SS] value to HH:MM. Empty input stays empty.
func NormalizeClock(raw string) string {
	if len(raw) >= 5 {
		return raw[:5]
	}
	return raw
}

func NewClockTime(raw string) ClockTime {
	return ClockTime(NormalizeClock(raw))
}

func (t ClockTime) String() string {
	return string(t)
}

func (t ClockTime) IsZero() bool {
	return t == ""
}

// Minutes returns minutes since midnight.
func (t ClockTime) Minutes() (int, error) {
	parsed, err := time.Parse(clockLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("failed to parse clock time %q: %v", string(t), err)
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

func ClockFromMinutes(minutes int) ClockTime {
	return ClockTime(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

func (t *ClockTime) UnmarshalJSON(data []byte) error {
	// null в колонке time_booked не ошибка, просто пустое время
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("failed to parse time: %v", err)
	}
	*t = NewClockTime(str)
	return nil
}

func (t ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}
