package json_types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

const DateLayout = "2006-01-02"

// ParseCalendarDate разбирает дату YYYY-MM-DD в указанной таймзоне
func ParseCalendarDate(str string, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	parsed, err := time.ParseInLocation(DateLayout, str, location)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return parsed, nil
}

func FormatCalendarDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FlexID is an identifier the store may hand out either as a JSON number
// (serial columns, AI responses like [1,3]) or as a JSON string (uuid columns).
type FlexID string

func (id FlexID) String() string {
	return string(id)
}

func (id *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return fmt.Errorf("failed to parse id: %v", err)
		}
		*id = FlexID(str)
		return nil
	}

	number, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("failed to parse id %s: %v", string(data), err)
	}
	if number == math.Trunc(number) {
		*id = FlexID(strconv.FormatInt(int64(number), 10))
		return nil
	}
	*id = FlexID(string(data))
	return nil
}

func (id FlexID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return json.Marshal(n)
	}
	return json.Marshal(string(id))
}
