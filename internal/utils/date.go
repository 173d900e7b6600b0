package utils

import (
	"fmt"
	"time"

	"github.com/suchimauz/specialist-triage-booking/internal/config"
)

// StartNextDay возвращает новую дату, где день увеличен на 1, время установлено на 00:00, а таймзона остается прежней.
func StartNextDay(t time.Time) time.Time {
	newDate := t.AddDate(0, 0, 1)
	return time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, newDate.Location())
}

func StartCurrentDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseDate парсит дату YYYY-MM-DD в таймзоне из конфига
func ParseDate(str string) (time.Time, error) {
	parsedDate, err := time.ParseInLocation("2006-01-02", str, config.TimeZone)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse date: %v", err)
	}
	return parsedDate, nil
}

// Today returns the start of the current day in the configured timezone.
func Today() time.Time {
	return StartCurrentDay(time.Now().In(config.TimeZone))
}
