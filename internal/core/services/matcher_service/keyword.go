package matcher_service

import (
	"strings"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
)

// NormalizeQuery lowercases and trims the symptom text.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// KeywordMatch is the deterministic fallback search.
// A specialist matches when its specialty contains the query, or when one of its
// keywords occurs inside the query: "neuro" finds the Neurologist, and so does
// "bad migraine today" through "migraine".
func KeywordMatch(query string, roster []domain.Specialist) []domain.Specialist {
	query = NormalizeQuery(query)

	result := make([]domain.Specialist, 0)
	for _, specialist := range roster {
		if specialistMatches(query, specialist) {
			result = append(result, specialist)
		}
	}
	return result
}

func specialistMatches(query string, specialist domain.Specialist) bool {
	if strings.Contains(strings.ToLower(specialist.Specialty), query) {
		return true
	}
	for _, keyword := range specialist.Keywords {
		if strings.Contains(query, keyword) {
			return true
		}
	}
	return false
}
