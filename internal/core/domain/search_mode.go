package domain

import (
	"encoding/json"
	"fmt"
)

type SearchMode string

const (
	SearchModeAI      SearchMode = "ai"
	SearchModeKeyword SearchMode = "keyword"
)

func ParseSearchMode(raw string) (SearchMode, error) {
	switch SearchMode(raw) {
	case SearchModeAI:
		return SearchModeAI, nil
	case SearchModeKeyword:
		return SearchModeKeyword, nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown search mode %q", raw))
}

func (m *SearchMode) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	mode, err := ParseSearchMode(raw)
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

type MatchKind string

const (
	MatchKindAll      MatchKind = "all"
	MatchKindAI       MatchKind = "ai"
	MatchKindKeyword  MatchKind = "keyword"
	MatchKindFallback MatchKind = "fallback"
)

type MatchResult struct {
	Kind        MatchKind    `json:"kind"`
	Specialists []Specialist `json:"specialists"`
	Label       string       `json:"label"`
	Debug       []DebugInfo  `json:"debug,omitempty"`
}

func (r MatchResult) Count() int {
	return len(r.Specialists)
}

// ResultLabel is the text of the results pill.
func ResultLabel(kind MatchKind, count int) string {
	if kind == MatchKindAll {
		return "Showing All"
	}
	if count == 0 {
		return "No Matches"
	}
	if count > 1 {
		return fmt.Sprintf("Found %d Specialists", count)
	}
	return fmt.Sprintf("Found %d Specialist", count)
}
