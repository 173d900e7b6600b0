package matcher_service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/suchimauz/specialist-triage-booking/internal/core/domain"
	"github.com/suchimauz/specialist-triage-booking/internal/core/json_types"
)

const triagePromptTemplate = `
You are a medical triage assistant.
Here is the list of available doctors: %s.

The patient describes their condition as: "%s".

Task:
1. Analyze the symptoms.
2. Match them to the most appropriate specialists from the list.
3. Return ONLY a JSON array of the matching doctor IDs.

Example Output format: [1, 3]
Do not output markdown, explanations, or code blocks. Just the raw JSON array.
`

// BuildTriagePrompt embeds the reduced roster and the normalised query.
func BuildTriagePrompt(query string, roster []domain.Specialist) (string, error) {
	briefs := make([]domain.SpecialistBrief, 0, len(roster))
	for _, specialist := range roster {
		briefs = append(briefs, specialist.Brief())
	}

	payload, err := json.Marshal(briefs)
	if err != nil {
		return "", fmt.Errorf("matcher.prompt.marshal_failed: %w", err)
	}

	return fmt.Sprintf(triagePromptTemplate, string(payload), query), nil
}

// StripCodeFences removes ```json and ``` markers wherever they appear.
func StripCodeFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	return strings.TrimSpace(text)
}

// ParseClassifierIDs extracts the id array from the model output.
// An empty array is a valid answer; anything that is not an array is malformed.
func ParseClassifierIDs(text string) ([]json_types.FlexID, error) {
	cleaned := StripCodeFences(text)

	var ids []json_types.FlexID
	if err := json.Unmarshal([]byte(cleaned), &ids); err != nil {
		return nil, domain.NewMalformedError("classifier output is not an id array", err)
	}
	if ids == nil {
		// "null" декодируется без ошибки, но массивом не является
		return nil, domain.NewMalformedError("classifier output is null", nil)
	}

	return ids, nil
}

// FilterByIDs keeps roster order, not the order the model listed ids in.
func FilterByIDs(roster []domain.Specialist, ids []json_types.FlexID) []domain.Specialist {
	wanted := make(map[json_types.FlexID]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	result := make([]domain.Specialist, 0)
	for _, specialist := range roster {
		if _, ok := wanted[specialist.ID]; ok {
			result = append(result, specialist)
		}
	}
	return result
}
