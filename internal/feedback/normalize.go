package feedback

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// suggestionListAliases are the accepted key names for the suggestions
// array, tried in order. Models occasionally rename the list even in JSON
// mode; the first alias present wins and unknown shapes fail closed.
var suggestionListAliases = []string{"suggestions", "improvements", "items", "recommendations"}

var defaultSummary = Summary{
	ProfessionalTitle: "Professional",
	OverallAssessment: "Resume analysis completed.",
}

// normalizeResult decodes the model's raw JSON into a summary and an
// ordered suggestion list. Input order is preserved. Suggestions without a
// status default to pending.
func normalizeResult(raw json.RawMessage) (Summary, []Suggestion, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Summary{}, nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	summary := defaultSummary
	if rawSummary, ok := fields["summary"]; ok {
		var s Summary
		if err := json.Unmarshal(rawSummary, &s); err == nil {
			if s.ProfessionalTitle != "" {
				summary.ProfessionalTitle = s.ProfessionalTitle
			}
			if s.OverallAssessment != "" {
				summary.OverallAssessment = s.OverallAssessment
			}
		}
	}

	rawList, ok := findSuggestionList(fields)
	if !ok {
		return Summary{}, nil, ErrSchemaMismatch
	}

	var suggestions []Suggestion
	if err := json.Unmarshal(rawList, &suggestions); err != nil {
		return Summary{}, nil, fmt.Errorf("%w: suggestions list: %v", ErrSchemaMismatch, err)
	}

	for i := range suggestions {
		suggestions[i].Priority = strings.ToLower(strings.TrimSpace(suggestions[i].Priority))
		status := strings.ToLower(strings.TrimSpace(suggestions[i].Status))
		if status == "" {
			status = StatusPending
		}
		suggestions[i].Status = status
	}
	return summary, suggestions, nil
}

func findSuggestionList(fields map[string]json.RawMessage) (json.RawMessage, bool) {
	for _, alias := range suggestionListAliases {
		raw, ok := fields[alias]
		// A key set to null does not count as present; a later alias may
		// still carry the list.
		if !ok || isJSONNull(raw) {
			continue
		}
		return raw, true
	}
	return nil, false
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
