package feedback

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeResultCanonicalShape(t *testing.T) {
	raw := json.RawMessage(`{
		"summary": {"professionalTitle": "Backend Engineer", "overallAssessment": "Solid."},
		"suggestions": [
			{"category": "content", "title": "Quantify impact", "description": "Add numbers.", "priority": "High"},
			{"category": "format", "title": "Tighten layout", "description": "One page.", "priority": "low", "status": "Implemented"}
		]
	}`)

	summary, suggestions, err := normalizeResult(raw)
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if summary.ProfessionalTitle != "Backend Engineer" || summary.OverallAssessment != "Solid." {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(suggestions))
	}
	if suggestions[0].Priority != "high" {
		t.Fatalf("expected lowercased priority, got %q", suggestions[0].Priority)
	}
	if suggestions[0].Status != StatusPending {
		t.Fatalf("expected default pending status, got %q", suggestions[0].Status)
	}
	if suggestions[1].Status != StatusImplemented {
		t.Fatalf("expected lowercased implemented status, got %q", suggestions[1].Status)
	}
}

func TestNormalizeResultAliases(t *testing.T) {
	for _, alias := range []string{"improvements", "items", "recommendations"} {
		raw := json.RawMessage(`{"` + alias + `": [{"title": "t"}]}`)
		_, suggestions, err := normalizeResult(raw)
		if err != nil {
			t.Fatalf("alias %q: %v", alias, err)
		}
		if len(suggestions) != 1 || suggestions[0].Title != "t" {
			t.Fatalf("alias %q: unexpected suggestions %+v", alias, suggestions)
		}
	}
}

func TestNormalizeResultAliasOrder(t *testing.T) {
	// "suggestions" wins over later aliases when both are present.
	raw := json.RawMessage(`{
		"items": [{"title": "loser"}],
		"suggestions": [{"title": "winner"}]
	}`)
	_, suggestions, err := normalizeResult(raw)
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Title != "winner" {
		t.Fatalf("unexpected suggestions %+v", suggestions)
	}
}

func TestNormalizeResultNullAliasFallsThrough(t *testing.T) {
	// A null "suggestions" key must not shadow a later alias that does
	// carry the list.
	raw := json.RawMessage(`{
		"suggestions": null,
		"improvements": [{"title": "t"}]
	}`)
	_, suggestions, err := normalizeResult(raw)
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if len(suggestions) != 1 || suggestions[0].Title != "t" {
		t.Fatalf("unexpected suggestions %+v", suggestions)
	}
}

func TestNormalizeResultAllAliasesNull(t *testing.T) {
	raw := json.RawMessage(`{"suggestions": null, "items": null}`)
	_, _, err := normalizeResult(raw)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestNormalizeResultDefaultSummary(t *testing.T) {
	raw := json.RawMessage(`{"suggestions": []}`)
	summary, suggestions, err := normalizeResult(raw)
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if summary != defaultSummary {
		t.Fatalf("expected default summary, got %+v", summary)
	}
	if len(suggestions) != 0 {
		t.Fatalf("expected empty suggestions, got %+v", suggestions)
	}
}

func TestNormalizeResultPartialSummary(t *testing.T) {
	raw := json.RawMessage(`{
		"summary": {"professionalTitle": "Data Engineer"},
		"suggestions": []
	}`)
	summary, _, err := normalizeResult(raw)
	if err != nil {
		t.Fatalf("normalizeResult: %v", err)
	}
	if summary.ProfessionalTitle != "Data Engineer" {
		t.Fatalf("unexpected title %q", summary.ProfessionalTitle)
	}
	if summary.OverallAssessment != defaultSummary.OverallAssessment {
		t.Fatalf("expected default assessment, got %q", summary.OverallAssessment)
	}
}

func TestNormalizeResultNoListKey(t *testing.T) {
	raw := json.RawMessage(`{"summary": {"professionalTitle": "X"}, "advice": []}`)
	_, _, err := normalizeResult(raw)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestNormalizeResultNotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `not json`} {
		_, _, err := normalizeResult(json.RawMessage(raw))
		if !errors.Is(err, ErrSchemaMismatch) {
			t.Fatalf("input %q: expected ErrSchemaMismatch, got %v", raw, err)
		}
	}
}

func TestNormalizeResultListWrongType(t *testing.T) {
	raw := json.RawMessage(`{"suggestions": "not a list"}`)
	_, _, err := normalizeResult(raw)
	if !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
