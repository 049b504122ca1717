package feedback

import "time"

// Suggestion statuses. Statuses are mutable after creation; everything
// else on a suggestion is not.
const (
	StatusPending     = "pending"
	StatusImplemented = "implemented"
	StatusIgnored     = "ignored"
)

// ValidStatus reports whether s is one of the accepted statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusImplemented, StatusIgnored:
		return true
	}
	return false
}

// Suggestion is one actionable recommendation. Suggestions have no identity
// of their own; they are addressed by position in the owning record.
type Suggestion struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// Summary is the model's overall read of the resume.
type Summary struct {
	ProfessionalTitle string `json:"professionalTitle"`
	OverallAssessment string `json:"overallAssessment"`
}

// Feedback is the persisted result of one suggestion-generation call.
// Multiple feedback records may reference the same resume.
type Feedback struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	ResumeID    string       `json:"resumeId"`
	Suggestions []Suggestion `json:"suggestions"`
	CreatedAt   time.Time    `json:"createdAt"`
}
