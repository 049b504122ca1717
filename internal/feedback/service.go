package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-coach/internal/llm"
	"resume-coach/internal/resumes"
	"resume-coach/internal/shared/metrics"
	"resume-coach/internal/shared/storage/kv"
	"resume-coach/internal/shared/telemetry"
)

const (
	defaultLLMTimeout = 30 * time.Second
	statusMaxAttempts = 3
)

// Service generates suggestion feedback for resume text and tracks
// per-suggestion status afterwards.
type Service struct {
	Resumes *resumes.Repo
	Repo    *Repo
	LLM     llm.Client

	// LLMTimeout bounds one generation call including its retry.
	// Zero means defaultLLMTimeout.
	LLMTimeout time.Duration
}

// GenerateResult is the outcome of one suggestion-generation call.
type GenerateResult struct {
	FeedbackID  string
	ResumeID    string
	Suggestions []Suggestion
	Summary     Summary
}

// Generate asks the model for improvement suggestions on resumeText and
// persists the result as a new feedback record referencing resumeID. A
// resume record is created first when none exists, so pasted-text
// submissions show up in history like uploads do.
func (s *Service) Generate(ctx context.Context, userID, resumeID, resumeText string) (GenerateResult, error) {
	if strings.TrimSpace(resumeText) == "" {
		return GenerateResult{}, errors.New("resume text is required")
	}
	if resumeID == "" {
		resumeID = uuid.NewString()
	}

	if err := s.ensureResume(ctx, userID, resumeID); err != nil {
		return GenerateResult{}, err
	}

	metrics.IncGenerationStarted()
	start := time.Now()

	timeout := s.LLMTimeout
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	llmCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := retryingLLM{base: s.LLM}
	raw, err := client.Complete(llmCtx, llm.CoachPrompt(resumeText))
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncGenerationFailed()
		return GenerateResult{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	summary, suggestions, err := normalizeResult(raw)
	if err != nil {
		metrics.IncGenerationFailed()
		return GenerateResult{}, err
	}
	if len(suggestions) == 0 {
		metrics.IncGenerationFailed()
		return GenerateResult{}, ErrNoSuggestions
	}

	fb := Feedback{
		ID:          uuid.NewString(),
		UserID:      userID,
		ResumeID:    resumeID,
		Suggestions: suggestions,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, fb); err != nil {
		return GenerateResult{}, err
	}
	metrics.IncGenerationCompleted()

	return GenerateResult{
		FeedbackID:  fb.ID,
		ResumeID:    resumeID,
		Suggestions: suggestions,
		Summary:     summary,
	}, nil
}

// ensureResume creates a resume record for directly submitted text when
// the caller's resumeID is not persisted yet. Deliberately explicit: this
// is the one write Generate performs besides the feedback record itself.
func (s *Service) ensureResume(ctx context.Context, userID, resumeID string) error {
	created, err := s.Resumes.EnsureCreate(ctx, resumes.Resume{
		ID:         resumeID,
		UserID:     userID,
		FileName:   resumes.PastedFileName,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("ensure resume %s: %w", resumeID, err)
	}
	if created {
		telemetry.Info("resume.created_from_text", map[string]any{
			"user_id":   userID,
			"resume_id": resumeID,
		})
	}
	return nil
}

// UpdateStatus sets the status of the suggestion at index within the
// feedback record. The write is optimistic: a concurrent update to the
// same record triggers a reload and retry so neither update is lost.
func (s *Service) UpdateStatus(ctx context.Context, userID, feedbackID string, index int, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	for attempt := 0; attempt < statusMaxAttempts; attempt++ {
		fb, version, err := s.Repo.Get(ctx, userID, feedbackID)
		if err != nil {
			return err
		}
		if index < 0 || index >= len(fb.Suggestions) {
			return ErrInvalidIndex
		}

		fb.Suggestions[index].Status = status
		err = s.Repo.PutVersion(ctx, fb, version)
		if errors.Is(err, kv.ErrVersionConflict) {
			continue
		}
		return err
	}
	return fmt.Errorf("update status %s[%d]: %w", feedbackID, index, kv.ErrVersionConflict)
}
