package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"resume-coach/internal/feedback"
	"resume-coach/internal/resumes"
	"resume-coach/internal/shared/storage/object"
	"resume-coach/internal/shared/telemetry"
)

// downloadURLTTL is the fixed lifetime of signed download URLs.
const downloadURLTTL = time.Hour

// Entry is one history row: the resume record, a time-limited download
// URL when the binary is stored, and the latest feedback generated for it.
type Entry struct {
	resumes.Resume
	DownloadURL *string            `json:"downloadUrl"`
	Feedback    *feedback.Feedback `json:"feedback"`
}

// Service reconstructs a user's chronological resume history.
type Service struct {
	Resumes  *resumes.Repo
	Feedback *feedback.Repo
	Store    object.ObjectStore
}

// History joins the user's resume and feedback records, newest upload
// first. When several feedback records reference one resume the most
// recently created wins. A failed signed-URL request degrades that entry
// to no URL rather than failing the call.
func (s *Service) History(ctx context.Context, userID string) ([]Entry, error) {
	resumeList, err := s.Resumes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	feedbackList, err := s.Feedback.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	latest := latestFeedbackByResume(feedbackList)

	entries := make([]Entry, 0, len(resumeList))
	for _, resume := range resumeList {
		entry := Entry{Resume: resume}
		if fb, ok := latest[resume.ID]; ok {
			entry.Feedback = fb
		}
		if resume.StoragePath != "" {
			url, err := s.Store.SignedURL(ctx, resume.StoragePath, downloadURLTTL)
			if err != nil {
				telemetry.Error("history.signed_url_failed", map[string]any{
					"user_id":   userID,
					"resume_id": resume.ID,
					"error":     err.Error(),
				})
			} else {
				entry.DownloadURL = &url
			}
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].UploadedAt.Equal(entries[j].UploadedAt) {
			return entries[i].UploadedAt.After(entries[j].UploadedAt)
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func latestFeedbackByResume(list []feedback.Feedback) map[string]*feedback.Feedback {
	latest := make(map[string]*feedback.Feedback, len(list))
	for i := range list {
		fb := &list[i]
		current, ok := latest[fb.ResumeID]
		if !ok || fb.CreatedAt.After(current.CreatedAt) {
			latest[fb.ResumeID] = fb
		}
	}
	return latest
}
