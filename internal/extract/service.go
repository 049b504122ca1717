package extract

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"resume-coach/internal/resumes"
	"resume-coach/internal/shared/metrics"
	"resume-coach/internal/shared/storage/object"
	"resume-coach/internal/shared/telemetry"
	"resume-coach/internal/shared/util"
)

const defaultFileName = "resume.pdf"

// Service turns an uploaded PDF into usable resume text: extract, upload
// the binary, persist the resume record.
type Service struct {
	Store   object.ObjectStore
	Resumes *resumes.Repo
}

// Result is the outcome of one extraction.
type Result struct {
	Text   string
	Resume resumes.Resume
}

// ExtractAndStore extracts text from the PDF, uploads the binary to the
// blob store, and persists a resume record under a fresh identifier.
// Upload failure is non-fatal: the text is still usable, so the record is
// written without a storage path.
func (s *Service) ExtractAndStore(ctx context.Context, userID, fileName string, data []byte) (Result, error) {
	safeName, err := util.SanitizeFileName(fileName)
	if err != nil || safeName == "" {
		safeName = defaultFileName
	}

	metrics.IncExtraction()
	text, err := Text(data)
	if err != nil {
		metrics.IncExtractionFailed()
		return Result{}, err
	}

	resumeID := uuid.NewString()
	storagePath := fmt.Sprintf("%s/%s/%s", userID, resumeID, safeName)

	if _, err := s.Store.SaveWithKey(ctx, storagePath, "application/pdf", bytes.NewReader(data)); err != nil {
		telemetry.Error("resume.upload_failed", map[string]any{
			"user_id":   userID,
			"resume_id": resumeID,
			"error":     err.Error(),
		})
		storagePath = ""
	}

	resume := resumes.Resume{
		ID:          resumeID,
		UserID:      userID,
		FileName:    safeName,
		StoragePath: storagePath,
		UploadedAt:  time.Now().UTC(),
	}
	if _, err := s.Resumes.EnsureCreate(ctx, resume); err != nil {
		return Result{}, fmt.Errorf("persist resume %s: %w", resumeID, err)
	}

	return Result{Text: text, Resume: resume}, nil
}
