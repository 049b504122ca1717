package resumes

import "time"

// PastedFileName is the synthetic file name given to resumes submitted as
// raw text rather than an uploaded document.
const PastedFileName = "pasted-resume.txt"

// Resume is the persisted metadata for one submitted document or text blob.
// Records are immutable after creation.
type Resume struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	FileName string `json:"fileName"`
	// StoragePath is set only when the binary was stored in the blob store.
	StoragePath string    `json:"storagePath,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
