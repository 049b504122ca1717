package resumes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-coach/internal/shared/storage/kv"
)

// ErrNotFound is returned when a resume record does not exist.
var ErrNotFound = errors.New("resume not found")

// Key builds the store key for a resume record.
func Key(userID, resumeID string) string {
	return "resume:" + userID + ":" + resumeID
}

// ScanPrefix builds the per-user prefix covering all resume records.
func ScanPrefix(userID string) string {
	return "resume:" + userID + ":"
}

// Repo persists resume records in the key-value store.
type Repo struct {
	KV kv.Store
}

// EnsureCreate writes the record only if none exists for its ID yet, and
// reports whether a write happened. Existing records are never overwritten;
// repeated submissions with the same ID are no-ops.
func (r *Repo) EnsureCreate(ctx context.Context, resume Resume) (bool, error) {
	key := Key(resume.UserID, resume.ID)
	if _, err := r.KV.Get(ctx, key); err == nil {
		return false, nil
	} else if !errors.Is(err, kv.ErrKeyNotFound) {
		return false, fmt.Errorf("check resume %s: %w", key, err)
	}

	raw, err := json.Marshal(resume)
	if err != nil {
		return false, err
	}
	err = r.KV.PutIfVersion(ctx, key, raw, 0)
	if errors.Is(err, kv.ErrVersionConflict) {
		// Lost a create race; the first writer wins.
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create resume %s: %w", key, err)
	}
	return true, nil
}

// Get loads one resume record.
func (r *Repo) Get(ctx context.Context, userID, resumeID string) (Resume, error) {
	entry, err := r.KV.Get(ctx, Key(userID, resumeID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return Resume{}, ErrNotFound
	}
	if err != nil {
		return Resume{}, err
	}
	var resume Resume
	if err := json.Unmarshal(entry.Value, &resume); err != nil {
		return Resume{}, fmt.Errorf("decode resume %s: %w", resumeID, err)
	}
	return resume, nil
}

// ListByUser returns every resume record for the user, in scan order.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	entries, err := r.KV.ScanPrefix(ctx, ScanPrefix(userID))
	if err != nil {
		return nil, err
	}
	out := make([]Resume, 0, len(entries))
	for _, e := range entries {
		var resume Resume
		if err := json.Unmarshal(e.Value, &resume); err != nil {
			return nil, fmt.Errorf("decode resume %s: %w", e.Key, err)
		}
		out = append(out, resume)
	}
	return out, nil
}
