package feedback

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"resume-coach/internal/shared/storage/kv"
)

// Key builds the store key for a feedback record.
func Key(userID, feedbackID string) string {
	return "feedback:" + userID + ":" + feedbackID
}

// ScanPrefix builds the per-user prefix covering all feedback records.
func ScanPrefix(userID string) string {
	return "feedback:" + userID + ":"
}

// Repo persists feedback records in the key-value store.
type Repo struct {
	KV kv.Store
}

// Create writes a new feedback record.
func (r *Repo) Create(ctx context.Context, fb Feedback) error {
	raw, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	if err := r.KV.Put(ctx, Key(fb.UserID, fb.ID), raw); err != nil {
		return fmt.Errorf("create feedback %s: %w", fb.ID, err)
	}
	return nil
}

// Get loads one feedback record together with its store version, for use
// with PutVersion.
func (r *Repo) Get(ctx context.Context, userID, feedbackID string) (Feedback, uint64, error) {
	entry, err := r.KV.Get(ctx, Key(userID, feedbackID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return Feedback{}, 0, ErrNotFound
	}
	if err != nil {
		return Feedback{}, 0, err
	}
	var fb Feedback
	if err := json.Unmarshal(entry.Value, &fb); err != nil {
		return Feedback{}, 0, fmt.Errorf("decode feedback %s: %w", feedbackID, err)
	}
	return fb, entry.Version, nil
}

// PutVersion writes the record back only if it is unchanged since the Get
// that produced version; otherwise kv.ErrVersionConflict surfaces.
func (r *Repo) PutVersion(ctx context.Context, fb Feedback, version uint64) error {
	raw, err := json.Marshal(fb)
	if err != nil {
		return err
	}
	return r.KV.PutIfVersion(ctx, Key(fb.UserID, fb.ID), raw, version)
}

// ListByUser returns every feedback record for the user, in scan order.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Feedback, error) {
	entries, err := r.KV.ScanPrefix(ctx, ScanPrefix(userID))
	if err != nil {
		return nil, err
	}
	out := make([]Feedback, 0, len(entries))
	for _, e := range entries {
		var fb Feedback
		if err := json.Unmarshal(e.Value, &fb); err != nil {
			return nil, fmt.Errorf("decode feedback %s: %w", e.Key, err)
		}
		out = append(out, fb)
	}
	return out, nil
}
