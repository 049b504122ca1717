package local

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"resume-coach/internal/shared/storage/object"
)

// Store implements ObjectStore using the local filesystem. Signed URLs
// point at the API's own download route and carry an HMAC over the key
// and expiry, standing in for the blob provider's signing service.
type Store struct {
	baseDir string
	baseURL string
	secret  []byte
}

// New creates a local object store rooted at baseDir. baseURL is the
// externally reachable address of this API; secret signs download URLs.
func New(baseDir, baseURL string, secret []byte) *Store {
	return &Store{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
	}
}

// SaveWithKey writes the reader to disk at a specific storage key.
func (s *Store) SaveWithKey(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return 0, err
	}

	fullPath := filepath.Join(s.baseDir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}
	_ = contentType
	return written, nil
}

// Open opens a stored object for reading.
func (s *Store) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return nil, err
	}
	return os.Open(filepath.Join(s.baseDir, filepath.FromSlash(clean)))
}

// SignedURL returns a download URL for the key, valid for ttl.
func (s *Store) SignedURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean, err := cleanKey(storageKey)
	if err != nil {
		return "", err
	}

	expires := time.Now().UTC().Add(ttl).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", s.sign(clean, expires))

	escaped := make([]string, 0, 4)
	for _, seg := range strings.Split(clean, "/") {
		escaped = append(escaped, url.PathEscape(seg))
	}
	return s.baseURL + "/api/v1/files/" + strings.Join(escaped, "/") + "?" + q.Encode(), nil
}

// VerifySignature reports whether sig authorizes storageKey until expires.
func (s *Store) VerifySignature(storageKey string, expires int64, sig string) bool {
	clean, err := cleanKey(storageKey)
	if err != nil {
		return false
	}
	if time.Now().UTC().Unix() > expires {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(s.sign(clean, expires)))
}

func (s *Store) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s\n%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}

func cleanKey(storageKey string) (string, error) {
	clean := strings.TrimLeft(filepath.ToSlash(storageKey), "/")
	if clean == "" || strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid storage key")
	}
	return clean, nil
}

var _ object.ObjectStore = (*Store)(nil)
