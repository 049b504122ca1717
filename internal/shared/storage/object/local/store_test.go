package local

import (
	"bytes"
	"context"
	"io"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080", []byte("secret"))
	ctx := context.Background()

	payload := []byte("%PDF-1.4 fake")
	n, err := store.SaveWithKey(ctx, "u1/r1/resume.pdf", "application/pdf", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != int64(len(payload)) {
		t.Fatalf("expected %d bytes written, got %d", len(payload), n)
	}

	r, err := store.Open(ctx, "u1/r1/resume.pdf")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestSaveRejectsTraversal(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080", []byte("secret"))

	_, err := store.SaveWithKey(context.Background(), "../escape.pdf", "application/pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected error for traversal key")
	}
}

func TestSignedURLVerifies(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080", []byte("secret"))

	signed, err := store.SignedURL(context.Background(), "u1/r1/my resume.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}

	u, err := url.Parse(signed)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if !strings.HasPrefix(u.Path, "/api/v1/files/") {
		t.Fatalf("unexpected path %q", u.Path)
	}

	key := strings.TrimPrefix(u.Path, "/api/v1/files/")
	unescaped := make([]string, 0, 4)
	for _, seg := range strings.Split(key, "/") {
		dec, err := url.PathUnescape(seg)
		if err != nil {
			t.Fatalf("unescape %q: %v", seg, err)
		}
		unescaped = append(unescaped, dec)
	}
	expires, err := strconv.ParseInt(u.Query().Get("expires"), 10, 64)
	if err != nil {
		t.Fatalf("parse expires: %v", err)
	}

	if !store.VerifySignature(strings.Join(unescaped, "/"), expires, u.Query().Get("sig")) {
		t.Fatal("expected signature to verify")
	}
}

func TestVerifySignatureRejects(t *testing.T) {
	store := New(t.TempDir(), "http://localhost:8080", []byte("secret"))
	future := time.Now().UTC().Add(2 * time.Hour).Unix()
	past := time.Now().UTC().Add(-time.Minute).Unix()

	signed, err := store.SignedURL(context.Background(), "u1/r1/resume.pdf", time.Hour)
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	u, _ := url.Parse(signed)
	sig := u.Query().Get("sig")
	expires, _ := strconv.ParseInt(u.Query().Get("expires"), 10, 64)

	if store.VerifySignature("u1/r1/other.pdf", expires, sig) {
		t.Fatal("signature must not verify for a different key")
	}
	if store.VerifySignature("u1/r1/resume.pdf", future, sig) {
		t.Fatal("signature must not verify for a different expiry")
	}
	if store.VerifySignature("u1/r1/resume.pdf", past, sig) {
		t.Fatal("expired signature must not verify")
	}

	other := New(t.TempDir(), "http://localhost:8080", []byte("other-secret"))
	if other.VerifySignature("u1/r1/resume.pdf", expires, sig) {
		t.Fatal("signature must not verify under a different secret")
	}
}
