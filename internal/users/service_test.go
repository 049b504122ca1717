package users

import (
	"context"
	"errors"
	"testing"

	"resume-coach/internal/shared/auth"
	"resume-coach/internal/shared/storage/kv/badgerstore"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store, err := badgerstore.OpenInMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	signer, err := auth.NewSigner([]byte("test-secret"))
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	return NewService(auth.NewLocalProvider(store, signer), store)
}

func TestSignupPersistsProfile(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "ada@example.com", "password123", "Ada")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.ID == "" || user.CreatedAt.IsZero() {
		t.Fatalf("incomplete user %+v", user)
	}

	loaded, err := svc.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Email != "ada@example.com" || loaded.Name != "Ada" {
		t.Fatalf("unexpected profile %+v", loaded)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "a@b.c", "password123", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, err := svc.Signup(ctx, "a@b.c", "password456", "")
	if !errors.Is(err, auth.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginReturnsProfileAndToken(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.Signup(ctx, "a@b.c", "password123", "Ada")
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	user, token, err := svc.Login(ctx, "a@b.c", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if user.ID != created.ID || user.Name != "Ada" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestLoginBadPassword(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, "a@b.c", "password123", ""); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	_, _, err := svc.Login(ctx, "a@b.c", "nope")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetByIDMissing(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetByID(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
