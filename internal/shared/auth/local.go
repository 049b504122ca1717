package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resume-coach/internal/shared/storage/kv"
)

// LocalProvider is a self-contained identity provider backed by the KV
// store and HS256 tokens. It stands in for the hosted auth service.
type LocalProvider struct {
	KV     kv.Store
	Signer *Signer
}

// NewLocalProvider constructs a LocalProvider.
func NewLocalProvider(store kv.Store, signer *Signer) *LocalProvider {
	return &LocalProvider{KV: store, Signer: signer}
}

type credentialRecord struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func credentialKey(email string) string {
	return "cred:" + strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a new account keyed by email.
func (p *LocalProvider) CreateUser(ctx context.Context, email, password, name string) (Identity, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Identity{}, ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}

	rec := credentialRecord{
		UserID:       uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return Identity{}, err
	}

	// Version zero means "create only": a concurrent signup for the same
	// email loses with ErrEmailTaken instead of clobbering the account.
	err = p.KV.PutIfVersion(ctx, credentialKey(email), raw, 0)
	if errors.Is(err, kv.ErrVersionConflict) {
		return Identity{}, ErrEmailTaken
	}
	if err != nil {
		return Identity{}, fmt.Errorf("store credential: %w", err)
	}

	return Identity{ID: rec.UserID, Email: rec.Email, Name: rec.Name}, nil
}

// Authenticate checks credentials and returns a signed bearer token.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) (Identity, string, error) {
	entry, err := p.KV.Get(ctx, credentialKey(email))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return Identity{}, "", ErrInvalidCredentials
	}
	if err != nil {
		return Identity{}, "", fmt.Errorf("load credential: %w", err)
	}

	var rec credentialRecord
	if err := json.Unmarshal(entry.Value, &rec); err != nil {
		return Identity{}, "", fmt.Errorf("decode credential: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return Identity{}, "", ErrInvalidCredentials
	}

	token, err := p.Signer.Sign(Claims{Sub: rec.UserID, Email: rec.Email, Name: rec.Name})
	if err != nil {
		return Identity{}, "", fmt.Errorf("sign token: %w", err)
	}
	return Identity{ID: rec.UserID, Email: rec.Email, Name: rec.Name}, token, nil
}

// Validate resolves a bearer token to an identity.
func (p *LocalProvider) Validate(ctx context.Context, token string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	claims, err := p.Signer.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	return Identity{ID: claims.Sub, Email: claims.Email, Name: claims.Name}, nil
}

var _ Provider = (*LocalProvider)(nil)
