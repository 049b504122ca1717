package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated principal behind a bearer token.
type Identity struct {
	ID    string
	Email string
	Name  string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Provider abstracts the identity collaborator: it issues accounts and
// validates bearer tokens. Handlers never see its internals.
type Provider interface {
	// CreateUser registers a new account and returns its identity.
	CreateUser(ctx context.Context, email, password, name string) (Identity, error)

	// Authenticate checks credentials and returns the identity plus a
	// bearer token.
	Authenticate(ctx context.Context, email, password string) (Identity, string, error)

	// Validate resolves a bearer token to an identity or ErrInvalidToken.
	Validate(ctx context.Context, token string) (Identity, error)
}
