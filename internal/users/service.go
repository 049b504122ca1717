package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"resume-coach/internal/shared/auth"
	"resume-coach/internal/shared/storage/kv"
)

// ErrNotFound is returned when a user profile does not exist.
var ErrNotFound = errors.New("user not found")

func profileKey(userID string) string {
	return "user:" + userID
}

// Service registers accounts with the identity provider and keeps the
// profile record alongside the rest of the user's data.
type Service struct {
	Provider auth.Provider
	KV       kv.Store
}

// NewService constructs a Service.
func NewService(provider auth.Provider, store kv.Store) *Service {
	return &Service{Provider: provider, KV: store}
}

// Signup creates the account with the provider and persists the profile.
func (s *Service) Signup(ctx context.Context, email, password, name string) (User, error) {
	identity, err := s.Provider.CreateUser(ctx, email, password, name)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:        identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		CreatedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return User{}, err
	}
	if err := s.KV.Put(ctx, profileKey(user.ID), raw); err != nil {
		return User{}, fmt.Errorf("store profile: %w", err)
	}
	return user, nil
}

// Login authenticates credentials and returns the profile plus a token.
func (s *Service) Login(ctx context.Context, email, password string) (User, string, error) {
	identity, token, err := s.Provider.Authenticate(ctx, email, password)
	if err != nil {
		return User{}, "", err
	}
	user, err := s.GetByID(ctx, identity.ID)
	if errors.Is(err, ErrNotFound) {
		// Account exists with the provider but the profile write was
		// lost; rebuild a minimal one from the identity.
		user = User{ID: identity.ID, Email: identity.Email, Name: identity.Name}
		err = nil
	}
	if err != nil {
		return User{}, "", err
	}
	return user, token, nil
}

// GetByID loads one user profile.
func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	entry, err := s.KV.Get(ctx, profileKey(userID))
	if errors.Is(err, kv.ErrKeyNotFound) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	var user User
	if err := json.Unmarshal(entry.Value, &user); err != nil {
		return User{}, fmt.Errorf("decode profile %s: %w", userID, err)
	}
	return user, nil
}
