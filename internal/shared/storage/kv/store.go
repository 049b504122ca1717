package kv

import (
	"context"
	"errors"
)

// Entry is one stored key-value pair together with its write version.
// Versions are opaque and strictly increase on every overwrite of a key.
type Entry struct {
	Key     string
	Value   []byte
	Version uint64
}

var (
	ErrKeyNotFound     = errors.New("key not found")
	ErrVersionConflict = errors.New("version conflict")
)

// Store is a namespaced key-value store. Keys follow the
// <entityType>:<userId>:<entityId> convention so per-user records can be
// enumerated with ScanPrefix.
type Store interface {
	// Put replaces the value at key unconditionally (last write wins).
	Put(ctx context.Context, key string, value []byte) error

	// Get returns the entry at key or ErrKeyNotFound.
	Get(ctx context.Context, key string) (Entry, error)

	// PutIfVersion writes value only if the stored version still equals
	// expectedVersion, otherwise it returns ErrVersionConflict. An
	// expectedVersion of zero requires the key to not exist yet.
	PutIfVersion(ctx context.Context, key string, value []byte, expectedVersion uint64) error

	// ScanPrefix returns every entry whose key starts with prefix.
	// Order is unspecified.
	ScanPrefix(ctx context.Context, prefix string) ([]Entry, error)

	Close() error
}
