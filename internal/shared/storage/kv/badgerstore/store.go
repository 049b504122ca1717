// Package badgerstore implements the kv.Store contract on BadgerDB, the
// embedded store used when no external database is configured.
package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"resume-coach/internal/shared/storage/kv"
)

// Store is a BadgerDB-backed kv.Store.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) a persistent store rooted at dir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("badger store dir is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create badger dir %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store with no disk persistence. Used in tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory badger: %w", err)
	}
	return &Store{db: db}, nil
}

// Put replaces the value at key unconditionally.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
	if err != nil {
		return fmt.Errorf("badger put %s: %w", key, err)
	}
	return nil
}

// Get returns the entry at key or kv.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (kv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return kv.Entry{}, err
	}
	var entry kv.Entry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		entry = kv.Entry{Key: key, Value: val, Version: item.Version()}
		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return kv.Entry{}, kv.ErrKeyNotFound
	}
	if err != nil {
		return kv.Entry{}, fmt.Errorf("badger get %s: %w", key, err)
	}
	return entry, nil
}

// PutIfVersion writes value only if the key's stored version still equals
// expectedVersion. Badger's transactions are serializable, so a concurrent
// writer surfaces either through the version check or as ErrConflict at
// commit; both map to kv.ErrVersionConflict.
func (s *Store) PutIfVersion(ctx context.Context, key string, value []byte, expectedVersion uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := s.db.Update(func(txn *badger.Txn) error {
		var current uint64
		item, err := txn.Get([]byte(key))
		switch {
		case errors.Is(err, badger.ErrKeyNotFound):
			current = 0
		case err != nil:
			return err
		default:
			current = item.Version()
		}
		if current != expectedVersion {
			return kv.ErrVersionConflict
		}
		return txn.Set([]byte(key), value)
	})
	if errors.Is(err, badger.ErrConflict) {
		return kv.ErrVersionConflict
	}
	if errors.Is(err, kv.ErrVersionConflict) {
		return kv.ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("badger put-if-version %s: %w", key, err)
	}
	return nil
}

// ScanPrefix returns every entry whose key starts with prefix.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var entries []kv.Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entries = append(entries, kv.Entry{
				Key:     string(item.KeyCopy(nil)),
				Value:   val,
				Version: item.Version(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger scan %s: %w", prefix, err)
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ kv.Store = (*Store)(nil)
