// Package pgstore implements the kv.Store contract on a single Postgres
// table, matching the hosted deployment where records live in a managed
// database instead of the embedded store.
package pgstore

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver
	"github.com/pressly/goose/v3"

	"resume-coach/internal/shared/storage/kv"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const pingTimeout = 5 * time.Second

// Store is a Postgres-backed kv.Store.
type Store struct {
	db *sql.DB
}

// Open connects to databaseURL, verifies connectivity, and applies the
// embedded migrations.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("database url is required")
	}
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection without running migrations.
// Used in tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Put upserts the value at key, bumping the version on overwrite.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_store (key, value, version, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, version = kv_store.version + 1, updated_at = now()`,
		key, value)
	if err != nil {
		return fmt.Errorf("pg put %s: %w", key, err)
	}
	return nil
}

// Get returns the entry at key or kv.ErrKeyNotFound.
func (s *Store) Get(ctx context.Context, key string) (kv.Entry, error) {
	entry := kv.Entry{Key: key}
	err := s.db.QueryRowContext(ctx,
		`SELECT value, version FROM kv_store WHERE key = $1`, key).
		Scan(&entry.Value, &entry.Version)
	if errors.Is(err, sql.ErrNoRows) {
		return kv.Entry{}, kv.ErrKeyNotFound
	}
	if err != nil {
		return kv.Entry{}, fmt.Errorf("pg get %s: %w", key, err)
	}
	return entry, nil
}

// PutIfVersion writes value only if the stored version still equals
// expectedVersion. Zero means the key must not exist yet.
func (s *Store) PutIfVersion(ctx context.Context, key string, value []byte, expectedVersion uint64) error {
	var (
		res sql.Result
		err error
	)
	if expectedVersion == 0 {
		res, err = s.db.ExecContext(ctx, `
			INSERT INTO kv_store (key, value, version, updated_at)
			VALUES ($1, $2, 1, now())
			ON CONFLICT (key) DO NOTHING`,
			key, value)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE kv_store
			SET value = $2, version = version + 1, updated_at = now()
			WHERE key = $1 AND version = $3`,
			key, value, expectedVersion)
	}
	if err != nil {
		return fmt.Errorf("pg put-if-version %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pg put-if-version %s: rows affected: %w", key, err)
	}
	if n == 0 {
		return kv.ErrVersionConflict
	}
	return nil
}

// ScanPrefix returns every entry whose key starts with prefix.
func (s *Store) ScanPrefix(ctx context.Context, prefix string) ([]kv.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value, version FROM kv_store WHERE key LIKE $1 ESCAPE '\'`,
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("pg scan %s: %w", prefix, err)
	}
	defer rows.Close()

	var entries []kv.Entry
	for rows.Next() {
		var e kv.Entry
		if err := rows.Scan(&e.Key, &e.Value, &e.Version); err != nil {
			return nil, fmt.Errorf("pg scan %s: %w", prefix, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pg scan %s: %w", prefix, err)
	}
	return entries, nil
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// escapeLike escapes LIKE metacharacters so a prefix is matched literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

var _ kv.Store = (*Store)(nil)
