package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const (
	stateDBFileName = "state.sqlite"
	schemaVersion   = "1"

	// DefaultOrigin scopes values when the caller does not name an origin.
	DefaultOrigin = "local"
)

func (s Store) sqlitePath() string {
	return filepath.Join(s.Dir, stateDBFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL lets a running TUI and one-shot commands share the file;
	// busy_timeout avoids spurious "database is locked" errors between them.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS kv (
			origin TEXT NOT NULL,
			k TEXT NOT NULL,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (origin, k)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate state db: %w", err)
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(k, v) VALUES('schema_version', ?)`, schemaVersion)
	return err
}

// KV is the durable key/value store of one origin inside a session's state db.
type KV struct {
	ctx    context.Context
	db     *sql.DB
	origin string
}

// OpenKV opens the session state db and scopes it to origin.
// The context bounds every later operation on the returned KV.
func (s Store) OpenKV(ctx context.Context, origin string) (*KV, error) {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		origin = DefaultOrigin
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, fmt.Errorf("open state db %s: %w", s.sqlitePath(), err)
	}
	return &KV{ctx: ctx, db: db, origin: origin}, nil
}

func (kv *KV) Origin() string { return kv.origin }

func (kv *KV) Get(key string) (string, bool, error) {
	var v string
	err := kv.db.QueryRowContext(kv.ctx, `SELECT v FROM kv WHERE origin = ? AND k = ?`, kv.origin, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kv *KV) Set(key, value string) error {
	_, err := kv.db.ExecContext(kv.ctx,
		`INSERT OR REPLACE INTO kv(origin, k, v, updated_at_unixms) VALUES(?, ?, ?, ?)`,
		kv.origin, key, value, time.Now().UTC().UnixMilli())
	return err
}

func (kv *KV) Delete(key string) error {
	_, err := kv.db.ExecContext(kv.ctx, `DELETE FROM kv WHERE origin = ? AND k = ?`, kv.origin, key)
	return err
}

func (kv *KV) Close() error {
	return kv.db.Close()
}
