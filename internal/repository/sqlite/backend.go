// Package sqlite persists entity records and the ID counter in a single SQLite
// file using the pure Go driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/mamadbah2/abattoir/internal/repository/store"
)

const defaultPath = "data/abattoir.db"

var _ store.Backend = (*Backend)(nil)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS records (
		partition TEXT NOT NULL,
		id INTEGER NOT NULL,
		payload BLOB NOT NULL,
		PRIMARY KEY (partition, id)
	) WITHOUT ROWID`,
	`CREATE TABLE IF NOT EXISTS counters (
		name TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
}

// Backend implements store.Backend on a SQLite database file.
type Backend struct {
	db   *sql.DB
	path string
}

// Open creates or opens the database at path and applies the schema. It is
// safe to call repeatedly on the same file.
func Open(path string) (*Backend, error) {
	if path == "" {
		path = defaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	return &Backend{db: db, path: path}, nil
}

// Path returns the database file location.
func (b *Backend) Path() string { return b.path }

// Put implements store.Backend.
func (b *Backend) Put(ctx context.Context, partition string, id uint64, data []byte) (prev []byte, retErr error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowContext(ctx, `SELECT payload FROM records WHERE partition = ? AND id = ?`, partition, int64(id)).Scan(&prev)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("select previous: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO records(partition, id, payload) VALUES(?, ?, ?)
		 ON CONFLICT(partition, id) DO UPDATE SET payload = excluded.payload`,
		partition, int64(id), data); err != nil {
		return nil, fmt.Errorf("upsert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return prev, nil
}

// Get implements store.Backend.
func (b *Backend) Get(ctx context.Context, partition string, id uint64) ([]byte, bool, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM records WHERE partition = ? AND id = ?`, partition, int64(id)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Scan implements store.Backend. Rows stream from the database while the
// caller iterates.
func (b *Backend) Scan(ctx context.Context, partition string) iter.Seq2[store.RawRow, error] {
	return func(yield func(store.RawRow, error) bool) {
		rows, err := b.db.QueryContext(ctx, `SELECT id, payload FROM records WHERE partition = ? ORDER BY id`, partition)
		if err != nil {
			yield(store.RawRow{}, fmt.Errorf("select rows: %w", err))
			return
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var (
				id   int64
				data []byte
			)
			if err := rows.Scan(&id, &data); err != nil {
				yield(store.RawRow{}, fmt.Errorf("scan row: %w", err))
				return
			}
			if !yield(store.RawRow{ID: uint64(id), Data: data}, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(store.RawRow{}, err)
		}
	}
}

// Count implements store.Backend.
func (b *Backend) Count(ctx context.Context, partition string) (int, error) {
	var n int
	if err := b.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records WHERE partition = ?`, partition).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Increment implements store.Backend.
func (b *Backend) Increment(ctx context.Context, counter string) (current uint64, retErr error) {
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `INSERT INTO counters(name, value) VALUES(?, 0) ON CONFLICT(name) DO NOTHING`, counter); err != nil {
		return 0, fmt.Errorf("seed counter %s: %w", counter, err)
	}

	var value int64
	if err := tx.QueryRowContext(ctx, `SELECT value FROM counters WHERE name = ?`, counter).Scan(&value); err != nil {
		return 0, fmt.Errorf("read counter %s: %w", counter, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE counters SET value = ? WHERE name = ?`, value+1, counter); err != nil {
		return 0, fmt.Errorf("advance counter %s: %w", counter, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return uint64(value), nil
}

// Close implements store.Backend.
func (b *Backend) Close(context.Context) error {
	return b.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (b *Backend) DB() *sql.DB { return b.db }
