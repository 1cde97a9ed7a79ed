// Package sqlite implements the repository interfaces using SQLite as the storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite, so the binary needs
// no C toolchain and tests can run against a real database file in t.TempDir().
//
// CONNECTION SETTINGS:
// database/sql keeps a pool of connections, and SQLite PRAGMAs are
// per-connection. Running "PRAGMA foreign_keys=ON" once after Open would only
// configure whichever connection happened to run it. The pragmas are
// therefore passed in the DSN (_pragma=...), which the driver applies to
// every new connection:
//   - foreign_keys(1)   referential integrity for links and purchases
//   - journal_mode(WAL) readers do not block the writer
//   - busy_timeout(N)   wait for the write lock instead of failing with SQLITE_BUSY
//
// _txlock=immediate makes BEGIN take the write lock up front, so two
// concurrent transactions never deadlock upgrading a read lock.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BusyTimeout     time.Duration
}

// DefaultOptions returns the pool settings used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxOpenConns:    10,
		MaxIdleConns:    10,
		ConnMaxLifetime: 30 * time.Minute,
		BusyTimeout:     5 * time.Second,
	}
}

// DB wraps a sql.DB connection pool. Each resource gets its own store
// (Categories, Games, ...) that implements the matching repository interface.
type DB struct {
	conn *sql.DB
	path string
}

// queryer is satisfied by both *sql.DB and *sql.Tx, so read helpers can run
// inside or outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New applies pending schema migrations to the database file at dbPath,
// then opens a connection pool to it.
func New(ctx context.Context, dbPath string, opts Options) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite: creating database directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	conn, err := sql.Open("sqlite", dsn(dbPath, opts))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	conn.SetMaxOpenConns(opts.MaxOpenConns)
	conn.SetMaxIdleConns(opts.MaxIdleConns)
	conn.SetConnMaxLifetime(opts.ConnMaxLifetime)

	// sql.Open does not connect; Ping surfaces a bad path or permissions now
	// rather than on the first request.
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	return &DB{conn: conn, path: dbPath}, nil
}

func dsn(dbPath string, opts Options) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	q.Set("_txlock", "immediate")
	return dbPath + "?" + q.Encode()
}

// Close closes the connection pool. In-flight queries finish first.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database answers.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) Categories() *CategoryDB { return &CategoryDB{db: db} }
func (db *DB) Developers() *DeveloperDB { return &DeveloperDB{db: db} }
func (db *DB) Games() *GameDB { return &GameDB{db: db} }
func (db *DB) Users() *UserDB { return &UserDB{db: db} }
func (db *DB) Purchases() *PurchaseDB { return &PurchaseDB{db: db} }

// withTx runs fn inside a transaction. The transaction commits only if fn
// returns nil; any error (or panic) rolls back every statement fn executed.
func (db *DB) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op returning sql.ErrTxDone.
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing transaction: %w", err)
	}
	return nil
}

// checkAffected turns "0 rows affected" into a NotFound error.
func checkAffected(result sql.Result, notFound error) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// SQL exposes the underlying pool for instrumentation (pool stats). Queries
// go through the stores, never through this handle.
func (db *DB) SQL() *sql.DB {
	return db.conn
}
