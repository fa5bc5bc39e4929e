// Package storage provides the relational store for classified questions.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB is a run-scoped database handle. Acquire it once per run with Open and
// release it with Close on every exit path.
type DB struct {
	*sql.DB
	driver string
}

// Options holds connection settings.
type Options struct {
	Driver          string
	DSN             string // postgres URL, or sqlite file path
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Open connects and pings the database.
func Open(ctx context.Context, opts Options) (*DB, error) {
	var (
		sqlDriver string
		dsn       = opts.DSN
	)

	switch opts.Driver {
	case DriverPostgres:
		sqlDriver = "postgres"
	case DriverSQLite:
		sqlDriver = "sqlite3"
		dsn = sqliteDSN(opts.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", opts.Driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		// one writer; also keeps :memory: databases on a single connection
		db.SetMaxOpenConns(1)
	} else if opts.MaxOpenConns > 0 {
		db.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}

	return &DB{DB: db, driver: opts.Driver}, nil
}

// Wrap adopts an existing connection pool. Used by tests.
func Wrap(db *sql.DB, driver string) *DB {
	return &DB{DB: db, driver: driver}
}

// Driver returns the configured driver name.
func (d *DB) Driver() string {
	return d.driver
}

func sqliteDSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on&_journal_mode=WAL"
}

// WithTx runs fn inside a transaction, committing on success and rolling back on error.
func (d *DB) WithTx(ctx context.Context, fn func(repo *QuestionRepository) error) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(NewQuestionRepository(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
