package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	sqliteMemory = ":memory:"

	// applied by the driver to every new connection in the pool
	sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
)

// SQLiteDSN builds the driver DSN for path. File databases get the busy
// timeout and WAL journal on every pooled connection; ":memory:" is left as is.
func SQLiteDSN(path string) string {
	if path == sqliteMemory {
		return path
	}
	return "file:" + path + "?" + sqlitePragmas
}

// OpenSQLite opens the embedded store at path. ":memory:" gives a private
// in-process database; it is pinned to one connection because every new
// connection to ":memory:" would see an empty database.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", SQLiteDSN(path))
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	if path == sqliteMemory {
		conn.SetMaxOpenConns(1)
	}

	if err = conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "ping sqlite")
	}

	return conn, nil
}
