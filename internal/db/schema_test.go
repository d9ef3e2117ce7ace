package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresSchema(t *testing.T) {
	relaxed := PostgresSchema(false)
	require.Len(t, relaxed, 2)
	assert.Contains(t, relaxed[0], "CREATE TABLE IF NOT EXISTS crewmates")
	assert.Contains(t, relaxed[0], "DEFAULT gen_random_uuid()")
	assert.NotContains(t, relaxed[0], "CHECK")
	assert.NotContains(t, relaxed[0], "%!")

	strict := PostgresSchema(true)
	assert.Contains(t, strict[0], "CHECK (btrim(name) <> '')")
	assert.Contains(t, strict[0], "CHECK (speed BETWEEN 1 AND 4)")
}

func TestMigrateSQLite(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		strict       bool
		insertName   string
		insertSpeed  int
		expectReject bool
	}{
		{name: "relaxed accepts blank name", strict: false, insertName: "  ", insertSpeed: 9},
		{name: "strict accepts valid row", strict: true, insertName: "Ada", insertSpeed: 3},
		{name: "strict rejects blank name", strict: true, insertName: "  ", insertSpeed: 3, expectReject: true},
		{name: "strict rejects speed out of range", strict: true, insertName: "Ada", insertSpeed: 5, expectReject: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, err := OpenSQLite(ctx, ":memory:")
			require.NoError(t, err)
			defer conn.Close()

			require.NoError(t, MigrateSQLite(ctx, conn, tt.strict))
			// idempotent
			require.NoError(t, MigrateSQLite(ctx, conn, tt.strict))

			_, err = conn.ExecContext(ctx,
				`INSERT INTO crewmates (id, name, speed, color, special_ability, created_at) VALUES (?, ?, ?, '', '', ?)`,
				"id-1", tt.insertName, tt.insertSpeed, "2026-01-01T00:00:00.000000000Z")
			if tt.expectReject {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSQLTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, MigrateSQLite(ctx, conn, false))

	tx := NewSQLTransactor(conn)
	boom := assert.AnError

	err = tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		e := GetSQLExecutorFromContext(txCtx, conn)
		if _, err := e.ExecContext(txCtx,
			`INSERT INTO crewmates (id, name, speed, created_at) VALUES ('id-1', 'Ada', 1, '2026-01-01T00:00:00.000000000Z')`); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM crewmates`).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, ":memory:", SQLiteDSN(":memory:"))
	assert.Equal(t, "file:/tmp/c.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", SQLiteDSN("/tmp/c.db"))
}

func TestOpenSQLite_EveryConnectionWaitsOnLocks(t *testing.T) {
	ctx := context.Background()
	conn, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "crewmates.db"))
	require.NoError(t, err)
	defer conn.Close()

	conns := make([]*sql.Conn, 3)
	for i := range conns {
		conns[i], err = conn.Conn(ctx)
		require.NoError(t, err)
		defer conns[i].Close()
	}

	for _, c := range conns {
		var timeout int
		require.NoError(t, c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, 5000, timeout)
	}
}
