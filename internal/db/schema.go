package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

const (
	createCrewmatesPostgres = `CREATE TABLE IF NOT EXISTS crewmates (
    id uuid PRIMARY KEY DEFAULT gen_random_uuid(),
    name text NOT NULL,
    speed integer NOT NULL,
    color text NOT NULL DEFAULT '',
    special_ability text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT now()%s
);`

	strictCrewmatesPostgres = `,
    CONSTRAINT crewmates_name_not_blank CHECK (btrim(name) <> ''),
    CONSTRAINT crewmates_speed_range CHECK (speed BETWEEN 1 AND 4)`

	indexCrewmatesPostgres = `CREATE INDEX IF NOT EXISTS crewmates_created_at_idx ON crewmates (created_at DESC);`

	createCrewmatesSQLite = `CREATE TABLE IF NOT EXISTS crewmates (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    speed INTEGER NOT NULL,
    color TEXT NOT NULL DEFAULT '',
    special_ability TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL%s
);`

	strictCrewmatesSQLite = `,
    CHECK (trim(name) <> ''),
    CHECK (speed BETWEEN 1 AND 4)`

	indexCrewmatesSQLite = `CREATE INDEX IF NOT EXISTS crewmates_created_at_idx ON crewmates (created_at DESC);`
)

// PostgresSchema returns the bootstrap DDL. With strict set, the table also
// rejects blank names and out-of-range speeds. CREATE TABLE IF NOT EXISTS
// leaves an existing table untouched, so strict only applies to new tables.
func PostgresSchema(strict bool) []string {
	return []string{
		withConstraints(createCrewmatesPostgres, strictCrewmatesPostgres, strict),
		indexCrewmatesPostgres,
	}
}

func SQLiteSchema(strict bool) []string {
	return []string{
		withConstraints(createCrewmatesSQLite, strictCrewmatesSQLite, strict),
		indexCrewmatesSQLite,
	}
}

func withConstraints(table, constraints string, strict bool) string {
	if !strict {
		constraints = ""
	}
	return fmt.Sprintf(table, constraints)
}

// MigratePostgres applies the bootstrap DDL in a single transaction.
func MigratePostgres(ctx context.Context, pool *pgxpool.Pool, strict bool) error {
	return NewPgxTransactor(pool).WithinTransaction(ctx, func(txCtx context.Context) error {
		e := GetPgxExecutorFromContext(txCtx, pool)
		for _, stmt := range PostgresSchema(strict) {
			if _, err := e.Exec(txCtx, stmt); err != nil {
				return errors.Wrapf(err, "apply %q", firstLine(stmt))
			}
		}
		return nil
	})
}

func MigrateSQLite(ctx context.Context, conn *sql.DB, strict bool) error {
	return NewSQLTransactor(conn).WithinTransaction(ctx, func(txCtx context.Context) error {
		e := GetSQLExecutorFromContext(txCtx, conn)
		for _, stmt := range SQLiteSchema(strict) {
			if _, err := e.ExecContext(txCtx, stmt); err != nil {
				return errors.Wrapf(err, "apply %q", firstLine(stmt))
			}
		}
		return nil
	})
}

func firstLine(stmt string) string {
	line, _, _ := strings.Cut(stmt, "\n")
	return line
}
