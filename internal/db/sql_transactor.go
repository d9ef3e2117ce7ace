package db

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

type SQLTxContextKey struct{}

// SQLExecutor is the query surface shared by *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqlTransactor struct {
	db *sql.DB
}

func NewSQLTransactor(db *sql.DB) Transactor {
	return &sqlTransactor{db: db}
}

func (t *sqlTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ctxWithTx := context.WithValue(ctx, SQLTxContextKey{}, tx)

	if err = fn(ctxWithTx); err != nil {
		return errors.Wrap(err, "transaction function failed")
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	committed = true

	return nil
}

func GetSQLExecutorFromContext(ctx context.Context, db *sql.DB) SQLExecutor {
	if tx, ok := ctx.Value(SQLTxContextKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
