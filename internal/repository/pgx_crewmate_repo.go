package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/yakoovad/crewmate-creator/internal/db"
)

const crewmatesTable = "crewmates"

type pgxCrewmateRepository struct {
	pool *pgxpool.Pool
}

func NewPgxCrewmateRepository(pool *pgxpool.Pool) CrewmateRepository {
	return &pgxCrewmateRepository{pool: pool}
}

func scanPgxCrewmate(row pgx.Row) (*Crewmate, error) {
	c := &Crewmate{}
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Speed,
		&c.Color,
		&c.SpecialAbility,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return c, nil
}

// Create Insert a crewmate; id and created_at come back from the database.
func (p *pgxCrewmateRepository) Create(ctx context.Context, c *Crewmate) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into(crewmatesTable, "name", "speed", "color", "special_ability"),
		im.Values(psql.Arg(c.Name), psql.Arg(c.Speed), psql.Arg(c.Color), psql.Arg(c.SpecialAbility)),
		im.Returning("id", "created_at"),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return errors.Wrap(err, "build insert crewmate")
	}

	if err = e.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return errors.Wrap(err, "insert crewmate")
	}
	return nil
}

func (p *pgxCrewmateRepository) List(ctx context.Context) ([]*Crewmate, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(crewmateColumns...),
		sm.From(crewmatesTable),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "build list crewmates")
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list crewmates")
	}
	defer rows.Close()

	crewmates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Crewmate, error) {
		return scanPgxCrewmate(row)
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan crewmates")
	}

	return crewmates, nil
}

func (p *pgxCrewmateRepository) Get(ctx context.Context, id uuid.UUID) (*Crewmate, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	// LIMIT 2 is enough to tell "exactly one" from "more than one".
	q := psql.Select(
		sm.Columns(crewmateColumns...),
		sm.From(crewmatesTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Limit(2),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "build get crewmate")
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "get crewmate")
	}
	defer rows.Close()

	found, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*Crewmate, error) {
		return scanPgxCrewmate(row)
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan crewmate")
	}
	if len(found) != 1 {
		return nil, ErrNotFound
	}

	return found[0], nil
}

func (p *pgxCrewmateRepository) Update(ctx context.Context, c *Crewmate) (*Crewmate, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Update(
		um.Table(crewmatesTable),
		um.SetCol("name").ToArg(c.Name),
		um.SetCol("speed").ToArg(c.Speed),
		um.SetCol("color").ToArg(c.Color),
		um.SetCol("special_ability").ToArg(c.SpecialAbility),
		um.Where(psql.Quote("id").EQ(psql.Arg(c.ID))),
		um.Returning(crewmateColumns...),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "build update crewmate")
	}

	updated, err := scanPgxCrewmate(e.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update crewmate")
	}
	return updated, nil
}

func (p *pgxCrewmateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From(crewmatesTable),
		dm.Where(psql.Quote("id").EQ(psql.Arg(id))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return errors.Wrap(err, "build delete crewmate")
	}

	commandTag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return errors.Wrap(err, "delete crewmate")
	}

	if commandTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
