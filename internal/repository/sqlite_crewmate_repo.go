package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/yakoovad/crewmate-creator/internal/db"
)

// Fixed-width so that text order matches time order.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const selectCrewmatesSQLite = `SELECT id, name, speed, color, special_ability, created_at FROM crewmates`

type SQLiteCrewmateRepository struct {
	conn *sql.DB
	now  func() time.Time
}

// NewSQLiteCrewmateRepository stores crewmates in an embedded SQLite database.
// SQLite has no server-side uuid or clock defaults that we rely on, so id and
// created_at are stamped here.
func NewSQLiteCrewmateRepository(conn *sql.DB) *SQLiteCrewmateRepository {
	return &SQLiteCrewmateRepository{conn: conn, now: time.Now}
}

// WithClock replaces the clock used to stamp created_at.
func (s *SQLiteCrewmateRepository) WithClock(now func() time.Time) *SQLiteCrewmateRepository {
	s.now = now
	return s
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteCrewmate(row rowScanner) (*Crewmate, error) {
	c := &Crewmate{}
	var createdAt string
	if err := row.Scan(&c.ID, &c.Name, &c.Speed, &c.Color, &c.SpecialAbility, &createdAt); err != nil {
		return nil, err
	}

	t, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, errors.Wrapf(err, "parse created_at %q", createdAt)
	}
	c.CreatedAt = t
	return c, nil
}

func (s *SQLiteCrewmateRepository) Create(ctx context.Context, c *Crewmate) error {
	e := db.GetSQLExecutorFromContext(ctx, s.conn)

	id := uuid.New()
	createdAt := s.now().UTC()

	if _, err := e.ExecContext(ctx,
		`INSERT INTO crewmates (id, name, speed, color, special_ability, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), c.Name, c.Speed, c.Color, c.SpecialAbility, createdAt.Format(sqliteTimeLayout),
	); err != nil {
		return errors.Wrap(err, "insert crewmate")
	}

	c.ID = id
	c.CreatedAt = createdAt
	return nil
}

func (s *SQLiteCrewmateRepository) List(ctx context.Context) ([]*Crewmate, error) {
	e := db.GetSQLExecutorFromContext(ctx, s.conn)

	rows, err := e.QueryContext(ctx, selectCrewmatesSQLite+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "list crewmates")
	}
	defer rows.Close()

	crewmates := make([]*Crewmate, 0)
	for rows.Next() {
		c, err := scanSQLiteCrewmate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan crewmate")
		}
		crewmates = append(crewmates, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate crewmates")
	}

	return crewmates, nil
}

func (s *SQLiteCrewmateRepository) Get(ctx context.Context, id uuid.UUID) (*Crewmate, error) {
	e := db.GetSQLExecutorFromContext(ctx, s.conn)

	rows, err := e.QueryContext(ctx, selectCrewmatesSQLite+` WHERE id = ? LIMIT 2`, id.String())
	if err != nil {
		return nil, errors.Wrap(err, "get crewmate")
	}
	defer rows.Close()

	var found []*Crewmate
	for rows.Next() {
		c, err := scanSQLiteCrewmate(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan crewmate")
		}
		found = append(found, c)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate crewmate")
	}
	if len(found) != 1 {
		return nil, ErrNotFound
	}

	return found[0], nil
}

func (s *SQLiteCrewmateRepository) Update(ctx context.Context, c *Crewmate) (*Crewmate, error) {
	e := db.GetSQLExecutorFromContext(ctx, s.conn)

	row := e.QueryRowContext(ctx,
		`UPDATE crewmates SET name = ?, speed = ?, color = ?, special_ability = ? WHERE id = ?
		RETURNING id, name, speed, color, special_ability, created_at`,
		c.Name, c.Speed, c.Color, c.SpecialAbility, c.ID.String(),
	)

	updated, err := scanSQLiteCrewmate(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "update crewmate")
	}
	return updated, nil
}

func (s *SQLiteCrewmateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	e := db.GetSQLExecutorFromContext(ctx, s.conn)

	res, err := e.ExecContext(ctx, `DELETE FROM crewmates WHERE id = ?`, id.String())
	if err != nil {
		return errors.Wrap(err, "delete crewmate")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete crewmate")
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}
