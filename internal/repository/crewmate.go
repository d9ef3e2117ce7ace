package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Crewmate is a row of the crewmates table. ID and CreatedAt are assigned by
// the store on insert.
type Crewmate struct {
	ID             uuid.UUID `db:"id"`
	Name           string    `db:"name"`
	Speed          int       `db:"speed"`
	Color          string    `db:"color"`
	SpecialAbility string    `db:"special_ability"`
	CreatedAt      time.Time `db:"created_at"`
}

// CrewmateRepository is the store client for the crewmates table. Every call
// is one round trip; nothing is cached.
type CrewmateRepository interface {
	// Create inserts c and sets c.ID and c.CreatedAt.
	Create(ctx context.Context, c *Crewmate) error
	// List returns every row, newest first.
	List(ctx context.Context) ([]*Crewmate, error)
	// Get returns ErrNotFound unless exactly one row matches.
	Get(ctx context.Context, id uuid.UUID) (*Crewmate, error)
	// Update replaces name, speed, color and special_ability of the row with
	// c.ID and returns the stored row.
	Update(ctx context.Context, c *Crewmate) (*Crewmate, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

var crewmateColumns = []any{"id", "name", "speed", "color", "special_ability", "created_at"}
