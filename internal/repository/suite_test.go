package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCrewmateRepositorySuite checks the store contract that every backend must honor.
// newRepo must return a repository over an empty table.
func runCrewmateRepositorySuite(t *testing.T, newRepo func(t *testing.T) CrewmateRepository) {
	ctx := context.Background()

	t.Run("create then get round trips", func(t *testing.T) {
		repo := newRepo(t)

		c := &Crewmate{Name: "Ada", Speed: 3, Color: "Blue", SpecialAbility: "Teleportation"}
		require.NoError(t, repo.Create(ctx, c))
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.False(t, c.CreatedAt.IsZero())

		got, err := repo.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, "Ada", got.Name)
		assert.Equal(t, 3, got.Speed)
		assert.Equal(t, "Blue", got.Color)
		assert.Equal(t, "Teleportation", got.SpecialAbility)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("create assigns distinct ids", func(t *testing.T) {
		repo := newRepo(t)

		a := &Crewmate{Name: "A", Speed: 1}
		b := &Crewmate{Name: "B", Speed: 1}
		require.NoError(t, repo.Create(ctx, a))
		require.NoError(t, repo.Create(ctx, b))
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("update replaces fields and keeps identity", func(t *testing.T) {
		repo := newRepo(t)

		c := &Crewmate{Name: "Ada", Speed: 3, Color: "Blue", SpecialAbility: "Teleportation"}
		require.NoError(t, repo.Create(ctx, c))

		updated, err := repo.Update(ctx, &Crewmate{
			ID:             c.ID,
			Name:           "Ada Prime",
			Speed:          4,
			Color:          "Red",
			SpecialAbility: "Healing",
		})
		require.NoError(t, err)
		assert.Equal(t, c.ID, updated.ID)
		assert.True(t, c.CreatedAt.Equal(updated.CreatedAt))

		got, err := repo.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, "Ada Prime", got.Name)
		assert.Equal(t, 4, got.Speed)
		assert.Equal(t, "Red", got.Color)
		assert.Equal(t, "Healing", got.SpecialAbility)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("update of missing id is not found", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Update(ctx, &Crewmate{ID: uuid.New(), Name: "Ghost", Speed: 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get of never created id is not found", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, got)
	})

	t.Run("delete removes the row", func(t *testing.T) {
		repo := newRepo(t)

		keep := &Crewmate{Name: "Keep", Speed: 2}
		gone := &Crewmate{Name: "Gone", Speed: 2}
		require.NoError(t, repo.Create(ctx, keep))
		require.NoError(t, repo.Create(ctx, gone))

		before, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, before, 2)

		require.NoError(t, repo.Delete(ctx, gone.ID))

		_, err = repo.Get(ctx, gone.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		after, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, after, len(before)-1)
		assert.Equal(t, keep.ID, after[0].ID)

		assert.ErrorIs(t, repo.Delete(ctx, gone.ID), ErrNotFound)
	})

	t.Run("list is newest first", func(t *testing.T) {
		repo := newRepo(t)

		var ids []uuid.UUID
		for _, name := range []string{"first", "second", "third"} {
			c := &Crewmate{Name: name, Speed: 1}
			require.NoError(t, repo.Create(ctx, c))
			ids = append(ids, c.ID)
		}

		list, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []uuid.UUID{ids[2], ids[1], ids[0]}, []uuid.UUID{list[0].ID, list[1].ID, list[2].ID})
	})

	t.Run("list of empty table", func(t *testing.T) {
		repo := newRepo(t)

		list, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("store does not enforce suggested sets", func(t *testing.T) {
		repo := newRepo(t)

		c := &Crewmate{Name: "Odd", Speed: 9, Color: "Teal", SpecialAbility: "Flight"}
		require.NoError(t, repo.Create(ctx, c))

		got, err := repo.Get(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, 9, got.Speed)
		assert.Equal(t, "Teal", got.Color)
		assert.Equal(t, "Flight", got.SpecialAbility)
	})
}
