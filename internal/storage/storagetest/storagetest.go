// Package storagetest holds the behavioural suite every BoardStore backend
// must pass.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage"
)

// Run executes the suite. newStore must return an empty store.
func Run(t *testing.T, newStore func(t *testing.T) storage.BoardStore) {
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		s := newStore(t)

		first, err := s.Save(ctx, domain.NewBoard("Test", "Test board"))
		require.NoError(t, err)
		second, err := s.Save(ctx, domain.NewBoard("Second board", ""))
		require.NoError(t, err)

		assert.True(t, first.Persisted())
		assert.True(t, second.Persisted())
		assert.Less(t, first.Id, second.Id)
		assert.Equal(t, "Test", first.Name)
		assert.Equal(t, "Test board", first.Description)
	})

	t.Run("find by id", func(t *testing.T) {
		s := newStore(t)
		saved, err := s.Save(ctx, domain.NewBoard("Test", "Test board"))
		require.NoError(t, err)

		found, err := s.FindByID(ctx, saved.Id)
		require.NoError(t, err)
		assert.Equal(t, saved, found)

		_, err = s.FindByID(ctx, saved.Id+100)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("save with id overwrites", func(t *testing.T) {
		s := newStore(t)
		saved, err := s.Save(ctx, domain.NewBoard("Test", "Test board"))
		require.NoError(t, err)

		updated, err := s.Save(ctx, domain.Board{Id: saved.Id, Name: "Renamed", Description: ""})
		require.NoError(t, err)
		assert.Equal(t, saved.Id, updated.Id)

		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, "Renamed", all[0].Name)
		assert.Equal(t, "", all[0].Description)
	})

	t.Run("find all in store order", func(t *testing.T) {
		s := newStore(t)
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)

		names := []string{"First board", "Second board", "Another board", "One more board", "Last board"}
		for _, name := range names {
			_, err := s.Save(ctx, domain.NewBoard(name, ""))
			require.NoError(t, err)
		}

		all, err = s.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, len(names))
		for i, b := range all {
			assert.Equal(t, names[i], b.Name)
		}
	})

	t.Run("find by name prefix ignores case", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"Team HRM", "Team TIE Fighter", "501st Legion", "My team"} {
			_, err := s.Save(ctx, domain.NewBoard(name, ""))
			require.NoError(t, err)
		}

		boards, err := s.FindByNamePrefix(ctx, "team")
		require.NoError(t, err)
		require.Len(t, boards, 2)
		assert.Equal(t, "Team HRM", boards[0].Name)
		assert.Equal(t, "Team TIE Fighter", boards[1].Name)

		boards, err = s.FindByNamePrefix(ctx, "TEAM T")
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, "Team TIE Fighter", boards[0].Name)

		boards, err = s.FindByNamePrefix(ctx, "nothing")
		require.NoError(t, err)
		assert.Empty(t, boards)
	})

	t.Run("prefix wildcards are literal", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"100% done", "100 days", "a_b", "axb"} {
			_, err := s.Save(ctx, domain.NewBoard(name, ""))
			require.NoError(t, err)
		}

		boards, err := s.FindByNamePrefix(ctx, "100%")
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, "100% done", boards[0].Name)

		boards, err = s.FindByNamePrefix(ctx, "a_")
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, "a_b", boards[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		saved, err := s.Save(ctx, domain.NewBoard("Test", "Test board"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, saved))
		_, err = s.FindByID(ctx, saved.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)

		// missing and unpersisted boards are a no-op
		assert.NoError(t, s.Delete(ctx, saved))
		assert.NoError(t, s.Delete(ctx, domain.NewBoard("transient", "")))
	})

	t.Run("delete all", func(t *testing.T) {
		s := newStore(t)
		for _, name := range []string{"a", "b", "c"} {
			_, err := s.Save(ctx, domain.NewBoard(name, ""))
			require.NoError(t, err)
		}

		require.NoError(t, s.DeleteAll(ctx))
		all, err := s.FindAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
