package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage/memory"
)

func TestSessionsGet(t *testing.T) {
	sessions := NewSessions(memory.New(), time.Minute, 0)

	first, created := sessions.Get("")
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)

	again, created := sessions.Get(first.ID)
	assert.False(t, created)
	assert.Same(t, first, again)

	other, created := sessions.Get("unknown")
	assert.True(t, created)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 2, sessions.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Save(ctx, domain.NewBoard("First board", ""))
	require.NoError(t, err)
	sessions := NewSessions(store, time.Minute, 0)

	a, _ := sessions.Get("")
	b, _ := sessions.Get("")

	require.NoError(t, a.Do(ctx, func(list *ListController) error {
		return list.AddNew(ctx)
	}))
	require.NoError(t, b.Do(ctx, func(list *ListController) error {
		assert.Equal(t, Hidden, list.Editor().State())
		assert.Len(t, list.Rows(), 1, "list initialised on first use")
		return nil
	}))
	require.NoError(t, a.Do(ctx, func(list *ListController) error {
		assert.Equal(t, EditingNew, list.Editor().State())
		return nil
	}))
}

func TestSessionsEviction(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(memory.New(), 10*time.Minute, 0)
	sessions.now = func() time.Time { return now }

	old, _ := sessions.Get("")
	now = now.Add(5 * time.Minute)
	fresh, _ := sessions.Get("")

	now = now.Add(6 * time.Minute)
	_, created := sessions.Get(fresh.ID)
	assert.False(t, created)

	_, created = sessions.Get(old.ID)
	assert.True(t, created, "idle session is evicted")
	assert.Equal(t, 2, sessions.Len())
}

func TestSessionsLookup(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(memory.New(), 10*time.Minute, 0)
	sessions.now = func() time.Time { return now }

	_, ok := sessions.Lookup("")
	assert.False(t, ok)
	_, ok = sessions.Lookup("unknown")
	assert.False(t, ok)
	assert.Zero(t, sessions.Len(), "lookup never creates")

	sess, _ := sessions.Get("")
	found, ok := sessions.Lookup(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, found)

	now = now.Add(11 * time.Minute)
	_, ok = sessions.Lookup(sess.ID)
	assert.False(t, ok, "idle session is gone")
	assert.Zero(t, sessions.Len())
}

func TestSessionsLimit(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewSessions(memory.New(), time.Hour, 3)
	sessions.now = func() time.Time { return now }

	var ids []string
	for i := 0; i < 3; i++ {
		sess, _ := sessions.Get("")
		ids = append(ids, sess.ID)
		now = now.Add(time.Second)
	}
	// touch the first so the second becomes least recently used
	_, created := sessions.Get(ids[0])
	require.False(t, created)

	sessions.Get("")
	assert.Equal(t, 3, sessions.Len())
	_, ok := sessions.Lookup(ids[1])
	assert.False(t, ok, "least recently used session makes room")
	_, ok = sessions.Lookup(ids[0])
	assert.True(t, ok)
	_, ok = sessions.Lookup(ids[2])
	assert.True(t, ok)

	for i := 0; i < 100; i++ {
		sessions.Get("")
	}
	assert.Equal(t, 3, sessions.Len())
}

func TestSessionsTransient(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Save(ctx, domain.NewBoard("First board", ""))
	require.NoError(t, err)
	sessions := NewSessions(store, time.Minute, 0)

	sess := sessions.Transient()
	assert.Empty(t, sess.ID)
	require.NoError(t, sess.Do(ctx, func(list *ListController) error {
		assert.Empty(t, list.Rows(), "not initialised")
		require.NoError(t, list.Refresh(ctx))
		assert.Len(t, list.Rows(), 1)
		assert.Equal(t, Hidden, list.Editor().State())
		return nil
	}))
	assert.Zero(t, sessions.Len())
}

func TestSessionFlash(t *testing.T) {
	sess, _ := NewSessions(memory.New(), time.Minute, 0).Get("")

	assert.Empty(t, sess.TakeFlash())
	sess.SetFlash("Name must not be blank")
	assert.Equal(t, "Name must not be blank", sess.TakeFlash())
	assert.Empty(t, sess.TakeFlash())
}

func TestSessionDoSerialises(t *testing.T) {
	ctx := context.Background()
	sess, _ := NewSessions(memory.New(), time.Minute, 0).Get("")

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sess.Do(ctx, func(list *ListController) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
}
