package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/storage/memory"
)

func TestRootHasSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["seed"])
	assert.True(t, names["version"])
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config_folder"))
}

func TestVersionCommand(t *testing.T) {
	SetVersionInfo("1.2.3", "abc", "today")
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "boards 1.2.3 (commit: abc, built: today)\n", buf.String())
}

func TestSeedBoards(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	_, err := store.Save(ctx, domain.NewBoard("Old", ""))
	require.NoError(t, err)

	t.Run("appends", func(t *testing.T) {
		boards, err := seedBoards(ctx, store, false)
		require.NoError(t, err)
		require.Len(t, boards, len(sampleBoards))
		assert.Equal(t, domain.BoardId(2), boards[0].Id)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1+len(sampleBoards))
	})

	t.Run("reset", func(t *testing.T) {
		boards, err := seedBoards(ctx, store, true)
		require.NoError(t, err)
		assert.Equal(t, domain.BoardId(1), boards[0].Id)
		assert.Equal(t, "First board", boards[0].Name)
		assert.Equal(t, "Last board", boards[len(boards)-1].Name)

		all, err := store.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, len(sampleBoards))
	})
}
