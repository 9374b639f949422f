package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskboards/boards/internal/domain"
	"github.com/taskboards/boards/internal/logger"
	"github.com/taskboards/boards/internal/setup"
	"github.com/taskboards/boards/internal/storage"
)

var resetBeforeSeed bool

var sampleBoards = []domain.BoardCreationData{
	{Name: "First board", Description: "This is the first board"},
	{Name: "Second board", Description: "This is the second board"},
	{Name: "Another board", Description: "Yet another board"},
	{Name: "One more board", Description: "And one more"},
	{Name: "Last board", Description: "The last one"},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample boards into the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		store, err := setup.OpenStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		boards, err := seedBoards(cmd.Context(), store, resetBeforeSeed)
		if err != nil {
			return err
		}
		for _, b := range boards {
			fmt.Fprintln(cmd.OutOrStdout(), b)
		}
		return nil
	},
}

func init() {
	seedCmd.Flags().BoolVar(&resetBeforeSeed, "reset", false, "delete every board before seeding")
	rootCmd.AddCommand(seedCmd)
}

func seedBoards(ctx context.Context, store storage.BoardStore, reset bool) ([]domain.Board, error) {
	if reset {
		if err := store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("resetting store: %w", err)
		}
	}

	saved := make([]domain.Board, 0, len(sampleBoards))
	for _, data := range sampleBoards {
		b, err := store.Save(ctx, domain.NewBoard(data.Name, data.Description))
		if err != nil {
			return saved, fmt.Errorf("saving %q: %w", data.Name, err)
		}
		saved = append(saved, b)
	}
	logger.Log.Info("seeded boards", "count", len(saved))
	return saved, nil
}
