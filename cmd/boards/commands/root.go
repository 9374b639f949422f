package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskboards/boards/internal/config"
	"github.com/taskboards/boards/internal/logger"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configFolder string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "boards",
	Short: "Task boards service",
	Long: `boards serves a REST API and a server-rendered UI for managing task boards.

Boards are stored in PostgreSQL, Redis or memory, selected by storage.driver
in the config folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
}

// loadConfig loads the config folder and points the logger at the configured level.
func loadConfig() *config.Config {
	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)
	return cfg
}
