package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"photo-mapper/internal/database"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/startup"
)

// Execute loads the configuration and runs the command tree. It is the
// program's entry point after main.
func Execute() {
	config, err := startup.LoadConfig()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}

	if err := RootCommand(config).Execute(); err != nil {
		os.Exit(1)
	}
}

// RootCommand builds the root command with all subcommands attached.
func RootCommand(config *startup.Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "photo-mapper",
		Short: "Index media metadata and render photo maps",
		Long: "photo-mapper indexes the EXIF metadata and geolocation of a local\n" +
			"media collection into a SQLite database and renders an interactive\n" +
			"HTML map with a per-day photo heatmap from it.",
		SilenceUsage: true,
	}

	setupFlags(rootCmd, config)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if config.Debug {
			logging.SetLevel(logging.LevelDebug)
		}
		return startup.EnsureParentDir(config.DatabasePath)
	}

	rootCmd.AddCommand(
		scanCommand(config),
		generateCommand(config),
		cleanCommand(config),
		camerasCommand(config),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, config *startup.Config) {
	cmd.PersistentFlags().StringVar(&config.DatabasePath, "db", config.DatabasePath,
		"path to the SQLite database file")
	cmd.PersistentFlags().BoolVar(&config.Debug, "debug", config.Debug,
		"enable debug logging")
}

func openDatabase(config *startup.Config) (*database.Database, error) {
	return database.New(config.DatabasePath, config.BufferSize)
}
