package cmd

import (
	"github.com/spf13/cobra"

	"photo-mapper/internal/logging"
	"photo-mapper/internal/startup"
)

func cleanCommand(config *startup.Config) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove records whose files no longer exist",
		Long: "Checks every indexed file path against the filesystem. Without\n" +
			"--yes the command only reports how many orphaned records it found;\n" +
			"with --yes it deletes them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			result, err := db.Clean(confirmed, nil)
			if err != nil {
				return err
			}
			logging.Info("Checked %d records: %d orphaned, %d deleted",
				result.Checked, result.Candidates, result.Deleted)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "actually delete orphaned records")

	return cmd
}
