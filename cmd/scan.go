package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"photo-mapper/internal/mediatypes"
	"photo-mapper/internal/scanner"
	"photo-mapper/internal/startup"
)

func scanCommand(config *startup.Config) *cobra.Command {
	var (
		sequential bool
		extList    string
	)

	cmd := &cobra.Command{
		Use:   "scan <directory> [directory...]",
		Short: "Scan directories and index new media files",
		Long: "Walks the given directories for supported media files, extracts\n" +
			"their metadata, and adds records for files the database does not\n" +
			"know yet. Interrupting with Ctrl-C stops the scan gracefully and\n" +
			"keeps everything indexed so far.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var exts []string
			if extList != "" {
				var err error
				if exts, err = mediatypes.ParseExtensionList(extList); err != nil {
					return err
				}
			}

			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s := scanner.New(db, scanner.Config{
				Workers:    config.Workers,
				Sequential: sequential,
				Extensions: exts,
			})
			_, err = s.Scan(ctx, args)
			return err
		},
	}

	cmd.Flags().IntVar(&config.Workers, "workers", config.Workers,
		"number of parallel extraction workers (0 = auto)")
	cmd.Flags().BoolVar(&sequential, "sequential", false,
		"process files one at a time instead of in parallel")
	cmd.Flags().StringVar(&extList, "ext", "",
		"comma-separated extension allow-list, e.g. .jpg,.heic (default: all supported)")

	return cmd
}
