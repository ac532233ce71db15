package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"photo-mapper/internal/database"
	"photo-mapper/internal/logging"
	"photo-mapper/internal/mapgen"
	"photo-mapper/internal/mediatypes"
	"photo-mapper/internal/startup"
)

func generateCommand(config *startup.Config) *cobra.Command {
	var (
		startDay string
		endDay   string
		camera   string
		extList  string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the HTML map from indexed photos",
		Long: "Queries the database with the given filters and renders the map\n" +
			"template into a self-contained HTML document. The calendar heatmap\n" +
			"always covers the entire collection regardless of filters.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lower, upper, err := database.DayBounds(startDay, endDay)
			if err != nil {
				return err
			}

			filter := database.Filter{
				StartDate:   lower,
				EndDate:     upper,
				CameraModel: camera,
			}
			if extList != "" {
				if filter.Extensions, err = mediatypes.ParseExtensionList(extList); err != nil {
					return err
				}
			}

			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			if err := startup.EnsureParentDir(config.OutputPath); err != nil {
				return err
			}

			err = mapgen.New(db, config.TemplatePath, config.OutputPath).Generate(filter)
			if errors.Is(err, mapgen.ErrNoPhotos) {
				logging.Info("No photos to map for the selected criteria")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&config.TemplatePath, "template", config.TemplatePath,
		"path to the HTML map template")
	cmd.Flags().StringVar(&config.OutputPath, "output", config.OutputPath,
		"path of the generated HTML file")
	cmd.Flags().StringVar(&startDay, "start", "",
		"start date filter (YYYY-MM-DD, requires --end)")
	cmd.Flags().StringVar(&endDay, "end", "",
		"end date filter (YYYY-MM-DD, requires --start)")
	cmd.Flags().StringVar(&camera, "camera", "",
		"only include photos taken with this camera model")
	cmd.Flags().StringVar(&extList, "ext", "",
		"comma-separated extension allow-list, e.g. .jpg,.heic")

	return cmd
}
