package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"photo-mapper/internal/startup"
)

func camerasCommand(config *startup.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "cameras",
		Short: "List the camera models present in the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase(config)
			if err != nil {
				return err
			}

			models, err := db.CameraModels()
			if err != nil {
				return err
			}
			for _, model := range models {
				fmt.Fprintln(cmd.OutOrStdout(), model)
			}
			return nil
		},
	}
}
