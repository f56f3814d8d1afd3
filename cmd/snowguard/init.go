package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edvin/snowguard/internal/setup"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write an example manifest",
		Long: `Write an example manifest listing a perimeter and one database/schema pair.
Edit it, then run 'snowguard generate manifest'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			force, _ := cmd.Flags().GetBool("force")

			if _, err := os.Stat(file); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", file)
			}
			if err := setup.WriteManifest(setup.DefaultManifest(), file); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", file)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", setup.ManifestFilename, "Manifest file to write")
	cmd.Flags().Bool("force", false, "Overwrite an existing manifest")
	return cmd
}
