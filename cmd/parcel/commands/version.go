package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/build"
)

func (c *CLI) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the parcel version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.json {
				return writeJSON(cmd.OutOrStdout(), map[string]string{
					"version": build.Version,
					"commit":  build.Commit,
					"date":    build.Date,
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "parcel version %s (commit: %s, built %s)\n",
				build.Version, build.Commit, build.Date)
			return err
		},
	}
}
