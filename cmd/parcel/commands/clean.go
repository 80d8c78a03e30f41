package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove the bundle cache and persisted catalog state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			state, _ := cmd.Flags().GetBool("state")
			all, _ := cmd.Flags().GetBool("all")

			var opts app.CleanOptions
			switch {
			case all:
				opts.Cache = true
				opts.State = true
			case state:
				opts.State = true
			default:
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("state", "s", false, "Clean the persisted catalog and version")
	cmd.Flags().BoolP("all", "a", false, "Clean the cache and the persisted state")

	return cmd
}
