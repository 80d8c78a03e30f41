package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the passthrough catalog when sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), app.WatchOptions{})
		},
	}
}
