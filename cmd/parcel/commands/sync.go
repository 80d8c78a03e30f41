package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/ui/output"
	"go.trai.ch/parcel/internal/ui/style"
)

func (c *CLI) newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Bring the local catalog up to date with the remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Sync(cmd.Context())
			if err != nil {
				return err
			}
			if c.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"version": res.Version,
					"updated": res.Updated,
					"source":  res.Source,
					"bundles": res.Catalog.BundleCount(),
					"assets":  res.Catalog.AssetCount(),
				})
			}

			out := output.New(cmd.OutOrStdout())
			state := "up to date"
			if res.Updated {
				state = "updated"
			}
			_, _ = fmt.Fprintf(out, "%s catalog %s: %d bundles, %d assets (%s)\n",
				paint(out, style.Check, style.Green), state,
				res.Catalog.BundleCount(), res.Catalog.AssetCount(), res.Source)
			if res.Version.ContentHash != "" {
				_, _ = fmt.Fprintf(out, "  %s build %d\n", res.Version.ContentHash, res.Version.BuildID)
			}
			return nil
		},
	}
}
