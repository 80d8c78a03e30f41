package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/ui/output"
)

func (c *CLI) newFetchCmd() *cobra.Command {
	var (
		opts     app.FetchOptions
		strategy string
	)
	cmd := &cobra.Command{
		Use:   "fetch <asset>...",
		Short: "Sync the catalog and load assets with their dependencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := domain.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			opts.Assets = args
			opts.Strategy = s

			results, fetchErr := c.app.Fetch(cmd.Context(), opts)
			if results == nil {
				return fetchErr
			}
			if c.json {
				if err := writeJSON(cmd.OutOrStdout(), fetchJSON(results)); err != nil {
					return err
				}
				return fetchErr
			}
			renderFetch(output.New(cmd.OutOrStdout()), results)
			return fetchErr
		},
	}

	cmd.Flags().StringVarP(&opts.Fallback, "fallback", "f", "", "Asset to load when a requested asset is not in the catalog")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "resource", "resource, instance or component:<name>")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "Use the local catalog without contacting the remote")

	return cmd
}
