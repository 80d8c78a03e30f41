package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/ui/output"
)

func (c *CLI) newInspectCmd() *cobra.Command {
	var opts app.InspectOptions
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the catalog and dependency closures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report, err := c.app.Inspect(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if c.json {
				return writeJSON(cmd.OutOrStdout(), inspectJSON(report))
			}
			renderInspect(output.New(cmd.OutOrStdout()), report)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Asset, "asset", "a", "", "Only show the closure of this asset's bundle")
	cmd.Flags().BoolVar(&opts.Offline, "offline", false, "Use the local catalog without contacting the remote")

	return cmd
}
