package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
)

func (c *CLI) newServeCmd() *cobra.Command {
	var opts app.ServeOptions
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a publish output over HTTP with metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Serve(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", app.DefaultServeAddr, "Listen address")
	cmd.Flags().StringVarP(&opts.Dir, "dir", "d", "", "Directory to serve (default: publish output)")

	return cmd
}
