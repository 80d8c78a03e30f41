package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.trai.ch/parcel/internal/app"
	"go.trai.ch/parcel/internal/ui/output"
	"go.trai.ch/parcel/internal/ui/style"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	var opts app.BuildOptions
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Pack bundles and publish the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Build(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if c.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"dir":      res.Dir,
					"version":  res.Version,
					"bundles":  res.Bundles,
					"embedded": res.Embedded,
					"changed":  res.Changed,
					"bytes":    res.Bytes,
				})
			}

			out := output.New(cmd.OutOrStdout())
			state := "unchanged"
			if res.Changed {
				state = "published"
			}
			_, _ = fmt.Fprintf(out, "%s %s build %d (%s)\n",
				paint(out, style.Check, style.Green), state, res.Version.BuildID, res.Version.ContentHash)
			_, _ = fmt.Fprintf(out, "  %d bundles, %s %s %s\n",
				len(res.Bundles), humanize.Bytes(res.Bytes), style.Arrow, res.Dir)
			if len(res.Embedded) > 0 {
				_, _ = fmt.Fprintf(out, "  %d embedded bundles\n", len(res.Embedded))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Publish output directory")
	cmd.Flags().StringVarP(&opts.Compression, "compression", "c", "", "Archive compression: none, lz4 or zstd")
	cmd.Flags().StringVar(&opts.EmbeddedOutput, "embedded", "", "Also write an embedded tree to this directory")

	return cmd
}
