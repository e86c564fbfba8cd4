package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dotswarm"
)

func newSampleCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Print how many points each formation image yields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			sources, err := cfg.Sources()
			if err != nil {
				return err
			}
			provider := dotswarm.FileImageProvider{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tSPACING\tCOLOR\tPOINTS\tIMAGE")
			minimum := -1
			for i, src := range sources {
				img, err := provider.Image(ctx, i, src.Image)
				if err != nil {
					return err
				}
				pts, err := dotswarm.Sample(img, src.Spacing, cfg.Sampling.Threshold)
				if err != nil {
					return fmt.Errorf("formation %d (%s): %w", i, src.Name, err)
				}
				if minimum < 0 || len(pts) < minimum {
					minimum = len(pts)
				}
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%d\t%s\n", i, src.Name, src.Spacing, src.Color.Hex(), len(pts), src.Image)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nequalized population: %d dots\n", max(minimum, 0))
			if minimum == 0 {
				loggerFromContext(ctx).Warn("a formation sampled no points; the show would be empty")
			}
			return nil
		},
	}
}
