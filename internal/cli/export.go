package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phanxgames/dotswarm"
	"github.com/phanxgames/dotswarm/frames"
)

func newExportCmd(opts *options) *cobra.Command {
	var (
		scriptPath string
		outDir     string
		every      bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Run the show headlessly and write PNG frames",
		Long: `export drives the engine from a JSON script and writes a PNG for every
snapshot. Without --script every formation is played once in order and a
frame is written when it settles. --every captures each animated frame.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := loadShow(ctx, opts)
			if err != nil {
				return err
			}

			var sc *dotswarm.Script
			if scriptPath != "" {
				data, err := os.ReadFile(scriptPath)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				sc, err = dotswarm.LoadScript(data)
				if err != nil {
					return err
				}
			} else {
				sc, err = dotswarm.LoadScript(defaultScript(s.catalog, every))
				if err != nil {
					return err
				}
			}

			canvas := s.cfg.Canvas
			w := frames.NewWriter(outDir, canvas.Width, canvas.Height, float64(canvas.DotRadius), s.cfg.BackgroundColor())

			p := newProgress(logger)
			err = sc.Run(ctx, s.engine, func(label string, frame int, dots []dotswarm.DotState) error {
				path, err := w.Write(label, dots)
				if err != nil {
					return err
				}
				logger.Debug("wrote frame", "path", path, "frame", frame)
				return nil
			})
			if err != nil {
				return err
			}
			p.done("export complete", "frames", w.Count(), "dir", outDir)
			return nil
		},
	}
	cmd.Flags().StringVar(&scriptPath, "script", "", "JSON show script (defaults to one pass over every formation)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "frames", "output directory")
	cmd.Flags().BoolVar(&every, "every", false, "capture every frame of the default script")
	return cmd
}

// defaultScript plays every formation once in order, snapshotting each one
// after it settles.
func defaultScript(cat *dotswarm.Catalog, every bool) []byte {
	var steps []map[string]any
	for i := range cat.Len() {
		name := cat.Formation(i).Name
		settle := map[string]any{"action": "settle"}
		if every {
			settle["capture"] = true
			settle["label"] = name + "_"
		}
		steps = append(steps,
			map[string]any{"action": "next"},
			settle,
			map[string]any{"action": "snapshot", "label": name},
		)
	}
	data, _ := json.Marshal(map[string]any{"steps": steps})
	return data
}
