// Package cli implements the dotswarm command-line interface.
//
// Every command loads a show (config, formation catalog, engine) the same
// way and then drives it differently:
//   - play: an ebiten window; space or click starts the next formation
//   - term: the same show drawn in a terminal with tcell
//   - export: a headless script run that writes PNG frames
//   - sample: prints how many points each formation image yields
//
// All commands accept --config (TOML), --seed and --verbose (-v).
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/dotswarm"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// options are the persistent flags shared by every command.
type options struct {
	configPath string
	seed       uint64
	verbose    bool
	debug      bool
}

// Execute runs the dotswarm CLI.
func Execute(ctx context.Context) error {
	return RootCommand().ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func RootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "dotswarm",
		Short:        "dotswarm morphs a swarm of dots between image formations",
		Long:         `dotswarm samples a sequence of images into equally sized point sets and animates a fixed population of dots between them on a staggered, eased timeline.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if opts.verbose || opts.debug {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			dotswarm.SetLogger(logger)
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("dotswarm %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "TOML show configuration (defaults to images/frame1..5.jpg)")
	root.PersistentFlags().Uint64Var(&opts.seed, "seed", 0, "random seed for shuffles and delays (0 = config seed or random)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log per-frame engine stats (implies --verbose)")

	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newTermCmd(opts))
	root.AddCommand(newExportCmd(opts))
	root.AddCommand(newSampleCmd(opts))

	return root
}
