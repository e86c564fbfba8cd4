package cli

import (
	"context"
	"errors"
	"math/rand/v2"

	"github.com/phanxgames/dotswarm"
)

// show bundles everything a driver needs to run a configured show.
type show struct {
	cfg     dotswarm.Config
	catalog *dotswarm.Catalog
	engine  *dotswarm.Engine
	seed    uint64
}

// loadConfig returns the --config file, or the default show when none is given.
func loadConfig(opts *options) (dotswarm.Config, error) {
	if opts.configPath != "" {
		return dotswarm.LoadConfig(opts.configPath)
	}
	cfg := dotswarm.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		return dotswarm.Config{}, err
	}
	return cfg, nil
}

// resolveSeed picks the flag seed, then the config seed, then a random one.
func resolveSeed(opts *options, cfg dotswarm.Config) uint64 {
	switch {
	case opts.seed != 0:
		return opts.seed
	case cfg.Transition.Seed != 0:
		return cfg.Transition.Seed
	default:
		return rand.Uint64()
	}
}

// loadShow loads the config, builds the catalog from its images and creates
// the engine. Any image problem stops here, before anything is animated.
func loadShow(ctx context.Context, opts *options) (*show, error) {
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	sources, err := cfg.Sources()
	if err != nil {
		return nil, err
	}
	ecfg, err := cfg.EngineConfig()
	if err != nil {
		return nil, err
	}

	seed := resolveSeed(opts, cfg)
	rng := dotswarm.NewRand(seed)
	provider := dotswarm.FileImageProvider{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height}

	p := newProgress(logger)
	cat, err := dotswarm.BuildCatalog(ctx, rng, provider, sources, cfg.Sampling.Threshold)
	if err != nil {
		var re *dotswarm.ResourceError
		if errors.As(err, &re) {
			logger.Error("cannot load formation image", "formation", re.Formation, "source", re.Source, "err", re.Err)
		}
		return nil, err
	}
	p.done("catalog ready", "formations", cat.Len(), "dots", cat.Size(), "seed", seed)

	engine := dotswarm.NewEngine(cat, ecfg, rng)
	engine.SetDebugMode(opts.debug)
	return &show{cfg: cfg, catalog: cat, engine: engine, seed: seed}, nil
}
