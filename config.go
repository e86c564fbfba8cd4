package dotswarm

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full configuration of a show: canvas, timing, sampling and
// the ordered formation list. It is usually loaded from a TOML file with
// LoadConfig:
//
//	[canvas]
//	width = 800
//	height = 600
//	fps = 60
//
//	[transition]
//	seconds = 10
//	max_delay_frames = 60
//
//	[[formation]]
//	name = "logo"
//	image = "images/frame1.jpg"
//	color = "#000000"
type Config struct {
	Canvas     CanvasConfig      `toml:"canvas"`
	Transition TransitionConfig  `toml:"transition"`
	Sampling   SamplingConfig    `toml:"sampling"`
	Formations []FormationConfig `toml:"formation"`
}

// CanvasConfig describes the drawing surface.
type CanvasConfig struct {
	Width      int     `toml:"width"`
	Height     int     `toml:"height"`
	FPS        int     `toml:"fps"`
	DotRadius  float64 `toml:"dot_radius"`
	Background string  `toml:"background"`
}

// TransitionConfig controls each transition's timeline.
type TransitionConfig struct {
	// Seconds is converted to frames at Canvas.FPS unless DurationFrames is set.
	Seconds        float64 `toml:"seconds"`
	DurationFrames int     `toml:"duration_frames"`
	// MaxDelayFrames bounds per-dot delays. Zero means one second of frames;
	// 1 disables delays.
	MaxDelayFrames int    `toml:"max_delay_frames"`
	Easing         string `toml:"easing"`
	RestartFade    bool   `toml:"restart_fade"`
	// Seed fixes shuffles and delays. Zero picks a random seed.
	Seed uint64 `toml:"seed"`
}

// SamplingConfig controls the mask sampler.
type SamplingConfig struct {
	// Threshold is an exclusive luminance bound in [0, 256]. Zero is kept
	// as written and samples nothing; DefaultConfig starts from 200.
	Threshold int `toml:"threshold"`
	Spacing   int `toml:"spacing"`
}

// FormationConfig describes one formation source.
type FormationConfig struct {
	Name    string `toml:"name"`
	Image   string `toml:"image"`
	Spacing int    `toml:"spacing"` // zero uses Sampling.Spacing
	Color   string `toml:"color"`
}

const (
	defaultWidth     = 800
	defaultHeight    = 600
	defaultFPS       = 60
	defaultRadius    = 3
	defaultSeconds   = 10
	defaultThreshold = 200
	defaultSpacing   = 6

	defaultBackground = "#EEEEEE"
)

// DefaultPalette is the formation color sequence used when a formation has
// no color of its own.
var DefaultPalette = []string{"#000000", "#FF6B6B", "#629677", "#FFD275", "#006494"}

// DefaultConfig returns the stock five-formation show.
func DefaultConfig() Config {
	cfg := Config{
		Canvas: CanvasConfig{
			Width:      defaultWidth,
			Height:     defaultHeight,
			FPS:        defaultFPS,
			DotRadius:  defaultRadius,
			Background: defaultBackground,
		},
		Transition: TransitionConfig{
			Seconds:        defaultSeconds,
			DurationFrames: defaultFPS * defaultSeconds,
			MaxDelayFrames: defaultFPS,
			Easing:         "inOutSine",
		},
		Sampling: SamplingConfig{Threshold: defaultThreshold, Spacing: defaultSpacing},
	}
	for i, c := range DefaultPalette {
		f := FormationConfig{
			Name:  fmt.Sprintf("frame%d", i+1),
			Image: fmt.Sprintf("images/frame%d.jpg", i+1),
			Color: c,
		}
		if i == 2 {
			// The third picture is a fine line drawing and needs every pixel.
			f.Spacing = 1
		}
		cfg.Formations = append(cfg.Formations, f)
	}
	return cfg
}

// LoadConfig reads a TOML file over DefaultConfig and validates the result.
// Relative image paths are resolved against the file's directory.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Formations = nil
	cfg.Transition.DurationFrames = 0

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}

	dir := filepath.Dir(path)
	for i := range cfg.Formations {
		img := cfg.Formations[i].Image
		if img != "" && !filepath.IsAbs(img) {
			cfg.Formations[i].Image = filepath.Join(dir, img)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate fills unset values with defaults and rejects values no show can
// run with.
func (c *Config) Validate() error {
	if c.Canvas.Width <= 0 {
		c.Canvas.Width = defaultWidth
	}
	if c.Canvas.Height <= 0 {
		c.Canvas.Height = defaultHeight
	}
	if c.Canvas.FPS <= 0 {
		c.Canvas.FPS = defaultFPS
	}
	if c.Canvas.DotRadius <= 0 {
		c.Canvas.DotRadius = defaultRadius
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = defaultBackground
	}
	if _, err := ParseColor(c.Canvas.Background); err != nil {
		return fmt.Errorf("canvas background %q: %w", c.Canvas.Background, err)
	}

	if c.Transition.DurationFrames <= 0 {
		if c.Transition.Seconds <= 0 {
			c.Transition.Seconds = defaultSeconds
		}
		c.Transition.DurationFrames = int(math.Round(c.Transition.Seconds * float64(c.Canvas.FPS)))
		if c.Transition.DurationFrames < 1 {
			c.Transition.DurationFrames = 1
		}
	}
	if c.Transition.MaxDelayFrames < 0 {
		return fmt.Errorf("transition max_delay_frames %d: must not be negative", c.Transition.MaxDelayFrames)
	}
	if c.Transition.MaxDelayFrames == 0 {
		c.Transition.MaxDelayFrames = c.Canvas.FPS
	}
	if _, err := EasingByName(c.Transition.Easing); err != nil {
		return fmt.Errorf("transition easing: %w", err)
	}

	if c.Sampling.Threshold < 0 || c.Sampling.Threshold > 256 {
		return fmt.Errorf("sampling threshold %d: must be within [0, 256]", c.Sampling.Threshold)
	}
	if c.Sampling.Spacing <= 0 {
		c.Sampling.Spacing = defaultSpacing
	}

	if len(c.Formations) == 0 {
		return ErrNoFormations
	}
	var errs []error
	for i := range c.Formations {
		f := &c.Formations[i]
		if f.Name == "" {
			f.Name = fmt.Sprintf("formation%d", i+1)
		}
		if f.Image == "" {
			errs = append(errs, fmt.Errorf("formation %d (%s): no image", i, f.Name))
		}
		if f.Spacing < 0 {
			errs = append(errs, fmt.Errorf("formation %d (%s): spacing %d: %w", i, f.Name, f.Spacing, ErrInvalidSpacing))
		}
		if f.Spacing == 0 {
			f.Spacing = c.Sampling.Spacing
		}
		if f.Color == "" {
			f.Color = DefaultPalette[i%len(DefaultPalette)]
		}
		if _, err := ParseColor(f.Color); err != nil {
			errs = append(errs, fmt.Errorf("formation %d (%s): color %q: %w", i, f.Name, f.Color, err))
		}
	}
	return errors.Join(errs...)
}

// EngineConfig projects the values an Engine consumes. Call Validate first.
func (c Config) EngineConfig() (EngineConfig, error) {
	easing, err := EasingByName(c.Transition.Easing)
	if err != nil {
		return EngineConfig{}, err
	}
	return EngineConfig{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		Duration:    c.Transition.DurationFrames,
		MaxDelay:    c.Transition.MaxDelayFrames,
		Easing:      easing,
		RestartFade: c.Transition.RestartFade,
	}, nil
}

// Sources converts the formation list into catalog sources.
func (c Config) Sources() ([]FormationSource, error) {
	out := make([]FormationSource, len(c.Formations))
	for i, f := range c.Formations {
		col, err := ParseColor(f.Color)
		if err != nil {
			return nil, fmt.Errorf("formation %d (%s): color %q: %w", i, f.Name, f.Color, err)
		}
		spacing := f.Spacing
		if spacing == 0 {
			spacing = c.Sampling.Spacing
		}
		out[i] = FormationSource{Name: f.Name, Image: f.Image, Spacing: spacing, Color: col}
	}
	return out, nil
}

// BackgroundColor returns the parsed canvas background.
func (c Config) BackgroundColor() Color {
	col, err := ParseColor(c.Canvas.Background)
	if err != nil {
		return Color{R: 0xEE, G: 0xEE, B: 0xEE}
	}
	return col
}
