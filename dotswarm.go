package dotswarm

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is an integer coordinate in source-image space. Sampled points are
// relative to the top-left of the image they came from.
type Point struct {
	X, Y int
}

// Color is an opaque RGB color with 8-bit channels. It is a plain value:
// interpolation always produces a new Color.
type Color struct {
	R, G, B uint8
}

// ColorBlack is the first formation color used by the default palette.
var ColorBlack = Color{}

// ParseColor parses a hex color such as "#FF6B6B" or "#f00".
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		// colorful only accepts the leading '#' form.
		if len(hex) > 0 && hex[0] != '#' {
			c, err = colorful.Hex("#" + hex)
		}
		if err != nil {
			return Color{}, err
		}
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// NRGBA returns the color with the given opacity in [0, 1] as a
// non-premultiplied color.NRGBA, ready for renderers.
func (c Color) NRGBA(alpha float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(clamp01(alpha)*255 + 0.5)}
}

// Phase is the per-dot state during a transition.
type Phase uint8

const (
	PhasePending   Phase = iota // waiting out its delay; values frozen at start
	PhaseAnimating              // interpolating toward the target
	PhaseSettled                // current values equal the target exactly
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseAnimating:
		return "animating"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// DotState is the read-only view of one dot handed to renderers.
type DotState struct {
	X, Y  float64
	Alpha float64
	Color Color
	Phase Phase
}

// EventType identifies a kind of transition lifecycle event.
type EventType uint8

const (
	EventTransitionStarted EventType = iota // fires from BeginTransition
	EventTransitionSettled                  // fires once when every dot has settled
)

// TransitionEvent describes a transition lifecycle change.
type TransitionEvent struct {
	Type      EventType
	Formation int
	Name      string
	Frame     int
	Dots      int
}

// EventSink receives transition lifecycle events from an Engine.
type EventSink interface {
	EmitEvent(event TransitionEvent)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
