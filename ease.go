package dotswarm

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Easing maps linear progress t in [0, 1] to a blend factor. Easings used by
// an Engine must satisfy e(0) == 0 and e(1) == 1.
type Easing func(t float64) float64

// EaseInOutSine is the default transition curve, 0.5 - 0.5*cos(pi*t):
// a symmetric S-curve that starts and ends at rest. It is evaluated in
// float64 so channel truncation is stable at every frame.
func EaseInOutSine(t float64) float64 {
	return 0.5 - 0.5*math.Cos(math.Pi*t)
}

// FromTween adapts a gween easing function to an Easing over [0, 1].
func FromTween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// easings maps lookup keys to curves. Everything except the default comes
// from gween and is evaluated in float32.
var easings = map[string]Easing{
	"linear":     FromTween(ease.Linear),
	"inquad":     FromTween(ease.InQuad),
	"outquad":    FromTween(ease.OutQuad),
	"inoutquad":  FromTween(ease.InOutQuad),
	"incubic":    FromTween(ease.InCubic),
	"outcubic":   FromTween(ease.OutCubic),
	"inoutcubic": FromTween(ease.InOutCubic),
	"insine":     FromTween(ease.InSine),
	"outsine":    FromTween(ease.OutSine),
	"inoutsine":  EaseInOutSine,
	"outbounce":  FromTween(ease.OutBounce),
	"outelastic": FromTween(ease.OutElastic),
}

// EasingByName resolves an easing by case-insensitive name, for example
// "inOutSine" or "outCubic". The empty name and "inOutSine" both select
// EaseInOutSine.
func EasingByName(name string) (Easing, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(name))
	if key == "" {
		return EaseInOutSine, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q (known: %s)", name, strings.Join(EasingNames(), ", "))
	}
	return fn, nil
}

// EasingNames lists the names accepted by EasingByName.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for k := range easings {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
