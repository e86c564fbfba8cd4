package dotswarm

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
)

// Formation is one shape the swarm can assume: an ordered point list plus
// the color every dot takes on while moving into it.
type Formation struct {
	Name   string
	Points []Point
	Color  Color
}

// Catalog is the ordered, immutable set of formations an Engine transitions
// between. Every formation holds exactly Size points.
type Catalog struct {
	formations []Formation
	size       int
	degenerate *DegenerateInputError
}

// NewCatalog builds a catalog from already equalized formations. All
// formations must have the same number of points.
func NewCatalog(formations ...Formation) (*Catalog, error) {
	if len(formations) == 0 {
		return nil, ErrNoFormations
	}
	n := len(formations[0].Points)
	for i, f := range formations {
		if len(f.Points) != n {
			return nil, fmt.Errorf("formation %d has %d points, formation 0 has %d: %w",
				i, len(f.Points), n, ErrMismatchedFormation)
		}
	}
	c := &Catalog{formations: make([]Formation, len(formations)), size: n}
	copy(c.formations, formations)
	return c, nil
}

// Len returns the number of formations.
func (c *Catalog) Len() int {
	return len(c.formations)
}

// Size returns N, the number of points in every formation.
func (c *Catalog) Size() int {
	return c.size
}

// Formation returns formation i. The Points slice MUST NOT be mutated.
func (c *Catalog) Formation(i int) Formation {
	return c.formations[i]
}

// Degenerate returns the *DegenerateInputError recorded while building the
// catalog, or nil when every formation sampled at least one point.
func (c *Catalog) Degenerate() error {
	if c.degenerate == nil {
		return nil
	}
	return c.degenerate
}

// FormationSource describes how to derive one formation from an image.
type FormationSource struct {
	Name    string
	Image   string // passed to the ImageProvider as its source argument
	Spacing int
	Color   Color
}

// BuildCatalog loads, samples and equalizes every source in order. Any
// missing or unreadable image aborts construction with a *ResourceError.
// A source that samples no points does not fail the build: the catalog is
// returned with Size 0 and Degenerate reporting the offending formation.
func BuildCatalog(ctx context.Context, rng *rand.Rand, provider ImageProvider, sources []FormationSource, threshold int) (*Catalog, error) {
	if len(sources) == 0 {
		return nil, ErrNoFormations
	}
	log := Logger()

	raw := make([][]Point, len(sources))
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := provider.Image(ctx, i, src.Image)
		if err != nil {
			var re *ResourceError
			if errors.As(err, &re) {
				return nil, err
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, &ResourceError{Formation: i, Source: src.Image, Err: err}
		}
		pts, err := Sample(img, src.Spacing, threshold)
		if err != nil {
			var re *ResourceError
			if errors.As(err, &re) {
				re.Formation, re.Source = i, src.Image
				return nil, re
			}
			return nil, fmt.Errorf("formation %d (%s): %w", i, src.Name, err)
		}
		log.Debug("sampled formation", "index", i, "name", src.Name, "points", len(pts), "spacing", src.Spacing)
		raw[i] = pts
	}

	sets, err := Equalize(rng, raw)
	var degenerate *DegenerateInputError
	if err != nil && !errors.As(err, &degenerate) {
		return nil, err
	}

	formations := make([]Formation, len(sources))
	for i, src := range sources {
		formations[i] = Formation{Name: src.Name, Points: sets[i], Color: src.Color}
	}
	c, err := NewCatalog(formations...)
	if err != nil {
		return nil, err
	}
	if degenerate != nil {
		degenerate.Name = sources[degenerate.Formation].Name
		c.degenerate = degenerate
		log.Warn("formation sampled no points, population will be empty",
			"index", degenerate.Formation, "name", degenerate.Name)
	}
	log.Debug("catalog built", "formations", c.Len(), "size", c.Size())
	return c, nil
}
