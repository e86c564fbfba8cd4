package dotswarm

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFormations is returned when a catalog or equalization is requested
	// without any formation.
	ErrNoFormations = errors.New("dotswarm: no formations")

	// ErrInvalidSpacing is returned by Sample for a non-positive grid spacing.
	ErrInvalidSpacing = errors.New("dotswarm: grid spacing must be positive")

	// ErrUnknownFormation is returned by BeginTransition for an index outside
	// the catalog.
	ErrUnknownFormation = errors.New("dotswarm: unknown formation")

	// ErrMismatchedFormation is returned by NewCatalog when formations do not
	// all carry the same number of points.
	ErrMismatchedFormation = errors.New("dotswarm: formation point counts differ")
)

// ResourceError reports a source image that is missing, unreadable or empty.
// Catalog construction stops at the first one.
type ResourceError struct {
	Formation int    // formation index, -1 when not known
	Source    string // file path or other identifier, may be empty
	Err       error
}

func (e *ResourceError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("dotswarm: formation %d: image %q: %v", e.Formation, e.Source, e.Err)
	}
	return fmt.Sprintf("dotswarm: formation %d: image: %v", e.Formation, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// DegenerateInputError reports a formation whose sampled point set is empty,
// which forces every equalized formation (and the population) to zero size.
// It is not fatal: an engine over an empty population is valid and inert.
type DegenerateInputError struct {
	Formation int
	Name      string
}

func (e *DegenerateInputError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("dotswarm: formation %d (%s) sampled no points", e.Formation, e.Name)
	}
	return fmt.Sprintf("dotswarm: formation %d sampled no points", e.Formation)
}
