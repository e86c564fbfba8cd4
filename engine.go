package dotswarm

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// EngineConfig holds the values an Engine consumes.
type EngineConfig struct {
	// Width and Height bound the random initial placement of dots.
	Width, Height int
	// Duration is the length of each dot's own timeline in frames.
	Duration int
	// MaxDelay bounds the per-dot start delay: delays are drawn from [0, MaxDelay).
	MaxDelay int
	// Easing shapes progress. Nil selects EaseInOutSine.
	Easing Easing
	// RestartFade makes every transition fade dots in from zero opacity
	// instead of continuing from their current opacity.
	RestartFade bool
}

// Engine owns the dot population and the shared transition clock. The
// population is created once from formation 0 and never resized.
//
// All methods are safe for concurrent use; BeginTransition, AdvanceFrame and
// Snapshot are serialized so a renderer never observes a partially advanced
// frame.
type Engine struct {
	mu      sync.Mutex
	cfg     EngineConfig
	catalog *Catalog
	rng     *rand.Rand
	dots    []dot

	frame     int // frames since the current transition began
	formation int // target formation of the current transition
	next      int // formation BeginNext starts
	settled   bool
	notified  bool // settled event already emitted for this transition

	sink  EventSink
	debug bool
}

// NewEngine creates the population from formation 0 of cat. Dots start at
// random positions on the canvas, fully transparent, in formation 0's color,
// heading for formation 0 with no delay.
func NewEngine(cat *Catalog, cfg EngineConfig, rng *rand.Rand) *Engine {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.Duration < 1 {
		cfg.Duration = 1
	}
	if cfg.MaxDelay < 1 {
		cfg.MaxDelay = 1
	}
	if cfg.Easing == nil {
		cfg.Easing = EaseInOutSine
	}

	e := &Engine{cfg: cfg, catalog: cat, rng: rng}
	first := cat.Formation(0)
	e.dots = make([]dot, len(first.Points))
	for i, p := range first.Points {
		x := float64(rng.IntN(cfg.Width))
		y := float64(rng.IntN(cfg.Height))
		e.dots[i] = dot{
			x: x, y: y,
			startX: x, startY: y,
			targetX: float64(p.X), targetY: float64(p.Y),
			targetAlpha: 1,
			color:       first.Color,
			startColor:  first.Color,
			targetColor: first.Color,
		}
	}
	e.settled = len(e.dots) == 0
	return e
}

// BeginTransition retargets every dot at formation k. Each dot restarts from
// its current (possibly mid-flight) values, so nothing jumps, and draws a
// fresh delay. The shared frame counter resets to zero.
func (e *Engine) BeginTransition(k int) error {
	e.mu.Lock()
	if k < 0 || k >= e.catalog.Len() {
		n := e.catalog.Len()
		e.mu.Unlock()
		return fmt.Errorf("begin transition %d of %d: %w", k, n, ErrUnknownFormation)
	}
	ev := e.beginLocked(k)
	sink := e.sink
	e.mu.Unlock()

	e.started(ev, sink)
	return nil
}

// BeginNext starts a transition to the next formation in catalog order,
// beginning with formation 0 and wrapping around, and returns its index.
func (e *Engine) BeginNext() int {
	e.mu.Lock()
	k := e.next
	ev := e.beginLocked(k)
	sink := e.sink
	e.mu.Unlock()

	e.started(ev, sink)
	return k
}

func (e *Engine) started(ev TransitionEvent, sink EventSink) {
	Logger().Debug("transition started", "formation", ev.Formation, "name", ev.Name, "dots", ev.Dots)
	if sink != nil {
		sink.EmitEvent(ev)
	}
}

func (e *Engine) beginLocked(k int) TransitionEvent {
	f := e.catalog.Formation(k)
	for i := range e.dots {
		delay := 0
		if e.cfg.MaxDelay > 1 {
			delay = e.rng.IntN(e.cfg.MaxDelay)
		}
		e.dots[i].retarget(f.Points[i], f.Color, delay, e.cfg.RestartFade)
	}
	e.frame = 0
	e.formation = k
	e.next = (k + 1) % e.catalog.Len()
	e.settled = len(e.dots) == 0
	e.notified = false
	return TransitionEvent{
		Type:      EventTransitionStarted,
		Formation: k,
		Name:      f.Name,
		Dots:      len(e.dots),
	}
}

// AdvanceFrame moves the transition clock forward one frame and updates
// every dot in index order. It reports whether all dots have settled.
// An empty population is always settled.
func (e *Engine) AdvanceFrame() bool {
	e.mu.Lock()

	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.frame++
	var stats debugStats
	for i := range e.dots {
		switch e.dots[i].step(e.frame, e.cfg.Duration, e.cfg.Easing) {
		case PhasePending:
			stats.pending++
		case PhaseAnimating:
			stats.animating++
		default:
			stats.settled++
		}
	}
	all := stats.pending == 0 && stats.animating == 0
	e.settled = all

	var (
		ev   TransitionEvent
		emit bool
	)
	if all && !e.notified {
		e.notified = true
		emit = true
		ev = TransitionEvent{
			Type:      EventTransitionSettled,
			Formation: e.formation,
			Name:      e.catalog.Formation(e.formation).Name,
			Frame:     e.frame,
			Dots:      len(e.dots),
		}
	}
	if e.debug {
		stats.frame = e.frame
		stats.updateTime = time.Since(t0)
		stats.debugLog()
	}
	sink := e.sink
	e.mu.Unlock()

	if emit {
		Logger().Debug("transition settled", "formation", ev.Formation, "name", ev.Name, "frames", ev.Frame)
		if sink != nil {
			sink.EmitEvent(ev)
		}
	}
	return all
}

// Snapshot appends the state of every dot, in index order, to dst and
// returns the extended slice.
func (e *Engine) Snapshot(dst []DotState) []DotState {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.dots {
		dst = append(dst, e.dots[i].state())
	}
	return dst
}

// Dot returns the state of dot i. It panics if i is outside [0, Len()),
// like a slice index; the engine stays usable after the panic is recovered.
func (e *Engine) Dot(i int) DotState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dots[i].state()
}

// Len returns the population size N.
func (e *Engine) Len() int {
	return len(e.dots)
}

// Frame returns the number of frames advanced since the current transition began.
func (e *Engine) Frame() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frame
}

// Formation returns the index of the formation the dots are heading for.
func (e *Engine) Formation() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.formation
}

// Settled reports whether the last AdvanceFrame left every dot settled.
func (e *Engine) Settled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settled
}

// Catalog returns the engine's formation catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Config returns the effective configuration, with defaults applied.
func (e *Engine) Config() EngineConfig {
	return e.cfg
}

// SetEventSink sets the optional receiver of transition lifecycle events.
// Events are delivered after the engine's lock is released, so a sink may
// call back into the engine.
func (e *Engine) SetEventSink(sink EventSink) {
	e.mu.Lock()
	e.sink = sink
	e.mu.Unlock()
}

// SetDebugMode enables or disables per-frame stats logging at debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.mu.Lock()
	e.debug = enabled
	e.mu.Unlock()
}
