package dotswarm

import (
	"context"
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a show script.
type scriptStep struct {
	Action    string `json:"action"`
	Formation int    `json:"formation,omitempty"`
	Frames    int    `json:"frames,omitempty"`
	Label     string `json:"label,omitempty"`
	// Capture takes a snapshot after every frame of an advance or settle step.
	Capture bool `json:"capture,omitempty"`
}

// script is the top-level JSON structure for a show script.
type script struct {
	Steps []scriptStep `json:"steps"`
}

// SnapshotFunc receives the snapshots a Script takes. dots is reused between
// calls and must not be retained.
type SnapshotFunc func(label string, frame int, dots []DotState) error

// Script drives an Engine headlessly from a JSON step list, one frame per
// Step call. Supported actions:
//
//	{"action": "begin", "formation": 2}        start a transition to formation 2
//	{"action": "next"}                         start the next formation in order
//	{"action": "advance", "frames": 30}        advance 30 frames
//	{"action": "settle"}                       advance until every dot settles
//	{"action": "snapshot", "label": "done"}    hand the population to the SnapshotFunc
//
// advance and settle accept "capture": true to snapshot every frame, labeled
// with the step label and the frame count.
type Script struct {
	steps   []scriptStep
	cursor  int
	pending *scriptStep // advance or settle in progress
	frames  int         // frames advanced by pending
	limit   int         // settle safety bound
	buf     []DotState
	done    bool
}

// LoadScript parses a JSON show script.
func LoadScript(jsonData []byte) (*Script, error) {
	var sc script
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "begin":
			if st.Formation < 0 {
				return nil, fmt.Errorf("parse script: step %d: negative formation %d", i, st.Formation)
			}
		case "advance":
			if st.Frames <= 0 {
				return nil, fmt.Errorf("parse script: step %d: advance needs frames > 0", i)
			}
		case "next", "settle", "snapshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: sc.Steps}, nil
}

// Done reports whether every step has been executed.
func (s *Script) Done() bool {
	return s.done
}

// Step executes the script for one frame.
func (s *Script) Step(e *Engine, fn SnapshotFunc) error {
	if s.done {
		return nil
	}
	if s.pending != nil {
		return s.advance(e, fn)
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return nil
	}

	st := &s.steps[s.cursor]
	s.cursor++

	var err error
	switch st.Action {
	case "begin":
		err = e.BeginTransition(st.Formation)
	case "next":
		e.BeginNext()
	case "snapshot":
		err = s.snapshot(e, fn, st.Label)
	case "advance", "settle":
		cfg := e.Config()
		s.pending = st
		s.frames = 0
		s.limit = cfg.MaxDelay - 1 + cfg.Duration
		return s.advance(e, fn)
	}
	s.checkDone()
	return err
}

// Run steps the script until it is done, ctx is canceled, or a step fails.
func (s *Script) Run(ctx context.Context, e *Engine, fn SnapshotFunc) error {
	for !s.done {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Step(e, fn); err != nil {
			return err
		}
	}
	return nil
}

func (s *Script) advance(e *Engine, fn SnapshotFunc) error {
	st := s.pending
	settled := e.AdvanceFrame()
	s.frames++

	var err error
	if st.Capture {
		err = s.snapshot(e, fn, fmt.Sprintf("%s%04d", st.Label, s.frames))
	}

	switch st.Action {
	case "advance":
		if s.frames >= st.Frames {
			s.pending = nil
		}
	case "settle":
		if settled || s.frames >= s.limit {
			s.pending = nil
		}
	}
	s.checkDone()
	return err
}

func (s *Script) snapshot(e *Engine, fn SnapshotFunc, label string) error {
	if fn == nil {
		return nil
	}
	s.buf = e.Snapshot(s.buf[:0])
	if err := fn(label, e.Frame(), s.buf); err != nil {
		return fmt.Errorf("snapshot %q: %w", label, err)
	}
	return nil
}

func (s *Script) checkDone() {
	if s.cursor >= len(s.steps) && s.pending == nil {
		s.done = true
	}
}
