package dotswarm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type capture struct {
	label string
	frame int
	n     int
}

func recordSnapshots(dst *[]capture) SnapshotFunc {
	return func(label string, frame int, dots []DotState) error {
		*dst = append(*dst, capture{label: label, frame: frame, n: len(dots)})
		return nil
	}
}

func TestLoadScript(t *testing.T) {
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "begin", "formation": 1},
		{"action": "advance", "frames": 3},
		{"action": "snapshot", "label": "mid"}
	]}`))
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if len(sc.steps) != 3 {
		t.Errorf("steps = %d, want 3", len(sc.steps))
	}
	if sc.Done() {
		t.Error("new script should not be done")
	}
}

func TestLoadScriptErrors(t *testing.T) {
	tests := []struct {
		name, json, want string
	}{
		{"invalid json", `{`, "parse script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, "unknown action"},
		{"advance zero", `{"steps": [{"action": "advance"}]}`, "frames > 0"},
		{"negative formation", `{"steps": [{"action": "begin", "formation": -1}]}`, "negative formation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScript([]byte(tt.json))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestScriptStepOneFramePerCall(t *testing.T) {
	e := newTestEngine(t, 5, 2, EngineConfig{Duration: 10, MaxDelay: 2})
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "next"},
		{"action": "advance", "frames": 4}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Step(e, nil); err != nil {
		t.Fatal(err)
	}
	for want := 1; want <= 4; want++ {
		if err := sc.Step(e, nil); err != nil {
			t.Fatal(err)
		}
		if e.Frame() != want {
			t.Fatalf("Frame = %d, want %d", e.Frame(), want)
		}
	}
	if !sc.Done() {
		t.Error("script should be done after its last frame")
	}
	if err := sc.Step(e, nil); err != nil || e.Frame() != 4 {
		t.Errorf("Step after done advanced the engine (frame %d, err %v)", e.Frame(), err)
	}
}

func TestScriptRunSettleAndSnapshot(t *testing.T) {
	e := newTestEngine(t, 6, 3, EngineConfig{Duration: 12, MaxDelay: 5})
	sc, err := LoadScript([]byte(`{"steps": [
		{"action": "begin", "formation": 2},
		{"action": "settle"},
		{"action": "snapshot", "label": "two"},
		{"action": "next"},
		{"action": "advance", "frames": 3, "capture": true, "label": "zero_"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var got []capture
	if err := sc.Run(context.Background(), e, recordSnapshots(&got)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := []string{"two", "zero_0001", "zero_0002", "zero_0003"}
	if len(got) != len(want) {
		t.Fatalf("snapshots = %+v, want labels %v", got, want)
	}
	for i, w := range want {
		if got[i].label != w || got[i].n != 6 {
			t.Errorf("snapshot %d = %+v, want label %q with 6 dots", i, got[i], w)
		}
	}
	if got[0].frame < 12 || got[0].frame > 16 {
		t.Errorf("settled at frame %d, want within [12, 16]", got[0].frame)
	}
	if e.Formation() != 0 {
		t.Errorf("Formation = %d, want 0 after next wraps", e.Formation())
	}
}

func TestScriptRunStopsOnError(t *testing.T) {
	e := newTestEngine(t, 2, 2, EngineConfig{Duration: 3})
	sc, err := LoadScript([]byte(`{"steps": [{"action": "begin", "formation": 9}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if err := sc.Run(context.Background(), e, nil); !errors.Is(err, ErrUnknownFormation) {
		t.Errorf("err = %v, want ErrUnknownFormation", err)
	}

	boom := errors.New("disk full")
	sc, _ = LoadScript([]byte(`{"steps": [{"action": "snapshot", "label": "x"}]}`))
	err = sc.Run(context.Background(), e, func(string, int, []DotState) error { return boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped snapshot error", err)
	}
}

func TestScriptRunCanceled(t *testing.T) {
	e := newTestEngine(t, 2, 2, EngineConfig{Duration: 1000})
	sc, _ := LoadScript([]byte(`{"steps": [{"action": "next"}, {"action": "settle"}]}`))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sc.Run(ctx, e, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
