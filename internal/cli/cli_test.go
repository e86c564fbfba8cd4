package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/phanxgames/dotswarm"
)

// writeShow writes two small PNG formations and a config that uses them.
func writeShow(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i, n := range []int{6, 4} {
		img := image.NewNRGBA(image.Rect(0, 0, 20, 10))
		for p := range img.Pix {
			img.Pix[p] = 255
		}
		for x := range n {
			img.SetNRGBA(x*2, 3, color.NRGBA{A: 255})
		}
		f, err := os.Create(filepath.Join(dir, []string{"a.png", "b.png"}[i]))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, img); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}
	cfg := `
[canvas]
width = 20
height = 10

[transition]
duration_frames = 5
max_delay_frames = 3
seed = 11

[sampling]
spacing = 1

[[formation]]
name = "six"
image = "a.png"

[[formation]]
name = "four"
image = "b.png"
`
	path := filepath.Join(dir, "show.toml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveSeed(t *testing.T) {
	cfg := dotswarm.DefaultConfig()
	cfg.Transition.Seed = 5
	if got := resolveSeed(&options{seed: 9}, cfg); got != 9 {
		t.Errorf("flag seed = %d, want 9", got)
	}
	if got := resolveSeed(&options{}, cfg); got != 5 {
		t.Errorf("config seed = %d, want 5", got)
	}
}

func TestLoadShow(t *testing.T) {
	opts := &options{configPath: writeShow(t)}
	s, err := loadShow(context.Background(), opts)
	if err != nil {
		t.Fatalf("loadShow: %v", err)
	}
	if s.catalog.Len() != 2 || s.catalog.Size() != 4 {
		t.Errorf("catalog = %d formations of %d, want 2 of 4", s.catalog.Len(), s.catalog.Size())
	}
	if s.engine.Len() != 4 || s.seed != 11 {
		t.Errorf("engine dots = %d seed = %d, want 4 and 11", s.engine.Len(), s.seed)
	}
}

func TestLoadShowMissingImage(t *testing.T) {
	path := writeShow(t)
	if err := os.Remove(filepath.Join(filepath.Dir(path), "b.png")); err != nil {
		t.Fatal(err)
	}
	_, err := loadShow(context.Background(), &options{configPath: path})
	if err == nil || !strings.Contains(err.Error(), "b.png") {
		t.Errorf("err = %v, want error naming b.png", err)
	}
}

func TestDefaultScript(t *testing.T) {
	cat, err := dotswarm.NewCatalog(dotswarm.Formation{Name: "x"}, dotswarm.Formation{Name: "y"})
	if err != nil {
		t.Fatal(err)
	}
	var sc struct {
		Steps []map[string]any `json:"steps"`
	}
	if err := json.Unmarshal(defaultScript(cat, true), &sc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(sc.Steps) != 6 {
		t.Fatalf("steps = %d, want 6", len(sc.Steps))
	}
	if sc.Steps[1]["capture"] != true || sc.Steps[5]["label"] != "y" {
		t.Errorf("steps = %v", sc.Steps)
	}
	if _, err := dotswarm.LoadScript(defaultScript(cat, false)); err != nil {
		t.Errorf("default script does not load: %v", err)
	}
}

func TestExportCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frames")
	root := RootCommand()
	root.SetArgs([]string{"export", "--config", writeShow(t), "--out", out})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("export: %v", err)
	}
	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"00000_six.png", "00001_four.png"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", names, want)
	}
}

func TestSampleCommand(t *testing.T) {
	var stdout bytes.Buffer
	root := RootCommand()
	root.SetArgs([]string{"sample", "--config", writeShow(t)})
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("sample: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"six", "four", "equalized population: 4 dots"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBlend(t *testing.T) {
	bg := dotswarm.Color{R: 200, G: 200, B: 200}
	fg := dotswarm.Color{R: 0, G: 100, B: 255}
	if got := blend(bg, fg, 0); got != bg {
		t.Errorf("blend alpha 0 = %v, want %v", got, bg)
	}
	if got := blend(bg, fg, 1); got != fg {
		t.Errorf("blend alpha 1 = %v, want %v", got, fg)
	}
	if got := blend(bg, fg, 0.5); got != (dotswarm.Color{R: 100, G: 150, B: 228}) {
		t.Errorf("blend alpha 0.5 = %v", got)
	}
}

func TestTerminalNextRequests(t *testing.T) {
	s, err := loadShow(context.Background(), &options{configPath: writeShow(t)})
	if err != nil {
		t.Fatal(err)
	}
	term := newTerminal(nil, s)

	// Repeated key presses before the loop runs collapse into one request.
	term.requestNext()
	term.requestNext()
	if term.running {
		t.Fatal("requestNext started a transition off the frame loop")
	}
	<-term.next
	select {
	case <-term.next:
		t.Fatal("second request was queued, want it absorbed")
	default:
	}

	term.startNext()
	for i := 0; term.running; i++ {
		if i > 20 {
			t.Fatal("transition did not settle within 20 frames")
		}
		term.advance(false)
	}
	if s.engine.Formation() != 0 || !s.engine.Settled() {
		t.Errorf("formation = %d settled = %v, want 0 and true", s.engine.Formation(), s.engine.Settled())
	}
	term.advance(false)
	if term.running {
		t.Error("advance restarted a settled show without autoplay")
	}
}

func TestTerminalAutoplay(t *testing.T) {
	s, err := loadShow(context.Background(), &options{configPath: writeShow(t)})
	if err != nil {
		t.Fatal(err)
	}
	term := newTerminal(nil, s)
	term.startNext()
	for i := 0; s.engine.Formation() != 1; i++ {
		if i > 20 {
			t.Fatal("autoplay did not start formation 1 within 20 frames")
		}
		term.advance(true)
	}
	if !term.running || s.engine.Frame() != 0 {
		t.Errorf("running = %v frame = %d, want a fresh transition", term.running, s.engine.Frame())
	}
}
