// Package frames renders dotswarm snapshots to PNG files without a window.
//
// A [Writer] draws every dot as a filled circle of a fixed radius on a solid
// background using the [gg] software rasterizer, then writes the frame as
// <dir>/<sequence>_<label>.png:
//
//	w := frames.NewWriter("out", 800, 600, 3, dotswarm.Color{R: 238, G: 238, B: 238})
//	path, err := w.Write("settled", engine.Snapshot(nil))
//
// [gg]: https://github.com/gogpu/gg
package frames

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/phanxgames/dotswarm"
)

// Writer renders snapshots and writes them as numbered PNG files.
type Writer struct {
	Dir           string
	Width, Height int
	Radius        float64
	Background    dotswarm.Color

	seq int
}

// NewWriter creates a Writer for a w x h canvas.
func NewWriter(dir string, w, h int, radius float64, bg dotswarm.Color) *Writer {
	return &Writer{Dir: dir, Width: w, Height: h, Radius: radius, Background: bg}
}

// Render draws dots onto a new image. Fully transparent dots are skipped.
func (w *Writer) Render(dots []dotswarm.DotState) (image.Image, error) {
	dc, err := w.draw(dots)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("frames: flush: %w", err)
	}
	return dc.Image(), nil
}

// Write renders dots and saves them as the next numbered PNG in Dir.
// It returns the path written.
func (w *Writer) Write(label string, dots []dotswarm.DotState) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("frames: mkdir %s: %w", w.Dir, err)
	}
	dc, err := w.draw(dots)
	if err != nil {
		return "", err
	}
	defer dc.Close()

	path := filepath.Join(w.Dir, fmt.Sprintf("%05d_%s.png", w.seq, sanitizeLabel(label)))
	if err := dc.SavePNG(path); err != nil {
		return "", fmt.Errorf("frames: save %s: %w", path, err)
	}
	w.seq++
	dotswarm.Logger().Debug("frame written", "path", path, "dots", len(dots))
	return path, nil
}

// Count returns the number of frames written so far.
func (w *Writer) Count() int {
	return w.seq
}

func (w *Writer) draw(dots []dotswarm.DotState) (*gg.Context, error) {
	if w.Width <= 0 || w.Height <= 0 {
		return nil, fmt.Errorf("frames: invalid canvas %dx%d", w.Width, w.Height)
	}
	dc := gg.NewContext(w.Width, w.Height)
	bg := w.Background
	dc.ClearWithColor(gg.RGB(channel(bg.R), channel(bg.G), channel(bg.B)))

	for _, d := range dots {
		if d.Alpha <= 0 {
			continue
		}
		dc.SetRGBA(channel(d.Color.R), channel(d.Color.G), channel(d.Color.B), d.Alpha)
		dc.DrawCircle(d.X, d.Y, w.Radius)
		if err := dc.Fill(); err != nil {
			_ = dc.Close()
			return nil, fmt.Errorf("frames: fill dot at (%.1f, %.1f): %w", d.X, d.Y, err)
		}
	}
	return dc, nil
}

func channel(v uint8) float64 {
	return float64(v) / 255
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
