package cli

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/dotswarm"
)

func newTermCmd(opts *options) *cobra.Command {
	var autoplay bool
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play the show in the terminal (space/enter: next formation, q: quit)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadShow(cmd.Context(), opts)
			if err != nil {
				return err
			}
			screen, err := tcell.NewScreen()
			if err != nil {
				return err
			}
			if err := screen.Init(); err != nil {
				return err
			}
			defer screen.Fini()
			return runTerminal(cmd.Context(), screen, s, autoplay)
		},
	}
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start the next formation as soon as one settles")
	return cmd
}

// terminal draws engine snapshots onto a tcell screen. Input is read on its
// own goroutine and only posts requests on next; the frame loop owns running
// and is the only caller that starts transitions.
type terminal struct {
	screen tcell.Screen
	engine *dotswarm.Engine
	canvas dotswarm.CanvasConfig
	bg     dotswarm.Color
	buf    []dotswarm.DotState

	next    chan struct{}
	running bool
}

func newTerminal(screen tcell.Screen, s *show) *terminal {
	return &terminal{
		screen: screen,
		engine: s.engine,
		canvas: s.cfg.Canvas,
		bg:     s.cfg.BackgroundColor(),
		next:   make(chan struct{}, 1),
	}
}

// requestNext asks the frame loop to start the next formation. A request
// already waiting absorbs this one.
func (t *terminal) requestNext() {
	select {
	case t.next <- struct{}{}:
	default:
	}
}

// startNext begins the next formation. Frame loop only.
func (t *terminal) startNext() {
	t.engine.BeginNext()
	t.running = true
}

// advance steps a running transition by one frame. Frame loop only.
func (t *terminal) advance(autoplay bool) {
	if !t.running || !t.engine.AdvanceFrame() {
		return
	}
	t.running = false
	if autoplay {
		t.startNext()
	}
}

func runTerminal(ctx context.Context, screen tcell.Screen, s *show, autoplay bool) error {
	t := newTerminal(screen, s)
	screen.SetStyle(tcell.StyleDefault.Background(rgb(t.bg)))
	screen.Clear()

	quit := make(chan struct{})
	go t.readInput(quit)

	ticker := time.NewTicker(time.Second / time.Duration(s.cfg.Canvas.FPS))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-quit:
			return nil
		case <-t.next:
			t.startNext()
		case <-ticker.C:
			t.advance(autoplay)
			t.draw()
		}
	}
}

// readInput polls terminal events until the screen is finalized or the user
// quits.
func (t *terminal) readInput(quit chan<- struct{}) {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				close(quit)
				return
			}
			if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
				t.requestNext()
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// draw maps canvas coordinates onto the terminal grid and blends each dot
// over the background by its opacity.
func (t *terminal) draw() {
	t.screen.Clear()
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	t.buf = t.engine.Snapshot(t.buf[:0])
	for _, d := range t.buf {
		if d.Alpha <= 0 {
			continue
		}
		x := int(d.X * float64(cols) / float64(t.canvas.Width))
		y := int(d.Y * float64(rows) / float64(t.canvas.Height))
		if x < 0 || x >= cols || y < 0 || y >= rows {
			continue
		}
		style := tcell.StyleDefault.
			Background(rgb(t.bg)).
			Foreground(rgb(blend(t.bg, d.Color, d.Alpha)))
		t.screen.SetContent(x, y, '●', nil, style)
	}
	t.screen.Show()
}

// blend composites fg over bg with the given opacity.
func blend(bg, fg dotswarm.Color, alpha float64) dotswarm.Color {
	mix := func(b, f uint8) uint8 {
		return uint8(float64(b) + (float64(f)-float64(b))*alpha + 0.5)
	}
	return dotswarm.Color{R: mix(bg.R, fg.R), G: mix(bg.G, fg.G), B: mix(bg.B, fg.B)}
}

func rgb(c dotswarm.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
