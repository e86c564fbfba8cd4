package cli

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"

	"github.com/phanxgames/dotswarm"
	"github.com/phanxgames/dotswarm/ecs"
)

const windowTitle = "dotswarm"

func newPlayCmd(opts *options) *cobra.Command {
	var (
		autoplay bool
		hud      bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Open a window and play the show (space or click: next formation)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadShow(cmd.Context(), opts)
			if err != nil {
				return err
			}
			p := newPlayer(s, autoplay, hud)

			ebiten.SetWindowTitle(windowTitle)
			ebiten.SetWindowSize(s.cfg.Canvas.Width, s.cfg.Canvas.Height)
			ebiten.SetTPS(s.cfg.Canvas.FPS)
			return ebiten.RunGame(p)
		},
	}
	cmd.Flags().BoolVar(&autoplay, "autoplay", false, "start the next formation as soon as one settles")
	cmd.Flags().BoolVar(&hud, "hud", false, "show FPS and transition stats (toggle with H)")
	return cmd
}

// player drives the engine from ebiten's fixed-rate Update and renders a
// snapshot in Draw.
type player struct {
	show     *show
	engine   *dotswarm.Engine
	running  bool
	autoplay bool

	bg     color.NRGBA
	radius float32
	buf    []dotswarm.DotState

	hud        bool
	hudText    string
	hudElapsed float64

	// Transition events are queued in world by the engine and drained once
	// per Update on the game goroutine.
	world  donburi.World
	status string
}

func newPlayer(s *show, autoplay, hud bool) *player {
	p := &player{
		show:     s,
		engine:   s.engine,
		autoplay: autoplay,
		bg:       s.cfg.BackgroundColor().NRGBA(1),
		radius:   float32(s.cfg.Canvas.DotRadius),
		hud:      hud,
		world:    donburi.NewWorld(),
		status:   "press space",
	}
	ecs.TransitionEventType.Subscribe(p.world, p.onTransition)
	s.engine.SetEventSink(ecs.NewDonburiSink(p.world))
	return p
}

func (p *player) onTransition(w donburi.World, ev dotswarm.TransitionEvent) {
	switch ev.Type {
	case dotswarm.EventTransitionStarted:
		p.status = "morphing to " + ev.Name
	case dotswarm.EventTransitionSettled:
		p.status = fmt.Sprintf("%s settled after %d frames", ev.Name, ev.Frame)
	}
}

// Update handles input and advances one frame while a transition runs.
func (p *player) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		p.hud = !p.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.engine.BeginNext()
		p.running = true
	}

	if p.running && p.engine.AdvanceFrame() {
		p.running = false
		if p.autoplay {
			p.engine.BeginNext()
			p.running = true
		}
	}

	ecs.TransitionEventType.ProcessEvents(p.world)

	if p.hud {
		p.updateHUD(1 / float64(ebiten.TPS()))
	}
	return nil
}

// updateHUD refreshes the overlay text about twice a second.
func (p *player) updateHUD(dt float64) {
	p.hudElapsed += dt
	if p.hudText != "" && p.hudElapsed < 0.5 {
		return
	}
	p.hudElapsed = 0
	cat := p.engine.Catalog()
	k := p.engine.Formation()
	p.hudText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nformation: %d/%d %s\nframe: %d\ndots: %d\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		k+1, cat.Len(), cat.Formation(k).Name,
		p.engine.Frame(), p.engine.Len(), p.status)
}

// Draw renders every visible dot as a filled circle.
func (p *player) Draw(screen *ebiten.Image) {
	screen.Fill(p.bg)
	p.buf = p.engine.Snapshot(p.buf[:0])
	for _, d := range p.buf {
		if d.Alpha <= 0 {
			continue
		}
		vector.DrawFilledCircle(screen, float32(d.X), float32(d.Y), p.radius, d.Color.NRGBA(d.Alpha), true)
	}
	if p.hud {
		ebitenutil.DebugPrint(screen, p.hudText)
	}
}

// Layout keeps the canvas at its configured size; ebiten scales the window.
func (p *player) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.show.cfg.Canvas.Width, p.show.cfg.Canvas.Height
}
