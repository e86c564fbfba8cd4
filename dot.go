package dotswarm

// dot holds per-dot transition state. Unexported; owned and advanced by Engine.
type dot struct {
	x, y    float64
	alpha   float64
	color   Color
	startX  float64
	startY  float64
	targetX float64
	targetY float64

	startAlpha  float64
	targetAlpha float64
	startColor  Color
	targetColor Color

	delay int // frames to wait before this dot's timeline starts
	phase Phase
}

// retarget starts a new timeline from the dot's current values toward p and
// c. With restartFade the opacity restarts from zero instead of the current
// value.
func (d *dot) retarget(p Point, c Color, delay int, restartFade bool) {
	d.startX, d.startY = d.x, d.y
	d.targetX, d.targetY = float64(p.X), float64(p.Y)
	d.startAlpha = d.alpha
	if restartFade {
		d.startAlpha = 0
	}
	d.targetAlpha = 1
	d.startColor = d.color
	d.targetColor = c
	d.delay = delay
	d.phase = PhasePending
}

// step recomputes the dot for the shared transition frame and returns its
// phase.
func (d *dot) step(frame, duration int, easing Easing) Phase {
	elapsed := frame - d.delay
	switch {
	case elapsed < 0:
		d.phase = PhasePending
	case elapsed >= duration:
		d.settle()
	default:
		k := easing(float64(elapsed) / float64(duration))
		d.x = lerp(d.startX, d.targetX, k)
		d.y = lerp(d.startY, d.targetY, k)
		d.alpha = clamp01(lerp(d.startAlpha, d.targetAlpha, k))
		d.color = Color{
			R: lerpChannel(d.startColor.R, d.targetColor.R, k),
			G: lerpChannel(d.startColor.G, d.targetColor.G, k),
			B: lerpChannel(d.startColor.B, d.targetColor.B, k),
		}
		d.phase = PhaseAnimating
	}
	return d.phase
}

// settle snaps every value to its target.
func (d *dot) settle() {
	d.x, d.y = d.targetX, d.targetY
	d.alpha = d.targetAlpha
	d.color = d.targetColor
	d.phase = PhaseSettled
}

func (d *dot) state() DotState {
	return DotState{X: d.x, Y: d.y, Alpha: d.alpha, Color: d.color, Phase: d.phase}
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpChannel blends two 8-bit channels and truncates toward zero, which
// biases results by at most one unit.
func lerpChannel(a, b uint8, t float64) uint8 {
	return clampChannel(int(float64(a) + float64(int(b)-int(a))*t))
}
