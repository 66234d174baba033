package game

import "github.com/ayusman/obakehunt/internal/hand"

// Phase is the lifecycle stage of a target.
type Phase int

const (
	// PhaseWaiting is before the spawn delay has elapsed. Not drawn, not hittable.
	PhaseWaiting Phase = iota
	// PhaseAppearing is the fade-in. Drawn, not hittable, not moving.
	PhaseAppearing
	// PhaseActive targets move and can be shot.
	PhaseActive
	// PhaseDead targets were shot or left the arena. Terminal.
	PhaseDead
)

// Obake is a ghost target. It waits for its spawn delay, fades in, then
// weaves upward in a zigzag until it is shot or leaves the arena.
type Obake struct {
	cfg   ObakeConfig
	arena Arena
	rng   Rand

	X, Y   float64
	dx, dy float64

	delay    int
	count    int
	nextFlip int
	alive    bool
}

// NewObake places a target at (x, y) that appears after delay ticks.
// The initial lateral direction is chosen at random.
func NewObake(cfg ObakeConfig, arena Arena, x, y float64, delay int, rng Rand) *Obake {
	dx := cfg.LateralSpeed
	if rng.Float64() >= 0.5 {
		dx = -dx
	}
	return &Obake{
		cfg:   cfg,
		arena: arena,
		rng:   rng,
		X:     x,
		Y:     y,
		dx:    dx,
		dy:    -cfg.UpSpeed,
		delay: delay,
		alive: true,
	}
}

// Phase returns the current lifecycle stage.
func (o *Obake) Phase() Phase {
	switch {
	case !o.alive:
		return PhaseDead
	case o.count < o.delay:
		return PhaseWaiting
	case o.count < o.delay+o.cfg.AppearTime:
		return PhaseAppearing
	default:
		return PhaseActive
	}
}

// Active reports whether the target is still in play (not dead).
func (o *Obake) Active() bool { return o.alive }

// AppearFraction is the fade-in opacity in [0,1].
func (o *Obake) AppearFraction() float64 {
	if o.cfg.AppearTime <= 0 {
		return 1
	}
	f := float64(o.count-o.delay) / float64(o.cfg.AppearTime)
	return min(max(f, 0), 1)
}

// FacingRight reports whether the target is moving right.
func (o *Obake) FacingRight() bool { return o.dx >= 0 }

// Update advances one tick.
func (o *Obake) Update() {
	o.count++
	if o.Phase() != PhaseActive {
		return
	}

	dx, dy := o.dx, o.dy
	if o.count%(o.cfg.ZigzagDuration*2) < o.cfg.ZigzagDuration {
		o.X += dx + 0.5*(dx+dy)
		o.Y += dy + 0.5*(-dx+dy)
	} else {
		o.X += dx + 0.5*(dx-dy)
		o.Y += dy + 0.5*(dx+dy)
	}

	if o.nextFlip < o.count || o.atEdge() {
		o.dx = -o.dx
		o.nextFlip = o.count + intBetween(o.rng, o.cfg.MinFlip, o.cfg.MaxFlip)
	}

	if o.outside() {
		o.alive = false
	}
}

func (o *Obake) atEdge() bool {
	if o.dx < 0 {
		return o.X <= 0
	}
	return o.X+float64(o.cfg.Width) >= float64(o.arena.W)
}

func (o *Obake) outside() bool {
	w, h := float64(o.cfg.Width), float64(o.cfg.Height)
	inX := -w < o.X && o.X < float64(o.arena.W)
	inY := -h < o.Y && o.Y < float64(o.arena.H)
	return !(inX && inY)
}

// Shot resolves a shot at pos (normalized screen units). A hit scores,
// leaves a fading corpse, and kills the target. Only active targets can be hit.
func (o *Obake) Shot(pos hand.Point2, score *Score, fx *Particles) bool {
	if o.Phase() != PhaseActive {
		return false
	}
	sx := pos.X * float64(o.arena.W)
	sy := pos.Y * float64(o.arena.H)
	if !o.collides(sx, sy) {
		return false
	}

	score.Add(o.X, o.Y, o.cfg.HitScore)
	fx.AddDead(o.X, o.Y, o.FacingRight())
	o.alive = false
	return true
}

func (o *Obake) collides(sx, sy float64) bool {
	m := o.cfg.CollisionMargin
	rx, ry := sx-o.X, sy-o.Y
	return -m <= rx && rx < float64(o.cfg.Width)+m &&
		-m <= ry && ry < float64(o.cfg.Height)+m
}
