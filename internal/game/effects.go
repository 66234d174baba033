package game

// Corpse is the fading image of a ghost that was just shot.
type Corpse struct {
	X, Y        float64
	FacingRight bool
	Age         int
}

// Drifter is a ghost floating up behind the result screen.
type Drifter struct {
	X, Y        float64
	FacingRight bool
	// Color is a palette index in [1,15].
	Color int
}

// Particles owns the purely visual ghosts.
type Particles struct {
	cfg     EffectsConfig
	arena   Arena
	spriteH float64

	corpses  []Corpse
	drifters []Drifter
}

// NewParticles creates an empty particle set.
func NewParticles(cfg EffectsConfig, arena Arena, spriteH int) *Particles {
	return &Particles{cfg: cfg, arena: arena, spriteH: float64(spriteH)}
}

// AddDead leaves a corpse at (x, y).
func (p *Particles) AddDead(x, y float64, facingRight bool) {
	p.corpses = append(p.corpses, Corpse{X: x, Y: y, FacingRight: facingRight})
}

// UpdateDead ages corpses and drops the expired ones.
func (p *Particles) UpdateDead() {
	kept := p.corpses[:0]
	for _, c := range p.corpses {
		c.Age++
		if c.Age < p.cfg.DeadTicks {
			kept = append(kept, c)
		}
	}
	p.corpses = kept
}

// CorpseAlpha is the corpse opacity in [0,1], fading with age.
func (p *Particles) CorpseAlpha(c Corpse) float64 {
	if p.cfg.DeadTicks <= 0 {
		return 0
	}
	a := float64(p.cfg.DeadTicks-c.Age)/float64(p.cfg.DeadTicks) + 0.1
	return min(max(a, 0), 1)
}

// UpdateAmbient moves drifters up and, every AmbientInterval ticks, spawns
// one with probability total/AmbientMaxScore.
func (p *Particles) UpdateAmbient(tick, total int, rng Rand) {
	if p.cfg.AmbientInterval > 0 && tick%p.cfg.AmbientInterval == 0 &&
		rng.Float64() < float64(total)/p.cfg.AmbientMaxScore {
		p.drifters = append(p.drifters, Drifter{
			X:           float64(intBetween(rng, 0, p.arena.W)),
			Y:           float64(p.arena.H),
			FacingRight: rng.Float64() < 0.5,
			Color:       intBetween(rng, 1, 15),
		})
	}

	kept := p.drifters[:0]
	for _, d := range p.drifters {
		d.Y -= p.cfg.AmbientSpeed
		if d.Y+p.spriteH >= 0 {
			kept = append(kept, d)
		}
	}
	p.drifters = kept
}

func (p *Particles) Corpses() []Corpse { return p.corpses }
func (p *Particles) Drifters() []Drifter { return p.drifters }

// Reset drops every particle.
func (p *Particles) Reset() {
	p.corpses = nil
	p.drifters = nil
}

// Shake is the screen shake after a shot. The offset decays linearly.
type Shake struct {
	ticks   int
	breadth int
	count   int
	dx, dy  float64
}

// NewShake creates an idle shake.
func NewShake(ticks, breadth int) *Shake {
	return &Shake{ticks: ticks, breadth: breadth}
}

// Start restarts the shake at full strength.
func (s *Shake) Start() { s.count = s.ticks }

// Update decays the shake and rolls a new offset.
func (s *Shake) Update(rng Rand) {
	if s.count > 0 {
		s.count--
	}
	if s.ticks <= 0 {
		s.dx, s.dy = 0, 0
		return
	}
	scale := float64(s.count) / float64(s.ticks)
	s.dx = float64(intBetween(rng, -s.breadth, s.breadth)) * scale
	s.dy = float64(intBetween(rng, -s.breadth, s.breadth)) * scale
}

// Offset is the camera displacement to apply this frame.
func (s *Shake) Offset() (dx, dy float64) { return s.dx, s.dy }

// Active reports whether the shake is still running.
func (s *Shake) Active() bool { return s.count > 0 }

// Reset stops the shake.
func (s *Shake) Reset() {
	s.count = 0
	s.dx, s.dy = 0, 0
}
