package game

import (
	"log"

	"github.com/ayusman/obakehunt/internal/gesture"
)

// State is the screen the session is on.
type State int

const (
	StateConnecting State = iota
	StateTitle
	StatePlay
	StateResult
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateTitle:
		return "title"
	case StatePlay:
		return "play"
	case StateResult:
		return "result"
	default:
		return "unknown"
	}
}

// Input is the pointer and keyboard state sampled for one tick.
type Input struct {
	// Click is set on the tick the mouse button is released.
	Click  bool
	ClickX int
	ClickY int

	// Reset is held while the reset key is down.
	Reset bool
}

// RoundStats summarizes one round.
type RoundStats struct {
	Score       int
	Waves       int
	Shots       int
	Hits        int
	Sensitivity float64
}

// RoundRecorder is told when rounds start and finish. Abandoned rounds are
// never finished.
type RoundRecorder interface {
	Begin()
	Finish(stats RoundStats)
}

// Session is the game state machine. It owns all game state and is driven
// by one Update call per tick from a single goroutine.
type Session struct {
	cfg      Config
	rng      Rand
	source   gesture.Source
	tracker  *gesture.Tracker
	recorder RoundRecorder

	// OnSensitivity is called from Update when the player changes the
	// sensitivity on the title screen. It must not block.
	OnSensitivity func(v float64)

	state State
	tick  int

	menu      *TitleMenu
	result    ResultMenu
	obake     []*Obake
	wave      *Wave
	magazine  *Magazine
	score     *Score
	particles *Particles
	shake     *Shake
	stats     RoundStats

	sensCh chan float64
}

// NewSession creates a session waiting for the tracker to connect.
// recorder may be nil.
func NewSession(cfg Config, tracker *gesture.Tracker, source gesture.Source, rng Rand, recorder RoundRecorder) *Session {
	s := &Session{
		cfg:       cfg,
		rng:       rng,
		source:    source,
		tracker:   tracker,
		recorder:  recorder,
		state:     StateConnecting,
		menu:      NewTitleMenu(cfg.Sensitivity, cfg.Arena),
		result:    NewResultMenu(cfg.Arena),
		wave:      NewWave(cfg.Wave, cfg.Obake, cfg.Arena),
		magazine:  NewMagazine(cfg.Magazine),
		score:     NewScore(cfg.Effects.PopupTicks),
		particles: NewParticles(cfg.Effects, cfg.Arena, cfg.Obake.Height),
		shake:     NewShake(cfg.Effects.ShakeTicks, cfg.Effects.ShakeBreadth),
		sensCh:    make(chan float64, 1),
	}
	tracker.SetSensitivity(s.menu.Sensitivity())
	return s
}

// RequestSensitivity queues a sensitivity change from another goroutine.
// It is applied at the start of the next Update; only the newest value is kept.
func (s *Session) RequestSensitivity(v float64) {
	for {
		select {
		case s.sensCh <- v:
			return
		default:
		}
		select {
		case <-s.sensCh:
		default:
		}
	}
}

func (s *Session) drainSensitivity() {
	select {
	case v := <-s.sensCh:
		s.menu.SetSensitivity(v)
		s.tracker.SetSensitivity(s.menu.Sensitivity())
	default:
	}
}

// Update advances the game by one tick.
func (s *Session) Update(in Input) {
	s.tick++
	s.drainSensitivity()

	if s.state == StateConnecting {
		s.tracker.Poll(s.source)
		if s.tracker.Connected() {
			w, h := s.tracker.VideoSize()
			log.Printf("Tracker connected: %dx%d", w, h)
			s.state = StateTitle
		}
		return
	}

	s.tracker.Poll(s.source)

	if s.state == StateTitle {
		s.updateTitle(in)
	}
	if s.state == StatePlay {
		if in.Reset {
			log.Println("Round abandoned")
			s.reset()
			s.state = StateTitle
			return
		}
		s.updatePlay()
	}
	if s.state == StateResult {
		s.updateResult(in)
	}
}

func (s *Session) updateTitle(in Input) {
	if in.Click && s.selectTitle(in.ClickX, in.ClickY) {
		s.startRound()
		return
	}
	if x, y, ok := s.tracker.Selected(); ok && s.selectTitle(x, y) {
		s.startRound()
	}
}

func (s *Session) selectTitle(x, y int) bool {
	before := s.menu.Sensitivity()
	start := s.menu.Select(x, y)
	if after := s.menu.Sensitivity(); after != before {
		s.tracker.SetSensitivity(after)
		if s.OnSensitivity != nil {
			s.OnSensitivity(after)
		}
	}
	return start
}

func (s *Session) startRound() {
	s.state = StatePlay
	s.stats = RoundStats{Sensitivity: s.menu.Sensitivity()}
	if s.recorder != nil {
		s.recorder.Begin()
	}
	log.Printf("Round started (sensitivity %.1f)", s.stats.Sensitivity)
}

func (s *Session) updatePlay() {
	s.magazine.Update()

	if pos, ok := s.tracker.Shot(); ok && s.magazine.Shoot() {
		s.stats.Shots++
		for _, o := range s.obake {
			if o.Shot(pos, s.score, s.particles) {
				s.stats.Hits++
			}
		}
		s.shake.Start()
	}
	if s.tracker.Reloading() {
		s.magazine.Reload()
	}

	alive := s.obake[:0]
	for _, o := range s.obake {
		o.Update()
		if o.Active() {
			alive = append(alive, o)
		}
	}
	clear(s.obake[len(alive):])
	s.obake = alive

	if len(s.obake) == 0 {
		if next := s.wave.Spawn(s.rng); len(next) > 0 {
			s.obake = append(s.obake, next...)
		} else {
			s.finishRound()
		}
	}

	s.score.Update()
	s.particles.UpdateDead()
	s.shake.Update(s.rng)
}

func (s *Session) finishRound() {
	s.state = StateResult
	s.stats.Score = s.score.Total()
	s.stats.Waves = s.wave.Index()
	if s.recorder != nil {
		s.recorder.Finish(s.stats)
	}
	log.Printf("Round finished: score %d, hits %d/%d", s.stats.Score, s.stats.Hits, s.stats.Shots)
}

func (s *Session) updateResult(in Input) {
	s.particles.UpdateAmbient(s.tick, s.score.Total(), s.rng)

	back := in.Click && s.result.Select(in.ClickX, in.ClickY)
	if x, y, ok := s.tracker.Selected(); ok && s.result.Select(x, y) {
		back = true
	}
	if back {
		s.reset()
		s.state = StateTitle
	}
}

func (s *Session) reset() {
	s.obake = nil
	s.particles.Reset()
	s.magazine.Reset()
	s.wave.Reset()
	s.score.Reset()
	s.shake.Reset()
}

func (s *Session) State() State { return s.state }
func (s *Session) Tick() int { return s.tick }
func (s *Session) Obake() []*Obake { return s.obake }
func (s *Session) Wave() *Wave { return s.wave }
func (s *Session) Magazine() *Magazine { return s.magazine }
func (s *Session) Score() *Score { return s.score }
func (s *Session) Particles() *Particles { return s.particles }
func (s *Session) Shake() *Shake { return s.shake }
func (s *Session) Tracker() *gesture.Tracker { return s.tracker }
func (s *Session) Menu() *TitleMenu { return s.menu }
func (s *Session) Result() ResultMenu { return s.result }
func (s *Session) Sensitivity() float64 { return s.menu.Sensitivity() }
func (s *Session) RoundStats() RoundStats { return s.stats }
func (s *Session) Arena() Arena { return s.cfg.Arena }

// ObakeSize is the target sprite size in canvas pixels.
func (s *Session) ObakeSize() (w, h int) { return s.cfg.Obake.Width, s.cfg.Obake.Height }
