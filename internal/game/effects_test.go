package game

import "testing"

func TestScore(t *testing.T) {
	s := NewScore(30)
	s.Add(10, 20, 1000)
	s.Add(50, 60, 1000)

	if s.Total() != 2000 {
		t.Errorf("Total() = %d, want 2000", s.Total())
	}
	if len(s.Popups()) != 2 {
		t.Fatalf("popups = %d, want 2", len(s.Popups()))
	}

	for i := 0; i < 10; i++ {
		s.Update()
	}
	if rise := s.Rise(s.Popups()[0]); rise != 5 {
		t.Errorf("Rise() = %d, want 5", rise)
	}

	for i := 0; i < 20; i++ {
		s.Update()
	}
	if len(s.Popups()) != 0 {
		t.Errorf("popups = %d after 30 ticks, want 0", len(s.Popups()))
	}
	if s.Total() != 2000 {
		t.Error("popups expiring must not change the total")
	}

	s.Reset()
	if s.Total() != 0 {
		t.Errorf("Total() = %d after reset", s.Total())
	}
}

func TestParticles(t *testing.T) {
	cfg := DefaultConfig()

	t.Run("corpses fade and expire", func(t *testing.T) {
		p := NewParticles(cfg.Effects, cfg.Arena, 32)
		p.AddDead(10, 10, true)

		if a := p.CorpseAlpha(p.Corpses()[0]); a != 1 {
			t.Errorf("fresh corpse alpha = %f, want 1", a)
		}
		for i := 0; i < 15; i++ {
			p.UpdateDead()
		}
		if a := p.CorpseAlpha(p.Corpses()[0]); a >= 1 || a <= 0 {
			t.Errorf("half-faded alpha = %f", a)
		}
		for i := 0; i < 15; i++ {
			p.UpdateDead()
		}
		if len(p.Corpses()) != 0 {
			t.Errorf("corpses = %d after 30 ticks", len(p.Corpses()))
		}
	})

	t.Run("no drifters with zero score", func(t *testing.T) {
		p := NewParticles(cfg.Effects, cfg.Arena, 32)
		rng := NewRand(1)
		for tick := 0; tick < 100; tick++ {
			p.UpdateAmbient(tick, 0, rng)
		}
		if len(p.Drifters()) != 0 {
			t.Errorf("drifters = %d, want 0", len(p.Drifters()))
		}
	})

	t.Run("max score spawns every interval", func(t *testing.T) {
		p := NewParticles(cfg.Effects, cfg.Arena, 32)
		rng := NewRand(1)
		for tick := 1; tick <= 20; tick++ {
			p.UpdateAmbient(tick, 40000, rng)
		}
		if len(p.Drifters()) != 4 {
			t.Fatalf("drifters = %d, want 4", len(p.Drifters()))
		}
		for _, d := range p.Drifters() {
			if d.Color < 1 || d.Color > 15 {
				t.Errorf("color %d out of range", d.Color)
			}
			if d.Y >= 256 {
				t.Errorf("drifter did not rise: y=%f", d.Y)
			}
		}
	})

	t.Run("drifters leave at the top", func(t *testing.T) {
		p := NewParticles(cfg.Effects, cfg.Arena, 32)
		rng := NewRand(1)
		p.UpdateAmbient(5, 40000, rng)
		for tick := 6; tick < 6+256+40; tick++ {
			p.UpdateAmbient(tick, 0, rng)
		}
		if len(p.Drifters()) != 0 {
			t.Errorf("drifters = %d, want 0", len(p.Drifters()))
		}
	})
}

func TestShake(t *testing.T) {
	s := NewShake(10, 3)
	rng := NewRand(9)

	s.Start()
	for i := 0; i < 10; i++ {
		s.Update(rng)
		dx, dy := s.Offset()
		limit := 3*float64(10-i-1)/10 + 1e-9
		if dx < -limit || dx > limit || dy < -limit || dy > limit {
			t.Errorf("tick %d: offset (%f, %f) beyond %f", i, dx, dy, limit)
		}
	}
	if s.Active() {
		t.Error("shake should end after 10 ticks")
	}
	if dx, dy := s.Offset(); dx != 0 || dy != 0 {
		t.Errorf("final offset = (%f, %f), want 0", dx, dy)
	}
}
