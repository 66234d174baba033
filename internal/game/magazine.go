package game

// Magazine tracks rounds and the reload timer. Shooting is refused while
// empty or reloading; a reload refills to capacity after ReloadTicks.
type Magazine struct {
	cfg    MagazineConfig
	rounds int
	reload int
}

// NewMagazine returns a full magazine.
func NewMagazine(cfg MagazineConfig) *Magazine {
	return &Magazine{cfg: cfg, rounds: cfg.Capacity, reload: cfg.ReloadTicks}
}

// Update advances the reload timer by one tick.
func (m *Magazine) Update() {
	if m.reload < m.cfg.ReloadTicks {
		m.reload++
		if m.reload == m.cfg.ReloadTicks {
			m.rounds = m.cfg.Capacity
		}
	}
}

// Shoot spends a round. It returns false when empty or reloading.
func (m *Magazine) Shoot() bool {
	if m.Reloading() || m.Empty() {
		return false
	}
	m.rounds--
	return true
}

// Reload starts a reload unless one is running or the magazine is full.
func (m *Magazine) Reload() {
	if m.reload == m.cfg.ReloadTicks && !m.Full() {
		m.reload = 0
	}
}

// Reset refills and cancels any reload.
func (m *Magazine) Reset() {
	m.rounds = m.cfg.Capacity
	m.reload = m.cfg.ReloadTicks
}

func (m *Magazine) Rounds() int { return m.rounds }
func (m *Magazine) Capacity() int { return m.cfg.Capacity }
func (m *Magazine) Reloading() bool { return m.reload < m.cfg.ReloadTicks }
func (m *Magazine) Empty() bool { return m.rounds <= 0 }
func (m *Magazine) Full() bool { return m.rounds >= m.cfg.Capacity }

// ReloadProgress is the reload completion in [0,1]; 1 when idle.
func (m *Magazine) ReloadProgress() float64 {
	if m.cfg.ReloadTicks <= 0 {
		return 1
	}
	return float64(m.reload) / float64(m.cfg.ReloadTicks)
}
