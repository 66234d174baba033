package game

// Wave walks the wave table. Each call to Spawn yields the next wave's
// targets; the round ends when the table is exhausted.
type Wave struct {
	cfg   WaveConfig
	obake ObakeConfig
	arena Arena
	index int
}

// NewWave creates a scheduler at the first wave.
func NewWave(cfg WaveConfig, obake ObakeConfig, arena Arena) *Wave {
	return &Wave{cfg: cfg, obake: obake, arena: arena}
}

// SpawnAt builds the targets of wave index without advancing the scheduler.
// Within a group, anchors are drawn without replacement. It returns nil
// past the end of the table.
func (w *Wave) SpawnAt(index int, rng Rand) []*Obake {
	if index < 0 || index >= len(w.cfg.Groups) {
		return nil
	}

	var out []*Obake
	for i, n := range w.cfg.Groups[index] {
		delay := w.cfg.SpawnDelay * i
		for _, p := range sampleAnchors(w.cfg.Anchors, n, rng) {
			out = append(out, NewObake(w.obake, w.arena, p.X, p.Y, delay, rng))
		}
	}
	return out
}

// Spawn returns the next wave and advances. Empty once Done.
func (w *Wave) Spawn(rng Rand) []*Obake {
	if w.Done() {
		return nil
	}
	out := w.SpawnAt(w.index, rng)
	w.index++
	return out
}

// Done reports whether every wave has been spawned.
func (w *Wave) Done() bool { return w.index >= len(w.cfg.Groups) }

// Index is the number of waves spawned so far.
func (w *Wave) Index() int { return w.index }

// Len is the number of waves in the table.
func (w *Wave) Len() int { return len(w.cfg.Groups) }

// Reset returns to the first wave.
func (w *Wave) Reset() { w.index = 0 }

// sampleAnchors picks n distinct anchors with a partial Fisher-Yates shuffle.
func sampleAnchors(anchors []Point, n int, rng Rand) []Point {
	pool := make([]Point, len(anchors))
	copy(pool, anchors)
	n = min(n, len(pool))
	for i := 0; i < n; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
