package gesture

import (
	"math"

	"github.com/ayusman/obakehunt/internal/hand"
)

// PointDetector implements dwell selection: holding the index tip still
// for DwellTime selects the point under it. Selections are rate limited
// to one per Interval ticks.
type PointDetector struct {
	cfg PointConfig

	count   int
	elapsed float64
	x, y    int
	hasPos  bool
}

// NewPointDetector creates a PointDetector.
func NewPointDetector(cfg PointConfig) *PointDetector {
	return &PointDetector{cfg: cfg}
}

// BeginTick advances the interval counter. Call once per game tick.
func (d *PointDetector) BeginTick() {
	d.count++
	if d.count > d.cfg.Interval {
		d.count = 0
	}
}

// Detect measures how long the index tip has held its horizontal position.
// The position is reported in canvas pixels.
func (d *PointDetector) Detect(history *hand.History, canvasW, canvasH int) {
	current := history.Latest()
	if current == nil {
		d.Clear()
		return
	}

	tip := current.IndexTip()
	d.x = int(tip.X * float64(canvasW))
	d.y = int(tip.Y * float64(canvasH))
	d.hasPos = true

	d.elapsed = 0
	history.Reverse(func(f *hand.Frame) bool {
		d.elapsed = current.Time - f.Time
		return math.Abs(tip.X-f.IndexTip().X) <= d.cfg.DwellAccuracy
	})

	if d.elapsed == 0 {
		d.Clear()
	}
}

// Selected returns the dwell point once the hold is long enough and the
// interval counter allows another selection.
func (d *PointDetector) Selected() (x, y int, ok bool) {
	if d.count < d.cfg.Interval || d.elapsed < d.cfg.DwellTime || !d.hasPos {
		return 0, 0, false
	}
	return d.x, d.y, true
}

// Position returns the current pointing position in canvas pixels.
func (d *PointDetector) Position() (x, y int, ok bool) {
	return d.x, d.y, d.hasPos
}

// Progress is the dwell fill in [0,1].
func (d *PointDetector) Progress() float64 {
	if d.cfg.DwellTime <= 0 {
		return 1
	}
	return math.Max(0, math.Min(d.elapsed/d.cfg.DwellTime, 1))
}

// Visible reports whether the dwell indicator should be drawn.
func (d *PointDetector) Visible() bool {
	return d.hasPos && d.elapsed > d.cfg.DrawStart
}

// Clear drops the dwell state and restarts the interval.
func (d *PointDetector) Clear() {
	d.count = 0
	d.elapsed = 0
	d.hasPos = false
}
