package gesture

import "github.com/ayusman/obakehunt/internal/hand"

// ShootDetector recognizes the settle-then-flick shot.
//
// While the aim stays within MarkAccuracy of the current aim for the whole
// MarkWindow, the current aim becomes the mark. A mark left unused for
// MarkActive seconds expires. When the aim rises more than Length above the
// mark, a shot fires at the mark and the mark is consumed.
type ShootDetector struct {
	cfg ShootConfig

	mark     hand.Point2
	markTime float64
	hasMark  bool

	position hand.Point2
	shot     bool
}

// NewShootDetector creates a ShootDetector.
func NewShootDetector(cfg ShootConfig) *ShootDetector {
	return &ShootDetector{cfg: cfg}
}

// BeginTick clears the shot flag. Call once per game tick before Detect.
func (d *ShootDetector) BeginTick() {
	d.shot = false
}

// Detect updates the mark and fires from the newest frame in history.
func (d *ShootDetector) Detect(history *hand.History) {
	current := history.Latest()
	if current == nil || !current.HasAim() {
		return
	}

	if d.hasMark && current.Time-d.markTime > d.cfg.MarkActive {
		d.hasMark = false
	}

	settled := true
	history.Reverse(func(f *hand.Frame) bool {
		if current.Time-f.Time > d.cfg.MarkWindow {
			return false
		}
		if !f.HasAim() {
			return true
		}
		if f.Aim.Sub(current.Aim).Len() >= d.cfg.MarkAccuracy {
			settled = false
			return false
		}
		return true
	})
	if settled {
		d.mark = current.Aim
		d.markTime = current.Time
		d.hasMark = true
	}

	if d.hasMark && d.mark.Y-current.Aim.Y > d.cfg.Length {
		d.position = d.mark
		d.hasMark = false
		d.shot = true
	}
}

// Shot returns the shot position and whether a shot fired this tick.
func (d *ShootDetector) Shot() (hand.Point2, bool) {
	return d.position, d.shot
}

// Mark returns the armed mark, if any.
func (d *ShootDetector) Mark() (hand.Point2, bool) {
	return d.mark, d.hasMark
}

// Reset drops the mark and any pending shot.
func (d *ShootDetector) Reset() {
	d.hasMark = false
	d.shot = false
}
