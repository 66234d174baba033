package gesture

import (
	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/hand"
)

// ReloadDetector recognizes the closed-fist reload pose from a single frame:
// thumb tip resting on the ring PIP and index tip resting on the middle tip,
// both closer than the thumb length.
type ReloadDetector struct {
	active bool
}

// NewReloadDetector creates a ReloadDetector.
func NewReloadDetector() *ReloadDetector {
	return &ReloadDetector{}
}

// Detect recomputes the flag from f alone.
func (d *ReloadDetector) Detect(f *hand.Frame) {
	if f == nil {
		d.active = false
		return
	}
	l := f.ThumbLength()
	d.active = detector.Distance(f.ThumbTip(), f.RingPIP()) < l &&
		detector.Distance(f.IndexTip(), f.MiddleTip()) < l
}

// Active reports whether the last frame was in the reload pose.
func (d *ReloadDetector) Active() bool {
	return d.active
}

// Clear drops the flag.
func (d *ReloadDetector) Clear() {
	d.active = false
}
