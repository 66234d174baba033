package gesture

import (
	"log"
	"time"

	"github.com/ayusman/obakehunt/internal/hand"
)

// Health grades how quickly the tracker is delivering frames.
type Health int

const (
	HealthGood Health = iota
	HealthSlow
	HealthPoor
)

func (h Health) String() string {
	switch h {
	case HealthGood:
		return "good"
	case HealthSlow:
		return "slow"
	default:
		return "poor"
	}
}

// Tracker folds tracker results into the hand history and runs the
// gesture detectors. It is driven once per game tick and is not safe for
// concurrent use.
type Tracker struct {
	cfg         Config
	sensitivity float64
	canvasW     int
	canvasH     int

	history *hand.History
	shoot   *ShootDetector
	reload  *ReloadDetector
	point   *PointDetector

	lastVideoTime  float64
	processingTime float64
	updated        bool
	handFound      bool
	videoW, videoH int

	lastErrLog time.Time
}

// NewTracker creates a Tracker for a canvasW x canvasH play field.
func NewTracker(cfg Config, sensitivity float64, canvasW, canvasH int) *Tracker {
	return &Tracker{
		cfg:           cfg,
		sensitivity:   sensitivity,
		canvasW:       canvasW,
		canvasH:       canvasH,
		history:       hand.NewHistory(cfg.HistoryWindow),
		shoot:         NewShootDetector(cfg.Shoot),
		reload:        NewReloadDetector(),
		point:         NewPointDetector(cfg.Point),
		lastVideoTime: -1,
	}
}

// Poll reads the latest result from src and updates the tracker.
func (t *Tracker) Poll(src Source) {
	res, ok := src.Latest()
	if !ok {
		t.shoot.BeginTick()
		t.point.BeginTick()
		t.updated = false
		return
	}
	t.Update(res)
}

// Update processes one tick. A result with an unchanged VideoTime only
// advances the per-tick detector counters.
func (t *Tracker) Update(res Result) {
	t.shoot.BeginTick()
	t.point.BeginTick()

	t.videoW, t.videoH = res.VideoWidth, res.VideoHeight

	if res.VideoTime == t.lastVideoTime {
		t.updated = false
		return
	}
	if res.VideoTime < t.lastVideoTime {
		// The tracker clock restarted, e.g. a browser tracker reconnected.
		// Frames on the old clock would poison the time windows.
		t.restart()
	} else if t.lastVideoTime > 0 {
		t.processingTime = res.VideoTime - t.lastVideoTime
	}
	t.lastVideoTime = res.VideoTime
	t.updated = true

	added := false
	t.handFound = len(res.Hands) > 0
	if t.handFound {
		f, err := hand.FromLandmarks(res.Hands[0], res.Aspect(), t.sensitivity, res.VideoTime)
		if err != nil {
			t.logError(err)
		} else {
			t.history.Add(f)
			added = true
		}
	}
	t.history.Evict(res.VideoTime)

	if !added {
		t.reload.Clear()
		t.point.Clear()
		return
	}

	t.shoot.Detect(t.history)
	t.reload.Detect(t.history.Latest())
	t.point.Detect(t.history, t.canvasW, t.canvasH)
}

func (t *Tracker) restart() {
	t.history.Reset()
	t.shoot.Reset()
	t.reload.Clear()
	t.point.Clear()
	t.processingTime = 0
}

func (t *Tracker) logError(err error) {
	if time.Since(t.lastErrLog) < time.Second {
		return
	}
	t.lastErrLog = time.Now()
	log.Printf("Skipping tracker frame: %v", err)
}

// SetSensitivity changes the aim sensitivity for frames built from now on.
func (t *Tracker) SetSensitivity(s float64) { t.sensitivity = s }

// Sensitivity returns the current aim sensitivity.
func (t *Tracker) Sensitivity() float64 { return t.sensitivity }

// Shot returns the shot position in normalized units and whether a shot fired this tick.
func (t *Tracker) Shot() (hand.Point2, bool) { return t.shoot.Shot() }

// Mark returns the armed shoot mark, if any.
func (t *Tracker) Mark() (hand.Point2, bool) { return t.shoot.Mark() }

// Reloading reports whether the hand is in the reload pose.
func (t *Tracker) Reloading() bool { return t.reload.Active() }

// Selected returns a dwell selection in canvas pixels.
func (t *Tracker) Selected() (x, y int, ok bool) { return t.point.Selected() }

// Pointer exposes the dwell detector for drawing.
func (t *Tracker) Pointer() *PointDetector { return t.point }

// Latest returns the newest retained hand frame, or nil.
func (t *Tracker) Latest() *hand.Frame { return t.history.Latest() }

// HandFound reports whether the last processed result contained a hand.
func (t *Tracker) HandFound() bool { return t.handFound }

// Updated reports whether this tick processed a new tracker frame.
func (t *Tracker) Updated() bool { return t.updated }

// Connected reports whether the tracker has reported a video size.
func (t *Tracker) Connected() bool { return t.videoW > 0 && t.videoH > 0 }

// VideoSize returns the last reported video dimensions.
func (t *Tracker) VideoSize() (w, h int) { return t.videoW, t.videoH }

// ProcessingTime is the capture interval between the last two processed frames, in seconds.
func (t *Tracker) ProcessingTime() float64 { return t.processingTime }

// Health grades ProcessingTime.
func (t *Tracker) Health() Health {
	switch {
	case t.processingTime < 0.1:
		return HealthGood
	case t.processingTime < 0.3:
		return HealthSlow
	default:
		return HealthPoor
	}
}
