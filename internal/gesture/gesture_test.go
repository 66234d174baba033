package gesture

import (
	"testing"

	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/hand"
)

// frameAt builds a pointing frame shifted by (dx, dy) in camera space.
// Shifting camera Y up by d raises the aim by d on a square video.
func frameAt(t *testing.T, ts, dx, dy float64) *hand.Frame {
	t.Helper()
	f, err := hand.FromLandmarks(detector.Translate(detector.PointingLandmarks(), dx, dy), 1, 0.5, ts)
	if err != nil {
		t.Fatalf("build frame: %v", err)
	}
	return f
}

func feed(d *ShootDetector, h *hand.History, f *hand.Frame) bool {
	d.BeginTick()
	h.Add(f)
	h.Evict(f.Time)
	d.Detect(h)
	_, shot := d.Shot()
	return shot
}

func TestShootDetector(t *testing.T) {
	t.Run("settle then flick fires once at the mark", func(t *testing.T) {
		d := NewShootDetector(DefaultConfig().Shoot)
		h := hand.NewHistory(hand.DefaultWindow)

		for i := 0; i < 10; i++ {
			if feed(d, h, frameAt(t, float64(i)/30, 0, 0)) {
				t.Fatal("no shot expected while settling")
			}
		}
		mark, ok := d.Mark()
		if !ok {
			t.Fatal("expected a mark after settling")
		}

		if !feed(d, h, frameAt(t, 0.4, 0, -0.3)) {
			t.Fatal("expected a shot after the flick")
		}
		pos, _ := d.Shot()
		if pos != mark {
			t.Errorf("shot position = %+v, want mark %+v", pos, mark)
		}
		if _, ok := d.Mark(); ok {
			t.Error("mark should be consumed by the shot")
		}

		d.BeginTick()
		if _, shot := d.Shot(); shot {
			t.Error("shot flag must last exactly one tick")
		}

		if feed(d, h, frameAt(t, 0.45, 0, -0.3)) {
			t.Error("a second shot needs a new mark")
		}
		if feed(d, h, frameAt(t, 0.5, 0, -0.6)) {
			t.Error("moving further without settling must not fire")
		}
	})

	t.Run("a new mark allows another shot", func(t *testing.T) {
		d := NewShootDetector(DefaultConfig().Shoot)
		h := hand.NewHistory(hand.DefaultWindow)

		for i := 0; i < 10; i++ {
			feed(d, h, frameAt(t, float64(i)/30, 0, 0))
		}
		if !feed(d, h, frameAt(t, 0.4, 0, -0.3)) {
			t.Fatal("expected first shot")
		}

		shots := 0
		for ts := 0.45; ts < 1.2; ts += 1.0 / 30 {
			if feed(d, h, frameAt(t, ts, 0, -0.3)) {
				shots++
			}
		}
		if shots != 0 {
			t.Fatalf("unexpected shots while resettling: %d", shots)
		}
		if _, ok := d.Mark(); !ok {
			t.Fatal("expected a new mark after holding still")
		}
		if !feed(d, h, frameAt(t, 1.25, 0, -0.6)) {
			t.Error("expected second shot from the new mark")
		}
	})

	t.Run("mark expires", func(t *testing.T) {
		d := NewShootDetector(DefaultConfig().Shoot)
		h := hand.NewHistory(hand.DefaultWindow)

		for i := 0; i < 10; i++ {
			feed(d, h, frameAt(t, float64(i)/30, 0, 0))
		}
		for i, ts := range []float64{0.7, 1.1, 1.5} {
			feed(d, h, frameAt(t, ts, 0, 0.06*float64(i+1)))
		}
		if _, ok := d.Mark(); ok {
			t.Fatal("mark should have expired")
		}
		if feed(d, h, frameAt(t, 1.6, 0, -0.3)) {
			t.Error("no shot without a mark")
		}
	})

	t.Run("downward motion does not fire", func(t *testing.T) {
		d := NewShootDetector(DefaultConfig().Shoot)
		h := hand.NewHistory(hand.DefaultWindow)

		for i := 0; i < 10; i++ {
			feed(d, h, frameAt(t, float64(i)/30, 0, 0))
		}
		if feed(d, h, frameAt(t, 0.4, 0, 0.3)) {
			t.Error("lowering the aim must not fire")
		}
	})
}

func TestReloadDetector(t *testing.T) {
	build := func(pose detector.HandLandmarks) *hand.Frame {
		f, err := hand.FromLandmarks(pose, 1.33, 0.5, 0)
		if err != nil {
			t.Fatalf("build frame: %v", err)
		}
		return f
	}

	tests := []struct {
		name string
		pose detector.HandLandmarks
		want bool
	}{
		{"fist reloads", detector.FistLandmarks(), true},
		{"pointing does not reload", detector.PointingLandmarks(), false},
		{"open palm does not reload", detector.OpenPalmLandmarks(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewReloadDetector()
			d.Detect(build(tt.pose))
			if d.Active() != tt.want {
				t.Errorf("Active() = %v, want %v", d.Active(), tt.want)
			}
		})
	}

	t.Run("memoryless", func(t *testing.T) {
		d := NewReloadDetector()
		fist := build(detector.FistLandmarks())
		open := build(detector.OpenPalmLandmarks())

		d.Detect(fist)
		first := d.Active()
		d.Detect(open)
		d.Detect(fist)
		if d.Active() != first {
			t.Error("same frame gave a different result after other input")
		}
	})
}

func TestPointDetector(t *testing.T) {
	t.Run("selects after dwelling", func(t *testing.T) {
		d := NewPointDetector(DefaultConfig().Point)
		h := hand.NewHistory(hand.DefaultWindow)

		// The first frame has no dwell and restarts the interval, so the
		// counter next reaches Interval at tick 20 (dwell too short) and
		// then at tick 41.
		at := -1
		var sx, sy int
		for i := 0; i <= 60; i++ {
			d.BeginTick()
			h.Add(frameAt(t, float64(i)/30, 0, 0))
			d.Detect(h, 256, 256)
			if x, y, ok := d.Selected(); ok {
				at = i
				sx, sy = x, y
				break
			}
		}
		if at < 0 {
			t.Fatal("expected a selection after holding still")
		}
		if at != 41 {
			t.Errorf("selected at tick %d, want 41", at)
		}
		if sx != 117 || sy != 107 {
			t.Errorf("selected (%d, %d), want (117, 107)", sx, sy)
		}
		if d.Progress() != 1 {
			t.Errorf("Progress() = %f, want 1", d.Progress())
		}
	})

	t.Run("moving restarts the dwell", func(t *testing.T) {
		d := NewPointDetector(DefaultConfig().Point)
		h := hand.NewHistory(hand.DefaultWindow)

		for i := 0; i < 60; i++ {
			d.BeginTick()
			dx := 0.0
			if i%2 == 1 {
				dx = 0.1
			}
			h.Add(frameAt(t, float64(i)/30, dx, 0))
			d.Detect(h, 256, 256)
			if _, _, ok := d.Selected(); ok {
				t.Fatal("no selection while moving")
			}
		}
		if d.Visible() {
			t.Error("indicator should be hidden while moving")
		}
	})

	t.Run("single frame clears", func(t *testing.T) {
		d := NewPointDetector(DefaultConfig().Point)
		h := hand.NewHistory(hand.DefaultWindow)
		h.Add(frameAt(t, 0, 0, 0))
		d.Detect(h, 256, 256)
		if _, _, ok := d.Position(); ok {
			t.Error("zero dwell should clear the position")
		}
	})
}

func TestTracker(t *testing.T) {
	pointing := func(ts, dy float64) Result {
		return Result{
			VideoTime:   ts,
			VideoWidth:  640,
			VideoHeight: 640,
			Hands:       []detector.HandLandmarks{detector.Translate(detector.PointingLandmarks(), 0, dy)},
		}
	}

	t.Run("not connected before a result", func(t *testing.T) {
		tr := NewTracker(DefaultConfig(), 0.5, 256, 256)
		tr.Poll(NewLatestSource())
		if tr.Connected() || tr.Updated() {
			t.Error("tracker should be idle with an empty source")
		}
	})

	t.Run("unchanged video time is not an update", func(t *testing.T) {
		src := NewLatestSource()
		tr := NewTracker(DefaultConfig(), 0.5, 256, 256)

		src.Publish(pointing(1, 0))
		tr.Poll(src)
		if !tr.Updated() || !tr.HandFound() || !tr.Connected() {
			t.Fatal("first result should update")
		}
		tr.Poll(src)
		if tr.Updated() {
			t.Error("same video time should not update")
		}
		if w, h := tr.VideoSize(); w != 640 || h != 640 {
			t.Errorf("VideoSize() = %dx%d", w, h)
		}
	})

	t.Run("shoots through the pipeline", func(t *testing.T) {
		src := NewLatestSource()
		tr := NewTracker(DefaultConfig(), 0.5, 256, 256)

		for i := 1; i <= 10; i++ {
			src.Publish(pointing(float64(i)/30, 0))
			tr.Poll(src)
		}
		src.Publish(pointing(0.45, -0.3))
		tr.Poll(src)
		if _, ok := tr.Shot(); !ok {
			t.Fatal("expected a shot")
		}
		tr.Poll(src)
		if _, ok := tr.Shot(); ok {
			t.Error("shot must not repeat on a stale result")
		}
	})

	t.Run("losing the hand clears reload", func(t *testing.T) {
		src := NewLatestSource()
		tr := NewTracker(DefaultConfig(), 0.5, 256, 256)

		src.Publish(Result{VideoTime: 1, VideoWidth: 640, VideoHeight: 480, Hands: []detector.HandLandmarks{detector.FistLandmarks()}})
		tr.Poll(src)
		if !tr.Reloading() {
			t.Fatal("expected reload pose")
		}

		src.Publish(Result{VideoTime: 1.05, VideoWidth: 640, VideoHeight: 480})
		tr.Poll(src)
		if tr.Reloading() || tr.HandFound() {
			t.Error("no hand should clear reload")
		}
		if tr.Latest() == nil {
			t.Error("history should still hold the last frame")
		}
	})

	t.Run("evicts old frames", func(t *testing.T) {
		src := NewLatestSource()
		tr := NewTracker(DefaultConfig(), 0.5, 256, 256)

		src.Publish(pointing(1, 0))
		tr.Poll(src)
		src.Publish(Result{VideoTime: 3.5, VideoWidth: 640, VideoHeight: 640})
		tr.Poll(src)
		if tr.Latest() != nil {
			t.Error("frames older than the window should be evicted")
		}
	})

	t.Run("health grading", func(t *testing.T) {
		tests := []struct {
			gap  float64
			want Health
		}{
			{0.05, HealthGood},
			{0.2, HealthSlow},
			{0.5, HealthPoor},
		}
		for _, tt := range tests {
			src := NewLatestSource()
			tr := NewTracker(DefaultConfig(), 0.5, 256, 256)
			src.Publish(pointing(1, 0))
			tr.Poll(src)
			src.Publish(pointing(1+tt.gap, 0))
			tr.Poll(src)
			if tr.Health() != tt.want {
				t.Errorf("gap %.2f: Health() = %v, want %v", tt.gap, tr.Health(), tt.want)
			}
		}
	})

	t.Run("sensitivity applies to new frames", func(t *testing.T) {
		src := NewLatestSource()
		tr := NewTracker(DefaultConfig(), 0.2, 256, 256)

		src.Publish(pointing(1, 0))
		tr.Poll(src)
		low := tr.Latest().Aim

		tr.SetSensitivity(0.9)
		src.Publish(pointing(1.05, 0))
		tr.Poll(src)
		high := tr.Latest().Aim

		if high.Y >= low.Y {
			t.Errorf("higher sensitivity should aim further up: %f vs %f", high.Y, low.Y)
		}
	})
}

func TestTrackerClockRestart(t *testing.T) {
	still := func(ts float64) Result {
		return Result{
			VideoTime:   ts,
			VideoWidth:  640,
			VideoHeight: 640,
			Hands:       []detector.HandLandmarks{detector.PointingLandmarks()},
		}
	}

	src := NewLatestSource()
	tr := NewTracker(DefaultConfig(), 0.5, 256, 256)

	for i := 0; i < 30; i++ {
		src.Publish(still(100 + float64(i)/30))
		tr.Poll(src)
	}

	selections := 0
	for i := 0; i <= 90; i++ {
		src.Publish(still(1 + float64(i)/30))
		tr.Poll(src)
		if p := tr.Pointer().Progress(); p < 0 || p > 1 {
			t.Fatalf("tick %d: Progress() = %f, want within [0,1]", i, p)
		}
		if _, _, ok := tr.Selected(); ok {
			selections++
		}
	}

	if selections == 0 {
		t.Error("dwell should select again after the clock restarts")
	}
	if f := tr.Latest(); f == nil || f.Time > 5 {
		t.Errorf("latest frame = %+v, want a frame on the new clock", f)
	}
	if tr.ProcessingTime() < 0 {
		t.Errorf("ProcessingTime() = %f after restart", tr.ProcessingTime())
	}
}
