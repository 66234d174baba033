package app

import (
	"errors"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/obakehunt/internal/capture"
	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/gesture"
)

func newTestApp(t *testing.T, hands []detector.HandLandmarks) (*App, *capture.MockCamera, *detector.MockDetector) {
	t.Helper()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	t.Cleanup(func() { frame.Close() })

	cam := capture.NewMockCamera([]*gocv.Mat{&frame}, true)
	det := detector.NewMockDetector()
	det.SetHands(hands)

	a := New(Config{Camera: capture.DefaultConfig(), Detector: detector.DefaultConfig()}, gesture.NewLatestSource())
	a.SetCamera(cam)
	a.SetDetector(det)
	return a, cam, det
}

func TestApp_ProcessFrame(t *testing.T) {
	a, cam, det := newTestApp(t, []detector.HandLandmarks{detector.PointingLandmarks()})

	if _, ok := a.Source().Latest(); ok {
		t.Fatal("source should be empty before any frame")
	}

	if err := cam.Open(); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := a.processFrame(); err != nil {
		t.Fatalf("processFrame() error = %v", err)
	}

	res, ok := a.Source().Latest()
	if !ok {
		t.Fatal("expected a published result")
	}
	if res.VideoWidth != 640 || res.VideoHeight != 480 {
		t.Errorf("video size = %dx%d, want 640x480", res.VideoWidth, res.VideoHeight)
	}
	if len(res.Hands) != 1 {
		t.Errorf("got %d hands, want 1", len(res.Hands))
	}
	if det.Calls() != 1 {
		t.Errorf("detector called %d times, want 1", det.Calls())
	}

	first := res.VideoTime
	time.Sleep(2 * time.Millisecond)
	if err := a.processFrame(); err != nil {
		t.Fatalf("processFrame() error = %v", err)
	}
	res, _ = a.Source().Latest()
	if res.VideoTime <= first {
		t.Errorf("VideoTime should increase, got %v after %v", res.VideoTime, first)
	}

	frames, detections := a.Stats()
	if frames != 2 || detections != 2 {
		t.Errorf("Stats() = %d, %d, want 2, 2", frames, detections)
	}
}

func TestApp_ProcessFrame_NoHandsStillPublishes(t *testing.T) {
	a, cam, _ := newTestApp(t, nil)
	cam.Open()

	if err := a.processFrame(); err != nil {
		t.Fatalf("processFrame() error = %v", err)
	}
	res, ok := a.Source().Latest()
	if !ok {
		t.Fatal("expected a published result")
	}
	if len(res.Hands) != 0 {
		t.Errorf("got %d hands, want 0", len(res.Hands))
	}
	if _, detections := a.Stats(); detections != 0 {
		t.Errorf("detections = %d, want 0", detections)
	}
}

func TestApp_ProcessFrame_Errors(t *testing.T) {
	t.Run("camera not open", func(t *testing.T) {
		a, _, _ := newTestApp(t, nil)
		if err := a.processFrame(); !errors.Is(err, capture.ErrCameraNotOpen) {
			t.Errorf("processFrame() error = %v, want ErrCameraNotOpen", err)
		}
	})

	t.Run("detector failure", func(t *testing.T) {
		a, cam, det := newTestApp(t, nil)
		cam.Open()
		boom := errors.New("boom")
		det.SetError(boom)

		if err := a.processFrame(); !errors.Is(err, boom) {
			t.Errorf("processFrame() error = %v, want %v", err, boom)
		}
		if _, ok := a.Source().Latest(); ok {
			t.Error("a failed detection should not publish")
		}
	})
}

func TestApp_StartStop(t *testing.T) {
	a, cam, _ := newTestApp(t, []detector.HandLandmarks{detector.PointingLandmarks()})

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !a.Running() {
		t.Error("Running() should be true after Start")
	}
	// Second start is a no-op.
	if err := a.Start(); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := a.Source().Latest(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("pipeline published nothing")
		}
		time.Sleep(5 * time.Millisecond)
	}

	a.Stop()
	if a.Running() {
		t.Error("Running() should be false after Stop")
	}
	if cam.IsOpen() {
		t.Error("camera should be closed after Stop")
	}
}

func TestApp_Disabled(t *testing.T) {
	a, _, det := newTestApp(t, []detector.HandLandmarks{detector.PointingLandmarks()})
	a.SetEnabled(false)
	if a.IsEnabled() {
		t.Fatal("IsEnabled() should be false")
	}

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	a.Stop()

	if det.Calls() != 0 {
		t.Errorf("detector called %d times while disabled", det.Calls())
	}
	if _, ok := a.Source().Latest(); ok {
		t.Error("nothing should be published while disabled")
	}
}

func TestApp_StartWithoutDetector(t *testing.T) {
	a, cam, _ := newTestApp(t, nil)
	a.SetDetector(nil)

	if err := a.Start(); !errors.Is(err, ErrNoDetector) {
		t.Fatalf("Start() error = %v, want ErrNoDetector", err)
	}
	if a.Running() {
		t.Error("pipeline must not run without a detector")
	}
	if cam.IsOpen() {
		t.Error("camera should stay closed without a detector")
	}
	a.Stop()
}

func TestApp_YieldsToOtherTracker(t *testing.T) {
	a, _, det := newTestApp(t, []detector.HandLandmarks{detector.PointingLandmarks()})
	a.SetYielding(true)
	if !a.Yielding() {
		t.Fatal("Yielding() should be true")
	}

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	time.Sleep(150 * time.Millisecond)
	if det.Calls() != 0 {
		t.Errorf("detector called %d times while yielding", det.Calls())
	}
	if _, ok := a.Source().Latest(); ok {
		t.Error("nothing should be published while yielding")
	}

	a.SetYielding(false)
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := a.Source().Latest(); ok {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("pipeline did not resume after yielding")
		}
		time.Sleep(5 * time.Millisecond)
	}
	a.Stop()
}
