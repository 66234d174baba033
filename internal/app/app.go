// Package app runs the hand tracking pipeline that feeds the game.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/obakehunt/internal/capture"
	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/gesture"
)

// ErrNoDetector is returned by Start when no hand detector is available.
var ErrNoDetector = errors.New("no hand detector available")

// Config holds configuration options for the application.
type Config struct {
	Camera   capture.Config
	Detector detector.Config
}

// App owns the camera and hand detector and publishes tracker results.
type App struct {
	config   Config
	camera   capture.Camera
	detector detector.Detector
	source   *gesture.LatestSource
	detErr   error
	enabled  bool
	yielding bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	doneCh   chan struct{}
	started  time.Time
	frames   int
	detects  int
}

// New creates a new App publishing into source.
func New(config Config, source *gesture.LatestSource) *App {
	if source == nil {
		source = gesture.NewLatestSource()
	}

	a := &App{
		config:  config,
		camera:  capture.NewCamera(config.Camera),
		source:  source,
		enabled: true,
		started: time.Now(),
	}

	// Without MediaPipe the camera pipeline stays off; browser trackers
	// can still publish through the server.
	if mp, err := detector.NewMediaPipeDetector(config.Detector); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		a.detErr = err
	}

	return a
}

// SetEnabled pauses or resumes tracking. While paused no results are published.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether tracking is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetYielding stops publishing while another tracker, such as a browser
// client, feeds the same source. A source carries a single tracker clock.
func (a *App) SetYielding(yielding bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.yielding = yielding
}

// Yielding reports whether the pipeline is standing aside for another tracker.
func (a *App) Yielding() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.yielding
}

// publishing reports whether the pipeline should process frames this tick.
func (a *App) publishing() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled && !a.yielding
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the capture device. Call before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Start opens the camera and begins the tracking pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if a.detector == nil {
		if a.detErr != nil {
			return fmt.Errorf("%w: %v", ErrNoDetector, a.detErr)
		}
		return ErrNoDetector
	}

	if err := a.camera.Open(); err != nil {
		return err
	}

	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	go a.runPipeline(a.stopCh, a.doneCh, time.Second/time.Duration(a.camera.FPS()))

	log.Println("Tracking pipeline started")
	return nil
}

// Stop halts the pipeline and releases the camera and detector.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, doneCh := a.stopCh, a.doneCh
	a.stopCh, a.doneCh = nil, nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
		<-doneCh
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	if d := a.Detector(); d != nil {
		if err := d.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Tracking pipeline stopped")
}

// Running reports whether the pipeline goroutine is active.
func (a *App) Running() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stopCh != nil
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// Source returns the source the pipeline publishes into.
func (a *App) Source() *gesture.LatestSource {
	return a.source
}

// Stats returns how many frames were read and how many produced a detection.
func (a *App) Stats() (frames, detections int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.frames, a.detects
}
