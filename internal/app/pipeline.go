package app

import (
	"log"
	"time"

	"github.com/ayusman/obakehunt/internal/gesture"
)

// errorLogInterval limits how often repeated pipeline errors are logged.
const errorLogInterval = time.Second

// runPipeline reads frames at the camera rate until stopCh closes.
func (a *App) runPipeline(stopCh <-chan struct{}, doneCh chan<- struct{}, interval time.Duration) {
	defer close(doneCh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastErr time.Time
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.publishing() {
				continue
			}
			if err := a.processFrame(); err != nil && time.Since(lastErr) >= errorLogInterval {
				lastErr = time.Now()
				log.Printf("Tracking error: %v", err)
			}
		}
	}
}

// processFrame reads one frame, detects hands and publishes the result.
// A frame with no hands still publishes, so the game sees the hand leave.
func (a *App) processFrame() error {
	cam := a.Camera()
	det := a.Detector()

	frame, err := cam.ReadFrame()
	if err != nil {
		return err
	}
	videoTime := time.Since(a.started).Seconds()

	hands, err := det.Detect(frame)
	frame.Close()
	if err != nil {
		return err
	}

	width, height := cam.Size()
	a.source.Publish(gesture.Result{
		VideoTime:   videoTime,
		VideoWidth:  width,
		VideoHeight: height,
		Hands:       hands,
	})

	a.mu.Lock()
	a.frames++
	if len(hands) > 0 {
		a.detects++
	}
	a.mu.Unlock()

	return nil
}
