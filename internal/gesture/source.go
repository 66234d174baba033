// Package gesture turns the stream of tracker results into discrete input
// events: aim, shoot, reload, and dwell-select.
package gesture

import (
	"sync"

	"github.com/ayusman/obakehunt/internal/detector"
)

// Result is one snapshot from a hand tracker.
type Result struct {
	// VideoTime is the capture timestamp in seconds. An unchanged value
	// means no new frame has been processed.
	VideoTime float64

	VideoWidth  int
	VideoHeight int

	// Hands holds the detected hands. Only the first one is used.
	Hands []detector.HandLandmarks
}

// Aspect returns the video width over height, or 1 when the size is unknown.
func (r Result) Aspect() float64 {
	if r.VideoWidth <= 0 || r.VideoHeight <= 0 {
		return 1
	}
	return float64(r.VideoWidth) / float64(r.VideoHeight)
}

// Source provides the most recent tracker result without blocking.
type Source interface {
	// Latest returns the newest result and false if nothing was published yet.
	Latest() (Result, bool)
}

// LatestSource is a Source that keeps only the last published result.
// It is safe for one or more writers and concurrent readers.
type LatestSource struct {
	mu  sync.RWMutex
	res Result
	ok  bool
}

// NewLatestSource creates an empty LatestSource.
func NewLatestSource() *LatestSource {
	return &LatestSource{}
}

// Publish replaces the current result. The caller must not modify r.Hands afterwards.
func (s *LatestSource) Publish(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.res = r
	s.ok = true
}

// Latest implements Source.
func (s *LatestSource) Latest() (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res, s.ok
}
