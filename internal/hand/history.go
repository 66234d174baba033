package hand

// DefaultWindow is how long frames are retained, in seconds.
const DefaultWindow = 2.0

// History holds recent frames in capture order, oldest first.
type History struct {
	window float64
	frames []*Frame
}

// NewHistory creates a history that keeps frames for window seconds.
func NewHistory(window float64) *History {
	if window <= 0 {
		window = DefaultWindow
	}
	return &History{window: window}
}

// Add appends a frame.
func (h *History) Add(f *Frame) {
	h.frames = append(h.frames, f)
}

// Evict drops frames with now - t >= window.
func (h *History) Evict(now float64) {
	i := 0
	for i < len(h.frames) && now-h.frames[i].Time >= h.window {
		i++
	}
	if i == 0 {
		return
	}
	n := copy(h.frames, h.frames[i:])
	clear(h.frames[n:])
	h.frames = h.frames[:n]
}

// Latest returns the newest frame, or nil when empty.
func (h *History) Latest() *Frame {
	if len(h.frames) == 0 {
		return nil
	}
	return h.frames[len(h.frames)-1]
}

// Len returns the number of retained frames.
func (h *History) Len() int { return len(h.frames) }

// At returns the i-th frame counting back from the newest (0 is newest).
func (h *History) At(i int) *Frame {
	return h.frames[len(h.frames)-1-i]
}

// Reverse calls fn for each frame from newest to oldest until fn returns false.
func (h *History) Reverse(fn func(f *Frame) bool) {
	for i := len(h.frames) - 1; i >= 0; i-- {
		if !fn(h.frames[i]) {
			return
		}
	}
}

// Reset drops all frames.
func (h *History) Reset() {
	clear(h.frames)
	h.frames = h.frames[:0]
}
