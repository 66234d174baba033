package game

// Popup is a floating score label.
type Popup struct {
	X, Y      float64
	Value     int
	Remaining int
}

// Score is the running total plus the popups of recent hits.
type Score struct {
	popupTicks int
	total      int
	popups     []Popup
}

// NewScore creates a zero score whose popups last popupTicks ticks.
func NewScore(popupTicks int) *Score {
	return &Score{popupTicks: popupTicks}
}

// Add credits value and shows a popup at (x, y).
func (s *Score) Add(x, y float64, value int) {
	s.total += value
	s.popups = append(s.popups, Popup{X: x, Y: y, Value: value, Remaining: s.popupTicks})
}

// Update ages popups and drops expired ones.
func (s *Score) Update() {
	kept := s.popups[:0]
	for _, p := range s.popups {
		if p.Remaining > 0 {
			p.Remaining--
		}
		if p.Remaining > 0 {
			kept = append(kept, p)
		}
	}
	s.popups = kept
}

// Rise is how many pixels a popup has drifted up.
func (s *Score) Rise(p Popup) int {
	return (s.popupTicks - p.Remaining) / 2
}

func (s *Score) Total() int { return s.total }
func (s *Score) Popups() []Popup { return s.popups }

// Reset zeroes the total and clears popups.
func (s *Score) Reset() {
	s.total = 0
	s.popups = nil
}
