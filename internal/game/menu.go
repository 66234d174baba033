package game

import "math"

// Rect is an axis-aligned box in canvas pixels. Contains is inclusive on
// every edge.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies in r.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x <= r.X+r.W && r.Y <= y && y <= r.Y+r.H
}

// Title screen layout.
const (
	titleY      = 5
	titleH      = 108
	buttonW     = 127
	buttonH     = 28
	sensLabelW  = 98
	stepButtonW = 16
	backSize    = 36
)

// TitleMenu is the title screen: a start button and a sensitivity stepper.
type TitleMenu struct {
	cfg  SensitivityConfig
	sens float64

	Start     Rect
	SensLabel Rect
	Down      Rect
	Up        Rect
}

// NewTitleMenu lays out the title screen for an arena.
func NewTitleMenu(cfg SensitivityConfig, arena Arena) *TitleMenu {
	start := Rect{X: (arena.W - buttonW) / 2, Y: titleY + titleH + 10, W: buttonW, H: buttonH}
	label := Rect{X: (arena.W/2 - sensLabelW) / 2, Y: start.Y + start.H + 20, W: sensLabelW, H: buttonH}
	m := &TitleMenu{
		cfg:       cfg,
		Start:     start,
		SensLabel: label,
		Down:      Rect{X: arena.W/2 + 10, Y: label.Y, W: stepButtonW, H: buttonH},
		Up:        Rect{X: arena.W - 10 - stepButtonW, Y: label.Y, W: stepButtonW, H: buttonH},
	}
	m.SetSensitivity(cfg.Initial)
	return m
}

// Select handles a click or dwell at (x, y). It reports whether start was
// chosen; the stepper buttons adjust the sensitivity.
func (m *TitleMenu) Select(x, y int) bool {
	if m.Start.Contains(x, y) {
		return true
	}
	if m.Up.Contains(x, y) {
		m.SetSensitivity(m.sens + m.cfg.Step)
	}
	if m.Down.Contains(x, y) {
		m.SetSensitivity(m.sens - m.cfg.Step)
	}
	return false
}

// SetSensitivity clamps v to the configured range and snaps it to the step.
func (m *TitleMenu) SetSensitivity(v float64) {
	if m.cfg.Step > 0 {
		v = math.Round(v/m.cfg.Step) * m.cfg.Step
	}
	m.sens = min(max(v, m.cfg.Min), m.cfg.Max)
}

// Sensitivity returns the selected aim sensitivity.
func (m *TitleMenu) Sensitivity() float64 { return m.sens }

// ResultMenu is the result screen. Only the back button is interactive.
type ResultMenu struct {
	Back Rect
}

// NewResultMenu lays out the result screen for an arena.
func NewResultMenu(arena Arena) ResultMenu {
	return ResultMenu{Back: Rect{X: (arena.W - backSize) / 2, Y: arena.H / 4 * 3, W: backSize, H: backSize}}
}

// Select reports whether (x, y) hits the back button.
func (m ResultMenu) Select(x, y int) bool {
	return m.Back.Contains(x, y)
}
