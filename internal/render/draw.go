package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/hand"
)

// Debug font cell size.
const (
	charW = 6
	charH = 16
)

func drawSession(screen *ebiten.Image, s *game.Session) {
	screen.Fill(colorBackground)

	switch s.State() {
	case game.StateConnecting:
		drawConnecting(screen, s)
	case game.StateTitle:
		drawTitle(screen, s)
		drawPointer(screen, s)
	case game.StatePlay:
		drawPlay(screen, s)
	case game.StateResult:
		drawResult(screen, s)
		drawPointer(screen, s)
	}

	if s.State() != game.StateConnecting {
		drawHealth(screen, s)
	}
}

func drawConnecting(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	dots := (s.Tick() / 10) % 4
	msg := "CONNECTING" + "..."[:min(dots, 3)]
	ebitenutil.DebugPrintAt(screen, msg, centerX(msg, a.W), a.H/2-charH/2)
	hint := "waiting for camera"
	ebitenutil.DebugPrintAt(screen, hint, centerX(hint, a.W), a.H/2+charH)
}

func drawTitle(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	m := s.Menu()

	// A single ghost bobbing above the title.
	bob := float64((s.Tick()/15)%2) * 2
	drawGhost(screen, float64(a.W)/2-16, 30+bob, 32, 32, colorObake, 1, s.Tick()/30%2 == 0)

	title := "OBAKE HUNT"
	ebitenutil.DebugPrintAt(screen, title, centerX(title, a.W), 80)

	drawButton(screen, m.Start, "START")
	drawLabel(screen, m.SensLabel, fmt.Sprintf("SENS %.1f", m.Sensitivity()))
	drawButton(screen, m.Down, "-")
	drawButton(screen, m.Up, "+")

	t := s.Tracker()
	w, h := t.VideoSize()
	status := fmt.Sprintf("CAM %dx%d", w, h)
	ebitenutil.DebugPrintAt(screen, status, 4, a.H-charH-2)

	handStatus := "HAND --"
	if t.HandFound() {
		handStatus = "HAND OK"
	}
	ebitenutil.DebugPrintAt(screen, handStatus, a.W-len(handStatus)*charW-4, a.H-charH-2)
}

func drawPlay(screen *ebiten.Image, s *game.Session) {
	dx, dy := s.Shake().Offset()
	w, h := spriteSize(s)
	fx := s.Particles()

	for _, c := range fx.Corpses() {
		drawGhost(screen, c.X+dx, c.Y+dy, w, h, colorCorpse, fx.CorpseAlpha(c), c.FacingRight)
	}

	for _, o := range s.Obake() {
		switch o.Phase() {
		case game.PhaseAppearing:
			drawGhost(screen, o.X+dx, o.Y+dy, w, h, colorObake, o.AppearFraction(), o.FacingRight())
		case game.PhaseActive:
			drawGhost(screen, o.X+dx, o.Y+dy, w, h, colorObake, 1, o.FacingRight())
		}
	}

	sc := s.Score()
	for _, p := range sc.Popups() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprint(p.Value), int(p.X+dx), int(p.Y+dy)-sc.Rise(p))
	}

	drawHUD(screen, s)
	drawAim(screen, s)
}

func drawHUD(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", s.Score().Total()), 4, 2)

	wave := fmt.Sprintf("WAVE %d/%d", min(s.Wave().Index(), s.Wave().Len()), s.Wave().Len())
	ebitenutil.DebugPrintAt(screen, wave, a.W-len(wave)*charW-4, 2)

	m := s.Magazine()
	for i := range m.Capacity() {
		clr := colorEmpty
		if i < m.Rounds() {
			clr = colorRound
		}
		vector.DrawFilledRect(screen, float32(4+i*8), float32(a.H-16), 5, 12, clr, false)
	}

	if m.Reloading() {
		x, y := float32(4+m.Capacity()*8+4), float32(a.H-12)
		vector.StrokeRect(screen, x, y, 48, 5, 1, colorReload, false)
		vector.DrawFilledRect(screen, x, y, float32(48*m.ReloadProgress()), 5, colorReload, false)
	} else if m.Empty() {
		ebitenutil.DebugPrintAt(screen, "RELOAD!", 4+m.Capacity()*8+4, a.H-charH-2)
	}
}

func drawAim(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	t := s.Tracker()

	if f := t.Latest(); f != nil && t.HandFound() {
		drawHand(screen, f, a)
		if f.HasAim() {
			x, y := float32(f.Aim.X*float64(a.W)), float32(f.Aim.Y*float64(a.H))
			vector.StrokeCircle(screen, x, y, 6, 1, colorAim, true)
			vector.StrokeLine(screen, x-9, y, x+9, y, 1, colorAim, false)
			vector.StrokeLine(screen, x, y-9, x, y+9, 1, colorAim, false)
		}
	}

	if mark, ok := t.Mark(); ok {
		vector.StrokeCircle(screen, float32(mark.X*float64(a.W)), float32(mark.Y*float64(a.H)), 10, 1, colorMark, true)
	}
}

func drawHand(screen *ebiten.Image, f *hand.Frame, a game.Arena) {
	for _, p := range f.Points {
		vector.DrawFilledCircle(screen, float32(p.X*float64(a.W)), float32(p.Y*float64(a.H)), 1.5, fade(colorHand, 0.6), true)
	}
}

func drawResult(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	w, h := spriteSize(s)

	for _, d := range s.Particles().Drifters() {
		drawGhost(screen, d.X, d.Y, w, h, paletteColor(d.Color), 0.8, d.FacingRight)
	}

	stats := s.RoundStats()
	lines := resultLines(stats)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, centerX(line, a.W), 40+i*(charH+4))
	}

	drawButton(screen, s.Result().Back, "<")
}

func drawPointer(screen *ebiten.Image, s *game.Session) {
	p := s.Tracker().Pointer()
	x, y, ok := p.Position()
	if !ok {
		return
	}
	vector.StrokeCircle(screen, float32(x), float32(y), 8, 1, colorDwell, true)
	if p.Visible() {
		vector.DrawFilledCircle(screen, float32(x), float32(y), float32(8*p.Progress()), fade(colorDwell, 0.7), true)
	}
}

func drawHealth(screen *ebiten.Image, s *game.Session) {
	a := s.Arena()
	vector.DrawFilledCircle(screen, float32(a.W-4), float32(a.H-4), 2, healthColor(s.Tracker().Health()), true)
}

func spriteSize(s *game.Session) (w, h float64) {
	iw, ih := s.ObakeSize()
	return float64(iw), float64(ih)
}

// drawGhost draws an obake with its top-left corner at (x, y).
func drawGhost(screen *ebiten.Image, x, y, w, h float64, body color.RGBA, alpha float64, facingRight bool) {
	if alpha <= 0 {
		return
	}
	c := fade(body, alpha)
	r := float32(w / 2)
	cx, cy := float32(x)+r, float32(y)+r

	vector.DrawFilledCircle(screen, cx, cy, r, c, true)
	vector.DrawFilledRect(screen, float32(x), cy, float32(w), float32(h)/2-r/3, c, false)
	// Ragged hem.
	for i := range 3 {
		vector.DrawFilledCircle(screen, float32(x)+r/3+float32(i)*2*r/3, float32(y+h)-r/3, r/3, c, true)
	}

	eyeDX := -r / 3
	if facingRight {
		eyeDX = r / 3
	}
	eye := fade(colorEye, alpha)
	vector.DrawFilledCircle(screen, cx+eyeDX-r/4, cy-r/6, r/8, eye, true)
	vector.DrawFilledCircle(screen, cx+eyeDX+r/4, cy-r/6, r/8, eye, true)
}

func drawButton(screen *ebiten.Image, r game.Rect, label string) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), colorButton, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, colorButtonEdge, false)
	drawLabel(screen, r, label)
}

func drawLabel(screen *ebiten.Image, r game.Rect, label string) {
	ebitenutil.DebugPrintAt(screen, label, r.X+centerX(label, r.W), r.Y+(r.H-charH)/2)
}
