// Package render hosts the session in an ebiten window: it samples input,
// ticks the session at a fixed rate and draws its state.
package render

import (
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ayusman/obakehunt/internal/game"
)

// TPS is the fixed game tick rate.
const TPS = 30

// Game adapts a session to ebiten.Game.
type Game struct {
	session *game.Session
	quit    atomic.Bool
}

// New creates a Game drawing s.
func New(s *game.Session) *Game {
	return &Game{session: s}
}

// Quit asks the window to close on the next tick. Safe from any goroutine.
func (g *Game) Quit() {
	g.quit.Store(true)
}

// Update samples input and advances the session by one tick.
func (g *Game) Update() error {
	if g.quit.Load() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	x, y := ebiten.CursorPosition()
	g.session.Update(newInput(
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		x, y,
		ebiten.IsKeyPressed(ebiten.KeyR),
	))
	return nil
}

// Draw renders the current session state.
func (g *Game) Draw(screen *ebiten.Image) {
	drawSession(screen, g.session)
}

// Layout fixes the logical screen to the arena size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	a := g.session.Arena()
	return a.W, a.H
}

// Run opens the window at scale times the arena size and blocks until it closes.
func Run(g *Game, title string, scale int) error {
	if scale < 1 {
		scale = 1
	}
	a := g.session.Arena()
	ebiten.SetTPS(TPS)
	ebiten.SetWindowSize(a.W*scale, a.H*scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

func newInput(released bool, x, y int, reset bool) game.Input {
	in := game.Input{Reset: reset}
	if released {
		in.Click = true
		in.ClickX, in.ClickY = x, y
	}
	return in
}
