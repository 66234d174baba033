// Package tray provides a system tray menu for pausing tracking and
// showing the last round.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"
)

// Tray represents the system tray menu.
type Tray struct {
	onToggle  func(enabled bool)
	onHistory func()
	onQuit    func()
	enabled   bool
	lastText  string
	bestText  string
	mu        sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuLast   *systray.MenuItem
	menuBest   *systray.MenuItem
}

// New creates a new Tray with tracking enabled.
func New() *Tray {
	return &Tray{
		enabled:  true,
		lastText: lastTitle(0, false),
		bestText: bestTitle(0, false),
	}
}

// OnToggle sets the callback called when tracking is paused or resumed.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnHistory sets the callback for the round history menu item.
func (t *Tray) OnHistory(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onHistory = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the tray and blocks until Quit. Use it when there is no game window.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// Register sets up the tray without taking over the main loop, so the game
// window can own it.
func (t *Tray) Register() {
	systray.Register(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
func (t *Tray) onReady() {
	systray.SetTitle("Obake")
	systray.SetTooltip("Obake Hunt")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Pause or resume hand tracking")
	systray.AddSeparator()

	t.menuLast = systray.AddMenuItem(t.lastText, "Score of the last round")
	t.menuLast.Disable()
	t.menuBest = systray.AddMenuItem(t.bestText, "Best score this session")
	t.menuBest.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuHistory := systray.AddMenuItem("Round History...", "Open the round history in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit Obake Hunt")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuHistory.ClickedCh:
				t.handleHistory()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) onExit() {}

// handleToggle flips tracking and notifies the callback.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled

	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}

	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleHistory() {
	t.mu.RLock()
	callback := t.onHistory
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetLastRound shows a finished round's score and the best so far.
func (t *Tray) SetLastRound(score, best int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastText = lastTitle(score, true)
	t.bestText = bestTitle(best, true)
	if t.menuLast != nil {
		t.menuLast.SetTitle(t.lastText)
	}
	if t.menuBest != nil {
		t.menuBest.SetTitle(t.bestText)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Labels returns the current score menu titles.
func (t *Tray) Labels() (last, best string) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastText, t.bestText
}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Tracking"
	}
	return "○ Paused"
}

func lastTitle(score int, ok bool) string {
	if !ok {
		return "Last: none"
	}
	return fmt.Sprintf("Last: %d", score)
}

func bestTitle(score int, ok bool) string {
	if !ok {
		return "Best: none"
	}
	return fmt.Sprintf("Best: %d", score)
}
