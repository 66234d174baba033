package tray

import "testing"

func TestTray_Toggle(t *testing.T) {
	tr := New()
	if !tr.IsEnabled() {
		t.Fatal("tracking should start enabled")
	}

	var got []bool
	tr.OnToggle(func(enabled bool) { got = append(got, enabled) })

	tr.handleToggle()
	tr.handleToggle()

	if len(got) != 2 || got[0] != false || got[1] != true {
		t.Errorf("toggle callbacks = %v, want [false true]", got)
	}
	if !tr.IsEnabled() {
		t.Error("two toggles should leave tracking enabled")
	}
}

func TestTray_History(t *testing.T) {
	tr := New()
	called := false
	tr.OnHistory(func() { called = true })

	tr.handleHistory()
	if !called {
		t.Error("history callback was not called")
	}
}

func TestTray_SetLastRound(t *testing.T) {
	tr := New()

	last, best := tr.Labels()
	if last != "Last: none" || best != "Best: none" {
		t.Errorf("initial labels = %q, %q", last, best)
	}

	tr.SetLastRound(4000, 9000)
	last, best = tr.Labels()
	if last != "Last: 4000" || best != "Best: 9000" {
		t.Errorf("labels = %q, %q, want Last: 4000, Best: 9000", last, best)
	}
}

func TestToggleTitle(t *testing.T) {
	if toggleTitle(true) == toggleTitle(false) {
		t.Error("enabled and paused titles should differ")
	}
}
