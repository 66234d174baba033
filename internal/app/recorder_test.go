package app

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(store.MemoryPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecorder_Finish(t *testing.T) {
	s := newTestStore(t)

	start := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := start
	rec := NewRecorder(s)
	rec.now = func() time.Time { return clock }

	var finished *store.Round
	rec.OnFinish = func(r *store.Round) { finished = r }

	if rec.Last() != nil {
		t.Fatal("Last() should be nil before any round")
	}

	rec.Begin()
	clock = start.Add(2 * time.Minute)
	rec.Finish(game.RoundStats{Score: 7000, Waves: 15, Shots: 9, Hits: 7, Sensitivity: 0.5})
	rec.Close()

	if finished == nil {
		t.Fatal("OnFinish was not called")
	}
	if _, err := uuid.Parse(finished.ID); err != nil {
		t.Errorf("round ID %q is not a UUID: %v", finished.ID, err)
	}
	if rec.Last() != finished {
		t.Error("Last() should return the saved round")
	}

	got, err := s.Rounds().GetByID(finished.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Score != 7000 || got.Hits != 7 || got.Shots != 9 || got.Waves != 15 || got.Sensitivity != 0.5 {
		t.Errorf("stored round = %+v", got)
	}
	if d := got.FinishedAt.Sub(got.StartedAt); d != 2*time.Minute {
		t.Errorf("round duration = %v, want 2m", d)
	}
}

func TestRecorder_DoesNotWaitForWrites(t *testing.T) {
	s := newTestStore(t)
	rec := NewRecorder(s)

	gate := make(chan struct{})
	rec.enqueue("gate", func() { <-gate })

	done := make(chan struct{})
	go func() {
		rec.Begin()
		rec.Finish(game.RoundStats{Score: 2000})
		rec.SaveSensitivity(0.7)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Finish and SaveSensitivity blocked on a busy writer")
	}
	if rec.Last() != nil {
		t.Error("round should not be saved while the writer is busy")
	}

	close(gate)
	rec.Close()

	if rec.Last() == nil || rec.Last().Score != 2000 {
		t.Errorf("Last() = %+v, want the queued round", rec.Last())
	}
	if v, err := s.Settings().GetFloat(store.SettingSensitivity); err != nil || v != 0.7 {
		t.Errorf("saved sensitivity = %v, %v, want 0.7", v, err)
	}
}

func TestRecorder_FullQueueDrops(t *testing.T) {
	s := newTestStore(t)
	rec := NewRecorder(s)

	gate := make(chan struct{})
	rec.enqueue("gate", func() { <-gate })
	// Wait for the writer to pick up the gate so the queue is empty.
	deadline := time.Now().Add(time.Second)
	for len(rec.jobs) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("writer never started")
		}
		time.Sleep(time.Millisecond)
	}

	for i := 0; i < recorderQueue+5; i++ {
		rec.Finish(game.RoundStats{Score: i})
	}
	close(gate)
	rec.Close()

	n, err := s.Rounds().Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != recorderQueue {
		t.Errorf("saved %d rounds, want %d", n, recorderQueue)
	}
}

func TestRecorder_StoreFailureIsLogged(t *testing.T) {
	s, err := store.New(store.MemoryPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	rec := NewRecorder(s)
	called := false
	rec.OnFinish = func(*store.Round) { called = true }
	s.Close()

	rec.Begin()
	rec.Finish(game.RoundStats{Score: 1000})
	rec.Close()

	if called {
		t.Error("OnFinish should not run when the save fails")
	}
	if rec.Last() != nil {
		t.Error("Last() should stay nil when the save fails")
	}
}

func TestRecorder_CloseTwice(t *testing.T) {
	rec := NewRecorder(newTestStore(t))
	rec.Close()
	rec.Close()
	rec.Finish(game.RoundStats{Score: 1})
	if rec.Last() != nil {
		t.Error("writes after Close should be dropped")
	}
}
