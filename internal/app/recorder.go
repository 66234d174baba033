package app

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/store"
)

// recorderQueue is how many writes may wait for the database.
const recorderQueue = 16

// Recorder saves finished rounds and the chosen sensitivity to the store.
// Writes run on the recorder's own goroutine, so callers on the game tick
// never wait on the database.
type Recorder struct {
	rounds   *store.RoundRepository
	settings *store.SettingRepository
	now      func() time.Time

	// OnFinish is called on the writer goroutine after a round is saved.
	OnFinish func(r *store.Round)

	jobs   chan func()
	doneCh chan struct{}

	mu      sync.Mutex
	closed  bool
	started time.Time
	last    *store.Round
}

// NewRecorder creates a recorder writing to s and starts its writer.
// Call Close to flush pending writes.
func NewRecorder(s *store.Store) *Recorder {
	r := &Recorder{
		rounds:   s.Rounds(),
		settings: s.Settings(),
		now:      time.Now,
		jobs:     make(chan func(), recorderQueue),
		doneCh:   make(chan struct{}),
	}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.doneCh)
	for job := range r.jobs {
		job()
	}
}

// enqueue hands job to the writer. A full queue drops the job.
func (r *Recorder) enqueue(what string, job func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		log.Printf("Recorder closed, dropping %s", what)
		return
	}
	select {
	case r.jobs <- job:
	default:
		log.Printf("Recorder queue full, dropping %s", what)
	}
}

// Begin marks the start of a round.
func (r *Recorder) Begin() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = r.now()
}

// Finish queues the round for saving. Store failures are logged and the
// game goes on.
func (r *Recorder) Finish(stats game.RoundStats) {
	r.mu.Lock()
	round := &store.Round{
		ID:          uuid.New().String(),
		Score:       stats.Score,
		Waves:       stats.Waves,
		Shots:       stats.Shots,
		Hits:        stats.Hits,
		Sensitivity: stats.Sensitivity,
		StartedAt:   r.started,
		FinishedAt:  r.now(),
	}
	r.mu.Unlock()

	r.enqueue("round", func() { r.save(round) })
}

func (r *Recorder) save(round *store.Round) {
	if err := r.rounds.Create(round); err != nil {
		log.Printf("Failed to save round: %v", err)
		return
	}
	log.Printf("Round %s saved: score %d, %d/%d hits", round.ID, round.Score, round.Hits, round.Shots)

	r.mu.Lock()
	r.last = round
	cb := r.OnFinish
	r.mu.Unlock()

	if cb != nil {
		cb(round)
	}
}

// SaveSensitivity queues the sensitivity for saving.
func (r *Recorder) SaveSensitivity(v float64) {
	r.enqueue("sensitivity", func() {
		if err := r.settings.SetFloat(store.SettingSensitivity, v); err != nil {
			log.Printf("Failed to save sensitivity: %v", err)
		}
	})
}

// Last returns the most recently saved round, or nil.
func (r *Recorder) Last() *store.Round {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Close stops accepting writes and waits for queued ones to finish.
func (r *Recorder) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.jobs)
	}
	r.mu.Unlock()
	<-r.doneCh
}

var _ game.RoundRecorder = (*Recorder)(nil)
