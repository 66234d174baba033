package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Round is one finished game round.
type Round struct {
	ID          string
	Score       int
	Waves       int
	Shots       int
	Hits        int
	Sensitivity float64
	StartedAt   time.Time
	FinishedAt  time.Time
}

// Accuracy returns hits per shot, or 0 when nothing was fired.
func (r *Round) Accuracy() float64 {
	if r.Shots == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Shots)
}

// RoundRepository provides access to recorded rounds.
type RoundRepository struct {
	db *sql.DB
}

// Rounds returns the round repository for this store.
func (s *Store) Rounds() *RoundRepository {
	return &RoundRepository{db: s.db}
}

const roundColumns = `id, score, waves, shots, hits, sensitivity, started_at, finished_at`

// Create inserts a finished round. FinishedAt defaults to now.
func (r *RoundRepository) Create(round *Round) error {
	if round.FinishedAt.IsZero() {
		round.FinishedAt = time.Now()
	}
	if round.StartedAt.IsZero() {
		round.StartedAt = round.FinishedAt
	}

	_, err := r.db.Exec(
		`INSERT INTO rounds (`+roundColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		round.ID, round.Score, round.Waves, round.Shots, round.Hits,
		round.Sensitivity, round.StartedAt, round.FinishedAt,
	)
	return err
}

// GetByID retrieves a round by its ID.
func (r *RoundRepository) GetByID(id string) (*Round, error) {
	row := r.db.QueryRow(`SELECT `+roundColumns+` FROM rounds WHERE id = ?`, id)
	return scanRound(row)
}

// List returns the most recently finished rounds, newest first.
func (r *RoundRepository) List(limit int) ([]*Round, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.Query(
		`SELECT `+roundColumns+` FROM rounds
		 ORDER BY finished_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rounds []*Round
	for rows.Next() {
		round, err := scanRound(rows)
		if err != nil {
			return nil, err
		}
		rounds = append(rounds, round)
	}

	return rounds, rows.Err()
}

// Best returns the highest scoring round. Ties go to the earlier round.
func (r *RoundRepository) Best() (*Round, error) {
	row := r.db.QueryRow(
		`SELECT ` + roundColumns + ` FROM rounds
		 ORDER BY score DESC, finished_at ASC, rowid ASC LIMIT 1`,
	)
	return scanRound(row)
}

// Count returns the number of recorded rounds.
func (r *RoundRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM rounds`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRound(s scanner) (*Round, error) {
	round := &Round{}
	err := s.Scan(
		&round.ID, &round.Score, &round.Waves, &round.Shots, &round.Hits,
		&round.Sensitivity, &round.StartedAt, &round.FinishedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return round, nil
}
