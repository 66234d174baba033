package gesture

import "github.com/ayusman/obakehunt/internal/hand"

// ShootConfig holds the shoot gesture thresholds. Distances are in
// normalized screen units, durations in seconds.
type ShootConfig struct {
	// Length is how far the aim must rise above the mark to fire.
	Length float64 `yaml:"length"`

	// MarkAccuracy is the maximum aim drift for the hand to count as settled.
	MarkAccuracy float64 `yaml:"mark_accuracy"`

	// MarkWindow is the look-back duration used to decide the aim is settled.
	MarkWindow float64 `yaml:"mark_window"`

	// MarkActive is how long a mark stays armed without a shot.
	MarkActive float64 `yaml:"mark_active"`
}

// PointConfig holds the dwell-select thresholds.
type PointConfig struct {
	DwellTime     float64 `yaml:"dwell_time"`
	DwellAccuracy float64 `yaml:"dwell_accuracy"`
	// Interval is the minimum number of ticks between two selections.
	Interval  int     `yaml:"interval"`
	DrawStart float64 `yaml:"draw_start"`
}

// Config groups the tracker and detector tunables.
type Config struct {
	// HistoryWindow is how long hand frames are kept, in seconds.
	HistoryWindow float64     `yaml:"history_window"`
	Shoot         ShootConfig `yaml:"shoot"`
	Point         PointConfig `yaml:"point"`
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		HistoryWindow: hand.DefaultWindow,
		Shoot: ShootConfig{
			Length:       0.25,
			MarkAccuracy: 0.05,
			MarkWindow:   0.5,
			MarkActive:   1,
		},
		Point: PointConfig{
			DwellTime:     1,
			DwellAccuracy: 0.05,
			Interval:      20,
			DrawStart:     0.1,
		},
	}
}
