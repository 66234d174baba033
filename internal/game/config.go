// Package game holds the shooting gallery rules: targets, waves, ammo,
// score, visual effects, and the session state machine that ties them to
// gesture input.
package game

// Arena is the play field size in canvas pixels.
type Arena struct {
	W int `yaml:"width"`
	H int `yaml:"height"`
}

// Point is a position in canvas pixels.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ObakeConfig holds target size, speed, and timing. Times are in ticks.
type ObakeConfig struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	CollisionMargin float64 `yaml:"collision_margin"`
	UpSpeed         float64 `yaml:"up_speed"`
	LateralSpeed    float64 `yaml:"lateral_speed"`
	ZigzagDuration  int     `yaml:"zigzag_duration"`
	MinFlip         int     `yaml:"min_flip"`
	MaxFlip         int     `yaml:"max_flip"`
	AppearTime      int     `yaml:"appear_time"`
	HitScore        int     `yaml:"hit_score"`
}

// WaveConfig is the wave table. Groups[i][j] is how many targets group j
// of wave i spawns; group j waits SpawnDelay*j ticks.
type WaveConfig struct {
	Groups     [][]int `yaml:"groups"`
	Anchors    []Point `yaml:"anchors"`
	SpawnDelay int     `yaml:"spawn_delay"`
}

// MagazineConfig holds ammo capacity and reload duration in ticks.
type MagazineConfig struct {
	Capacity    int `yaml:"capacity"`
	ReloadTicks int `yaml:"reload_ticks"`
}

// EffectsConfig holds the cosmetic timings.
type EffectsConfig struct {
	PopupTicks      int     `yaml:"popup_ticks"`
	DeadTicks       int     `yaml:"dead_ticks"`
	ShakeTicks      int     `yaml:"shake_ticks"`
	ShakeBreadth    int     `yaml:"shake_breadth"`
	AmbientInterval int     `yaml:"ambient_interval"`
	AmbientMaxScore float64 `yaml:"ambient_max_score"`
	AmbientSpeed    float64 `yaml:"ambient_speed"`
}

// SensitivityConfig bounds the aim sensitivity selectable on the title screen.
type SensitivityConfig struct {
	Initial float64 `yaml:"initial"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Step    float64 `yaml:"step"`
}

// Config groups all gameplay tunables.
type Config struct {
	Arena       Arena             `yaml:"arena"`
	Obake       ObakeConfig       `yaml:"obake"`
	Wave        WaveConfig        `yaml:"wave"`
	Magazine    MagazineConfig    `yaml:"magazine"`
	Effects     EffectsConfig     `yaml:"effects"`
	Sensitivity SensitivityConfig `yaml:"sensitivity"`
}

// DefaultConfig returns the stock game.
func DefaultConfig() Config {
	return Config{
		Arena: Arena{W: 256, H: 256},
		Obake: ObakeConfig{
			Width:          32,
			Height:         32,
			UpSpeed:        0.2,
			LateralSpeed:   0.3,
			ZigzagDuration: 60,
			MinFlip:        120,
			MaxFlip:        300,
			AppearTime:     20,
			HitScore:       1000,
		},
		Wave: WaveConfig{
			Groups: [][]int{
				{2}, {2}, {3}, {3},
				{2, 2}, {2, 2}, {3, 2}, {3, 2}, {3, 3}, {3, 3},
				{6},
			},
			Anchors: []Point{
				{65, 110}, {130, 110}, {180, 110},
				{90, 160}, {150, 155}, {210, 140},
			},
			SpawnDelay: 120,
		},
		Magazine: MagazineConfig{
			Capacity:    6,
			ReloadTicks: 60,
		},
		Effects: EffectsConfig{
			PopupTicks:      30,
			DeadTicks:       30,
			ShakeTicks:      10,
			ShakeBreadth:    3,
			AmbientInterval: 5,
			AmbientMaxScore: 40000,
			AmbientSpeed:    1,
		},
		Sensitivity: SensitivityConfig{
			Initial: 0.5,
			Min:     0.1,
			Max:     1.0,
			Step:    0.1,
		},
	}
}
