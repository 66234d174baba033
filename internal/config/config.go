// Package config loads the game settings from YAML and the environment.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/obakehunt/internal/capture"
	"github.com/ayusman/obakehunt/internal/detector"
	"github.com/ayusman/obakehunt/internal/game"
	"github.com/ayusman/obakehunt/internal/gesture"
)

//go:embed default.yaml
var defaultYAML []byte

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid config")

// Config is everything the binary can be tuned with.
type Config struct {
	// Addr is the HTTP listen address. Empty disables the server.
	Addr      string `yaml:"addr"`
	Database  string `yaml:"database"`
	StaticDir string `yaml:"static_dir"`

	Camera   capture.Config  `yaml:"camera"`
	Detector detector.Config `yaml:"detector"`
	Gesture  gesture.Config  `yaml:"gesture"`
	Game     game.Config     `yaml:"game"`
}

// Default returns the built-in configuration.
func Default() Config {
	cfg := Config{
		Camera:   capture.DefaultConfig(),
		Detector: detector.DefaultConfig(),
		Gesture:  gesture.DefaultConfig(),
		Game:     game.DefaultConfig(),
	}
	if err := decode(bytes.NewReader(defaultYAML), &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate checks the settings the game cannot run without.
func (c *Config) Validate() error {
	g := c.Game
	s := g.Sensitivity
	switch {
	case c.Camera.FPS <= 0:
		return fmt.Errorf("%w: camera fps must be positive", ErrInvalid)
	case g.Arena.W <= 0 || g.Arena.H <= 0:
		return fmt.Errorf("%w: arena must have a positive size", ErrInvalid)
	case g.Magazine.Capacity <= 0:
		return fmt.Errorf("%w: magazine capacity must be positive", ErrInvalid)
	case g.Magazine.ReloadTicks < 0:
		return fmt.Errorf("%w: reload ticks must not be negative", ErrInvalid)
	case g.Obake.Width <= 0 || g.Obake.Height <= 0:
		return fmt.Errorf("%w: obake must have a positive size", ErrInvalid)
	case g.Obake.ZigzagDuration <= 0:
		return fmt.Errorf("%w: zigzag duration must be positive", ErrInvalid)
	case g.Obake.AppearTime < 0:
		return fmt.Errorf("%w: appear time must not be negative", ErrInvalid)
	case g.Wave.SpawnDelay < 0:
		return fmt.Errorf("%w: spawn delay must not be negative", ErrInvalid)
	case g.Effects.AmbientMaxScore <= 0:
		return fmt.Errorf("%w: ambient max score must be positive", ErrInvalid)
	case g.Obake.MinFlip < 0 || g.Obake.MinFlip > g.Obake.MaxFlip:
		return fmt.Errorf("%w: obake flip range %d..%d", ErrInvalid, g.Obake.MinFlip, g.Obake.MaxFlip)
	case len(g.Wave.Groups) == 0:
		return fmt.Errorf("%w: wave table is empty", ErrInvalid)
	case s.Min <= 0 || s.Min > s.Max || s.Step <= 0:
		return fmt.Errorf("%w: sensitivity range %v..%v step %v", ErrInvalid, s.Min, s.Max, s.Step)
	case s.Initial < s.Min || s.Initial > s.Max:
		return fmt.Errorf("%w: sensitivity %v outside %v..%v", ErrInvalid, s.Initial, s.Min, s.Max)
	case c.Gesture.HistoryWindow < c.Gesture.Shoot.MarkWindow || c.Gesture.HistoryWindow < c.Gesture.Point.DwellTime:
		return fmt.Errorf("%w: history window %vs is shorter than a gesture window", ErrInvalid, c.Gesture.HistoryWindow)
	}

	for i, wave := range g.Wave.Groups {
		for _, n := range wave {
			if n < 0 || n > len(g.Wave.Anchors) {
				return fmt.Errorf("%w: wave %d wants %d targets but there are %d anchors", ErrInvalid, i, n, len(g.Wave.Anchors))
			}
		}
	}
	return nil
}
