package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables read by ApplyEnv and Path.
const (
	EnvConfig = "OBAKE_CONFIG"
	EnvAddr   = "OBAKE_ADDR"
	EnvCamera = "OBAKE_CAMERA"
	EnvSens   = "OBAKE_SENS"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnv loads .env style files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Path picks the config file: the flag value if set, else OBAKE_CONFIG.
func Path(flagValue string, lookup LookupFunc) string {
	if flagValue != "" {
		return flagValue
	}
	if v, ok := lookup(EnvConfig); ok {
		return v
	}
	return ""
}

// ApplyEnv overrides cfg with the OBAKE_* variables.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	if v, ok := lookup(EnvAddr); ok {
		cfg.Addr = v
	}
	if v, ok := lookup(EnvCamera); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvCamera, err)
		}
		cfg.Camera.Device = n
	}
	if v, ok := lookup(EnvSens); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSens, err)
		}
		cfg.Game.Sensitivity.Initial = f
	}
	return cfg.Validate()
}
