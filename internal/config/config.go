// Package config loads goframe settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds analysis and rendering settings.
type Config struct {
	Analysis Analysis `toml:"analysis"`
	Diagram  Diagram  `toml:"diagram"`
}

// Analysis settings.
type Analysis struct {
	// Tolerance is the relative tolerance used when comparing results,
	// e.g. to print a single value when min and max coincide.
	Tolerance float64 `toml:"tolerance"`

	// ResidualWarning is the solve residual above which a warning is logged.
	ResidualWarning float64 `toml:"residual_warning"`
}

// Diagram settings.
type Diagram struct {
	Samples     int     `toml:"samples"`
	Width       float64 `toml:"width"` // inches, image export
	Height      float64 `toml:"height"`
	ASCIIHeight int     `toml:"ascii_height"`
	ASCIIWidth  int     `toml:"ascii_width"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Analysis: Analysis{Tolerance: 1e-9, ResidualWarning: 1e-6},
		Diagram:  Diagram{Samples: 200, Width: 8, Height: 4, ASCIIHeight: 12, ASCIIWidth: 60},
	}
}

// DefaultPath returns ~/.goframe/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".goframe", "config.toml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate checks the settings are usable.
func (c *Config) Validate() error {
	if c.Analysis.Tolerance <= 0 {
		return errors.New("analysis.tolerance must be positive")
	}
	if c.Analysis.ResidualWarning <= 0 {
		return errors.New("analysis.residual_warning must be positive")
	}
	if c.Diagram.Samples < 2 {
		return errors.New("diagram.samples must be at least 2")
	}
	if c.Diagram.Width <= 0 || c.Diagram.Height <= 0 {
		return errors.New("diagram.width and diagram.height must be positive")
	}
	if c.Diagram.ASCIIHeight < 1 || c.Diagram.ASCIIWidth < 1 {
		return errors.New("diagram.ascii_height and diagram.ascii_width must be positive")
	}
	return nil
}
