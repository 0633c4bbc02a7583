package meta

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ego/game"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

var policies = []string{"simple", "atari", "local"}

// Config is the YAML run configuration. Absent fields keep their defaults.
type Config struct {
	BoardSize        int     `yaml:"board_size"`
	Komi             float64 `yaml:"komi"`
	Policy           string  `yaml:"policy"`
	Playouts         int     `yaml:"playouts"`
	Goroutines       int     `yaml:"goroutines"`
	Seed             uint64  `yaml:"seed"`
	Prior            float64 `yaml:"prior"`
	AafFraction      float64 `yaml:"aaf_fraction"`
	InfluenceScale   float64 `yaml:"influence_scale"`
	LocalProbability float64 `yaml:"local_probability"`
	Mercy            bool    `yaml:"mercy"`
	MercyThreshold   float64 `yaml:"mercy_threshold"`
	Temperature      float64 `yaml:"temperature"`
	Progress         bool    `yaml:"progress"`
	LogLevel         string  `yaml:"log_level"`
	OutputDir        string  `yaml:"output_dir"`
}

func DefaultConfig() Config {
	return Config{
		BoardSize:        BOARD_SIZE,
		Komi:             KOMI,
		Policy:           "atari",
		Playouts:         PLAYOUTS,
		Goroutines:       GO_ROUTINES,
		Prior:            PRIOR,
		AafFraction:      AAF_FRACTION,
		InfluenceScale:   INFLUENCE_SCALE,
		LocalProbability: LOCAL_PROBABILITY,
		Mercy:            USE_MERCY_RULE,
		MercyThreshold:   MERCY_THRESHOLD,
		LogLevel:         "info",
		OutputDir:        "experiments",
	}
}

// LoadConfig reads a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Policy = strings.ToLower(cfg.Policy)
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.BoardSize < 2 || c.BoardSize > game.MaxSize:
		return fmt.Errorf("%w: board_size %d not in 2..%d", ErrInvalidConfig, c.BoardSize, game.MaxSize)
	case c.Playouts <= 0:
		return fmt.Errorf("%w: playouts must be positive", ErrInvalidConfig)
	case c.Goroutines <= 0:
		return fmt.Errorf("%w: goroutines must be positive", ErrInvalidConfig)
	case c.Prior < 0:
		return fmt.Errorf("%w: prior must not be negative", ErrInvalidConfig)
	case c.AafFraction <= 0 || c.AafFraction > 1:
		return fmt.Errorf("%w: aaf_fraction %v not in (0, 1]", ErrInvalidConfig, c.AafFraction)
	case c.InfluenceScale == 0:
		return fmt.Errorf("%w: influence_scale must not be zero", ErrInvalidConfig)
	case c.LocalProbability < 0 || c.LocalProbability > 1:
		return fmt.Errorf("%w: local_probability %v not in [0, 1]", ErrInvalidConfig, c.LocalProbability)
	case c.Temperature < 0:
		return fmt.Errorf("%w: temperature must not be negative", ErrInvalidConfig)
	}
	for _, p := range policies {
		if c.Policy == p {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown policy %q", ErrInvalidConfig, c.Policy)
}
