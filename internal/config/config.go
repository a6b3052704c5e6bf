package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"elemental-ca/pkg/elemental"
)

// Config is the root of the YAML configuration file. Sections left out of
// the file keep their defaults.
type Config struct {
	World   WorldConfig      `yaml:"world"`
	Wind    WindConfig       `yaml:"wind"`
	Tuning  elemental.Tuning `yaml:"tuning"`
	Metrics MetricsConfig    `yaml:"metrics"`
	Log     LogConfig        `yaml:"log"`
}

type WorldConfig struct {
	Width   int   `yaml:"width"`
	Height  int   `yaml:"height"`
	Seed    int64 `yaml:"seed"`
	Workers int   `yaml:"workers"`
	Strict  bool  `yaml:"strict"`
	TPS     int   `yaml:"tps"`
}

type WindConfig struct {
	Strength uint8   `yaml:"strength"`
	Variance uint8   `yaml:"variance"`
	Scale    float64 `yaml:"noise_scale"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	wind := elemental.DefaultWindNoise(0)
	return Config{
		World: WorldConfig{
			Width:   160,
			Height:  96,
			Seed:    1337,
			Workers: 4,
			Strict:  true,
			TPS:     64,
		},
		Wind: WindConfig{
			Strength: wind.Strength,
			Variance: wind.Variance,
			Scale:    wind.Scale,
		},
		Tuning: elemental.DefaultTuning(),
		Log:    LogConfig{Level: "info"},
	}
}

// MetricsAddr returns the Prometheus listen address: the configured value,
// then $ELEMENTS_METRICS_ADDR, otherwise empty (metrics disabled).
func (c *Config) MetricsAddr() string {
	if c.Metrics.Addr != "" {
		return c.Metrics.Addr
	}
	return os.Getenv("ELEMENTS_METRICS_ADDR")
}

// LogLevel parses the configured level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Log.Level))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Validate checks the world section and the engine tuning.
func (c *Config) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("config: world size %dx%d must be positive", c.World.Width, c.World.Height)
	}
	if c.World.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative")
	}
	if err := c.Tuning.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Load reads a YAML configuration file on top of Default. An empty path falls
// back to $ELEMENTS_CONFIG; when that is unset too, Load returns nil, nil and
// callers keep their defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ELEMENTS_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML configuration bytes on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
