package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type Config struct {
	Window      Window      `yaml:"window"`
	TPS         int         `yaml:"tps"`
	Physics     Physics     `yaml:"physics"`
	World       World       `yaml:"world"`
	Spawner     Spawner     `yaml:"spawner"`
	Despawner   Despawner   `yaml:"despawner"`
	Player      Player      `yaml:"player"`
	Definitions Definitions `yaml:"definitions"`
}

type Window struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Scale  float64 `yaml:"scale"`
	Title  string  `yaml:"title"`
}

type Physics struct {
	// Gravity is in units/s², positive pulls toward the bottom of the screen.
	Gravity    float64 `yaml:"gravity"`
	Iterations int     `yaml:"iterations"`
}

type World struct {
	ScrollSpeed      float64 `yaml:"scroll_speed"`
	GroundY          float64 `yaml:"ground_y"`
	GroundHalfWidth  float64 `yaml:"ground_half_width"`
	GroundHalfHeight float64 `yaml:"ground_half_height"`
}

type Spawner struct {
	X             float64 `yaml:"x"`
	MinIntervalMS int     `yaml:"min_interval_ms"`
	MaxIntervalMS int     `yaml:"max_interval_ms"`
}

func (s Spawner) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalMS) * time.Millisecond
}

func (s Spawner) MaxInterval() time.Duration {
	return time.Duration(s.MaxIntervalMS) * time.Millisecond
}

type Despawner struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
}

type Player struct {
	X           float64 `yaml:"x"`
	JumpSpeed   float64 `yaml:"jump_speed"`
	ProbeLength float64 `yaml:"probe_length"`
}

type Definitions struct {
	Player  string `yaml:"player"`
	Enemies string `yaml:"enemies"`
}

// Default returns the embedded configuration.
func Default() *Config {
	cfg, err := Parse(defaultConfig)
	if err != nil {
		panic("config: embedded config.yaml: " + err.Error())
	}
	return cfg
}

// Load returns the embedded configuration overlaid with the file at path.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.TPS <= 0:
		return fmt.Errorf("tps %d must be positive", c.TPS)
	case c.Spawner.MinIntervalMS <= 0 || c.Spawner.MaxIntervalMS <= c.Spawner.MinIntervalMS:
		return fmt.Errorf("spawn interval [%d,%d) ms is empty", c.Spawner.MinIntervalMS, c.Spawner.MaxIntervalMS)
	case c.Despawner.HalfWidth <= 0 || c.Despawner.HalfHeight <= 0:
		return fmt.Errorf("despawner extents must be positive")
	case c.Definitions.Player == "":
		return fmt.Errorf("player definition file is required")
	}
	return nil
}
