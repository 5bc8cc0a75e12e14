package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/burgers1d/internal/field"
)

const (
	DefaultLength   = 1.0
	DefaultPoints   = 16
	DefaultNu       = 0.01
	DefaultDt       = 0.001
	DefaultDuration = 0.1
	DefaultLeft     = 1.0
	DefaultRight    = 0.0
	DefaultX0       = 0.5
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name        string  `yaml:"name"`
	Initial     string  `yaml:"initial"`
	Integrator  string  `yaml:"integrator"`
	Operator    string  `yaml:"operator"`
	Smoother    string  `yaml:"smoother"`
	Length      float64 `yaml:"length"`
	Points      int     `yaml:"points"`
	Nu          float64 `yaml:"nu"`
	Dt          float64 `yaml:"dt"`
	Duration    float64 `yaml:"duration"`
	Steps       int     `yaml:"steps,omitempty"`
	SaveEvery   int     `yaml:"save_every,omitempty"`
	SmoothEvery int     `yaml:"smooth_every,omitempty"`
	Workers     int     `yaml:"workers,omitempty"`
	// ValidateState stops a run at the first non-finite field.
	ValidateState bool           `yaml:"validate"`
	Riemann       RiemannConfig  `yaml:"riemann"`
	Gaussian      GaussianConfig `yaml:"gaussian"`
	Constant      float64        `yaml:"constant,omitempty"`
}

type RiemannConfig struct {
	Left  float64 `yaml:"left"`
	Right float64 `yaml:"right"`
	X0    float64 `yaml:"x0"`
	// Passes of the binomial pre-smoother; nil means the default of 2.
	Presmooth *int `yaml:"presmooth,omitempty"`
}

type GaussianConfig struct {
	Center    float64 `yaml:"center"`
	Width     float64 `yaml:"width"`
	Amplitude float64 `yaml:"amplitude"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:          "burgers",
		Initial:       "sine",
		Integrator:    "ssprk3",
		Operator:      "burgers",
		Smoother:      "binomial",
		Length:        DefaultLength,
		Points:        DefaultPoints,
		Nu:            DefaultNu,
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		ValidateState: true,
		Riemann: RiemannConfig{
			Left:  DefaultLeft,
			Right: DefaultRight,
			X0:    DefaultX0,
		},
		Gaussian: GaussianConfig{
			Center:    0.5,
			Width:     0.1,
			Amplitude: 1.0,
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base; keys absent from the file
// keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Riemann.Presmooth != nil {
		n := *c.Riemann.Presmooth
		cp.Riemann.Presmooth = &n
	}
	return &cp
}

// Dx is Length/Points on the endpoint-excluded periodic grid.
func (c *Config) Dx() float64 {
	if c.Points <= 0 {
		return 0
	}
	return c.Length / float64(c.Points)
}

func (c *Config) Params() field.Params {
	return field.Params{Dx: c.Dx(), Nu: c.Nu}
}

// PresmoothPasses resolves the Riemann pre-smoother pass count.
func (c *Config) PresmoothPasses() int {
	if c.Riemann.Presmooth == nil {
		return 2
	}
	return *c.Riemann.Presmooth
}

// Validate checks numeric ranges. Component names are resolved, and
// rejected, by the experiment registry.
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Points >= 3, "points must be at least 3, got %d", c.Points)
	check(c.Length > 0 && !math.IsInf(c.Length, 0), "length must be positive and finite, got %g", c.Length)
	check(c.Nu >= 0 && !math.IsInf(c.Nu, 0), "nu must be non-negative and finite, got %g", c.Nu)
	check(c.Dt > 0 && !math.IsInf(c.Dt, 0), "dt must be positive and finite, got %g", c.Dt)
	check(c.Steps >= 0, "steps must be non-negative, got %d", c.Steps)
	check(c.Steps > 0 || c.Duration > 0, "duration must be positive when steps is unset, got %g", c.Duration)
	check(c.SaveEvery >= 0, "save_every must be non-negative, got %d", c.SaveEvery)
	check(c.SmoothEvery >= 0, "smooth_every must be non-negative, got %d", c.SmoothEvery)
	check(c.Workers >= 0, "workers must be non-negative, got %d", c.Workers)
	check(c.PresmoothPasses() >= 0, "riemann.presmooth must be non-negative, got %d", c.PresmoothPasses())
	if c.Initial == "gaussian" {
		check(c.Gaussian.Width > 0, "gaussian.width must be positive, got %g", c.Gaussian.Width)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// SetParam assigns a numeric setting by its YAML key. Integer keys round
// the value to the nearest integer.
func (c *Config) SetParam(name string, value float64) error {
	switch name {
	case "nu":
		c.Nu = value
	case "dt":
		c.Dt = value
	case "duration":
		c.Duration = value
	case "length":
		c.Length = value
	case "points":
		c.Points = int(math.Round(value))
	case "steps":
		c.Steps = int(math.Round(value))
	case "smooth_every":
		c.SmoothEvery = int(math.Round(value))
	case "save_every":
		c.SaveEvery = int(math.Round(value))
	case "workers":
		c.Workers = int(math.Round(value))
	case "left":
		c.Riemann.Left = value
	case "right":
		c.Riemann.Right = value
	case "x0":
		c.Riemann.X0 = value
	case "amplitude":
		c.Gaussian.Amplitude = value
	case "width":
		c.Gaussian.Width = value
	case "center":
		c.Gaussian.Center = value
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, name)
	}
	return nil
}
