package config

import (
	"errors"
	"fmt"
	"os"

	"acopf/internal/nlp"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML) for the API server.
// The CLI takes no configuration at all; zero values everywhere reproduce
// the CLI's fixed behavior, so a missing file is never a problem.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Solver SolverConfig `yaml:"solver"`
}

type ServerConfig struct {
	Port           string   `yaml:"port"`
	Mode           string   `yaml:"mode"` // "debug" (default) or "release"
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// SolverConfig overrides individual solver settings; fields left zero keep
// the solver defaults.
type SolverConfig struct {
	Accuracy           float64 `yaml:"accuracy"`
	MaxOuterIterations int     `yaml:"max_outer_iterations"`
	InnerIterations    int     `yaml:"inner_iterations"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080", Mode: "debug"},
	}
}

// Load reads and validates a YAML config. An empty path selects Default();
// a path that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if c.Server.Mode != "debug" && c.Server.Mode != "release" {
		return fmt.Errorf("server.mode must be debug or release, got %q", c.Server.Mode)
	}
	if c.Solver.Accuracy < 0 {
		return errors.New("solver.accuracy must be >= 0")
	}
	if c.Solver.MaxOuterIterations < 0 || c.Solver.InnerIterations < 0 {
		return errors.New("solver iteration budgets must be >= 0")
	}
	return nil
}

// ToSettings maps the overrides onto solver settings. Zero fields stay
// zero so the solver fills its own defaults.
func (s SolverConfig) ToSettings() nlp.Settings {
	return nlp.Settings{
		Accuracy:           s.Accuracy,
		MaxOuterIterations: s.MaxOuterIterations,
		InnerIterations:    s.InnerIterations,
	}
}
