// Package config loads resolver settings from a YAML file, a .env file and
// the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/AmrAfifiy/kotlin/internal/phase"
)

const (
	EnvDebug       = "FIRRES_DEBUG"
	EnvParallelism = "FIRRES_PARALLELISM"
	EnvDB          = "FIRRES_DB"
	EnvTarget      = "FIRRES_TARGET"
	EnvColor       = "FIRRES_COLOR"
)

type Config struct {
	Debug bool `yaml:"debug"`
	// Parallelism bounds ResolveAll. Zero or less means unbounded.
	Parallelism int    `yaml:"parallelism"`
	Target      string `yaml:"target"`
	Color       bool   `yaml:"color"`
	Storage     struct {
		Path string `yaml:"path"`
	} `yaml:"storage"`
}

// Default is used when no file is given.
func Default() *Config {
	cfg := &Config{Parallelism: 4, Target: phase.Last.String(), Color: true}
	cfg.Storage.Path = "firres.db"
	return cfg
}

// LoadConfig reads path on top of the defaults. An empty path skips the
// file. A missing .env file is not an error.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDebug); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = b
	}
	if v := os.Getenv(EnvParallelism); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvParallelism, err)
		}
		c.Parallelism = n
	}
	if v := os.Getenv(EnvColor); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvColor, err)
		}
		c.Color = b
	}
	if v := os.Getenv(EnvDB); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvTarget); v != "" {
		c.Target = v
	}
	return nil
}

// Validate checks the target phase name.
func (c *Config) Validate() error {
	if _, ok := phase.Parse(c.Target); !ok {
		return errors.New("unknown target phase " + strconv.Quote(c.Target))
	}
	return nil
}

// TargetPhase is the parsed target. Call Validate first.
func (c *Config) TargetPhase() phase.ResolvePhase {
	p, _ := phase.Parse(c.Target)
	return p
}
