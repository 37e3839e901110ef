package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/turing/internal/tm"
)

const (
	DefaultTapeSize = tm.DefaultTapeSize
	DefaultDataDir  = ".turing"
	DefaultTheme    = "classic"
	DefaultFPS      = 20
)

// Color modes for the trace.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Config struct {
	TapeSize int        `yaml:"tape_size"`
	MaxSteps int        `yaml:"max_steps"`
	Color    string     `yaml:"color"`
	Theme    string     `yaml:"theme"`
	DataDir  string     `yaml:"data_dir"`
	Save     bool       `yaml:"save"`
	Log      LogConfig  `yaml:"log"`
	Live     LiveConfig `yaml:"live"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type LiveConfig struct {
	FPS int `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		TapeSize: DefaultTapeSize,
		Color:    ColorAuto,
		Theme:    DefaultTheme,
		DataDir:  DefaultDataDir,
		Log:      LogConfig{Level: "warn"},
		Live:     LiveConfig{FPS: DefaultFPS},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.TapeSize < 2 {
		return fmt.Errorf("tape_size must be at least 2, got %d", c.TapeSize)
	}
	if c.MaxSteps < 0 {
		return fmt.Errorf("max_steps must not be negative, got %d", c.MaxSteps)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", c.Color)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	if c.Live.FPS <= 0 {
		return fmt.Errorf("live.fps must be positive, got %d", c.Live.FPS)
	}
	return nil
}

// Machine returns the run bounds for the engine.
func (c *Config) Machine() tm.Config {
	return tm.Config{TapeSize: c.TapeSize, MaxSteps: c.MaxSteps}
}
