// Package config loads tendril settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid config")

// SamplingConfig sets the window used for nodes without an enclosing scope.
type SamplingConfig struct {
	FPS    float64 `yaml:"fps" mapstructure:"fps"`
	Window float64 `yaml:"window" mapstructure:"window"`
}

// LogConfig selects the logger.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Config is the root of a tendril config file.
type Config struct {
	Sampling SamplingConfig `yaml:"sampling" mapstructure:"sampling"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// Default returns the built-in settings: ten minutes at 24 fps, info logs as text.
func Default() Config {
	return Config{
		Sampling: SamplingConfig{FPS: 24, Window: 600},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
// Values are decoded weakly, so "30" is accepted for a number.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	raw := map[string]any{}
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	if c.Sampling.FPS <= 0 {
		return fmt.Errorf("sampling.fps must be positive, got %g: %w", c.Sampling.FPS, ErrInvalid)
	}
	if c.Sampling.Window <= 0 {
		return fmt.Errorf("sampling.window must be positive, got %g: %w", c.Sampling.Window, ErrInvalid)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q: %w", c.Log.Format, ErrInvalid)
	}
	return nil
}

// LogLevel returns the configured level, info when unparsable.
func (c Config) LogLevel() slog.Level {
	l, err := ParseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// ParseLevel parses debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level %q: %w", s, ErrInvalid)
	}
	return l, nil
}
