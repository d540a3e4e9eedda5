package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultWorkers        = 8
	defaultTimeoutSeconds = 8
)

// Settings holds all configuration options for an icon-fetching run.
type Settings struct {
	// OutputDir is the directory downloaded icons are written to.
	OutputDir string `yaml:"output_dir"`

	// Workers is the number of concurrent downloads.
	Workers int `yaml:"workers"`

	// TimeoutSeconds bounds each individual HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// Backup controls whether the bookmarks file is copied to
	// <input>.bak before being rewritten.
	Backup bool `yaml:"backup"`

	// RelativePaths stores icon paths relative to the bookmarks file's
	// directory instead of absolute paths.
	RelativePaths bool `yaml:"relative_paths"`
}

// DefaultSettings returns settings with default values: 8 workers,
// 8 second request timeout, backup enabled, absolute paths.
func DefaultSettings() *Settings {
	return &Settings{
		Workers:        defaultWorkers,
		TimeoutSeconds: defaultTimeoutSeconds,
		Backup:         true,
	}
}

// Load reads settings from a YAML file. A missing file is not an
// error: defaults are returned, and CLI flags override on top.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if settings.Workers < 1 {
		return nil, fmt.Errorf("invalid workers: %d (must be >= 1)", settings.Workers)
	}
	if settings.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("invalid timeout_seconds: %d (must be >= 1)", settings.TimeoutSeconds)
	}
	return settings, nil
}

// Timeout returns the per-request timeout as a duration.
func (s *Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}
