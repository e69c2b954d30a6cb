package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"timeline-editor/internal/config"
	"timeline-editor/internal/timeline"
)

// Settings holds user-editable editor preferences.
type Settings struct {
	// Viewport
	BasePixelsPerSecond float64 `yaml:"base_pixels_per_second"`
	MinZoom             float64 `yaml:"min_zoom"`
	MaxZoom             float64 `yaml:"max_zoom"`
	InitialZoom         float64 `yaml:"initial_zoom"`

	// Layout
	MaxLanes   int     `yaml:"max_lanes"`
	LaneHeight float64 `yaml:"lane_height"`
	TrackGap   float64 `yaml:"track_gap"`

	// Dragging
	SnapThreshold     float64 `yaml:"snap_threshold"`     // seconds
	IntegerSnapWindow float64 `yaml:"integer_snap_window"` // seconds

	// Playback clock fallback polling
	PlaybackPollInterval time.Duration `yaml:"playback_poll_interval"`

	LogLevel    string `yaml:"log_level"`
	ProjectPath string `yaml:"project_path"`

	path string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		BasePixelsPerSecond: config.BasePixelsPerSecond,
		MinZoom:             config.MinZoom,
		MaxZoom:             config.MaxZoom,
		InitialZoom:         config.DefaultZoom,

		MaxLanes:   config.DefaultMaxLanes,
		LaneHeight: config.LaneHeight,
		TrackGap:   config.TrackGap,

		SnapThreshold:     config.SnapThreshold,
		IntegerSnapWindow: config.IntegerSnapWindow,

		PlaybackPollInterval: config.PlaybackPollInterval,

		LogLevel:    "info",
		ProjectPath: filepath.Join(homeDir, ".config", config.AppDirName, config.ProjectFilename),
	}
}

// DefaultSettingsPath is ~/.config/timeline-editor/settings.yaml.
func DefaultSettingsPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", config.AppDirName, config.SettingsFilename)
}

// Path returns the file the settings were loaded from or will be saved to.
func (s *Settings) Path() string {
	if s.path == "" {
		return DefaultSettingsPath()
	}
	return s.path
}

// LoadSettings reads settings from path over the defaults. A missing file
// yields the defaults. An empty path means DefaultSettingsPath.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		path = DefaultSettingsPath()
	}
	settings := DefaultSettings()
	settings.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return settings, nil
}

// Save writes the settings as YAML, creating the directory if needed.
func (s *Settings) Save() error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Validate rejects values the engine cannot work with.
func (s *Settings) Validate() error {
	switch {
	case s.MaxLanes < 1:
		return fmt.Errorf("%w: max_lanes %d < 1", timeline.ErrConfiguration, s.MaxLanes)
	case s.BasePixelsPerSecond <= 0:
		return fmt.Errorf("%w: base_pixels_per_second must be positive", timeline.ErrConfiguration)
	case s.MinZoom <= 0 || s.MaxZoom < s.MinZoom:
		return fmt.Errorf("%w: zoom range [%v, %v]", timeline.ErrConfiguration, s.MinZoom, s.MaxZoom)
	case s.InitialZoom <= 0:
		return fmt.Errorf("%w: initial_zoom must be positive", timeline.ErrConfiguration)
	case s.LaneHeight <= 0:
		return fmt.Errorf("%w: lane_height must be positive", timeline.ErrConfiguration)
	case s.SnapThreshold < 0 || s.IntegerSnapWindow < 0:
		return fmt.Errorf("%w: snap windows must not be negative", timeline.ErrConfiguration)
	case s.PlaybackPollInterval <= 0:
		return fmt.Errorf("%w: playback_poll_interval must be positive", timeline.ErrConfiguration)
	}
	return nil
}

// SessionOptions converts the settings into engine options.
func (s *Settings) SessionOptions() timeline.SessionOptions {
	return timeline.SessionOptions{
		MaxLanes: s.MaxLanes,
		Viewport: timeline.ViewportOptions{
			BasePixelsPerSecond: s.BasePixelsPerSecond,
			MinZoom:             s.MinZoom,
			MaxZoom:             s.MaxZoom,
			Zoom:                s.InitialZoom,
		},
		Drag: timeline.DragOptions{
			SnapThreshold:     s.SnapThreshold,
			IntegerSnapWindow: s.IntegerSnapWindow,
			LaneHeight:        s.LaneHeight,
		},
		TrackGap: s.TrackGap,
	}
}
