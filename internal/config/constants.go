// Package config provides centralized configuration and constants for the timeline editor.
package config

import "time"

// Viewport settings
const (
	BasePixelsPerSecond = 50.0 // Pixels per second at zoom 1.0
	MinZoom             = 0.1
	MaxZoom             = 20.0
	DefaultZoom         = 1.0
	ZoomStep            = 1.25 // Multiplier applied per scroll-wheel notch
)

// Lane layout
const (
	DefaultMaxLanes = 3
	LaneHeight      = 36.0 // Vertical pixels per lane row
	TrackGap        = 12.0 // Vertical gap between track bands
)

// Drag snapping
const (
	SnapThreshold     = 0.5 // Seconds, neighbour boundary snapping
	IntegerSnapWindow = 0.3 // Seconds, round-second snapping
)

// Playback clock
const (
	// PlaybackPollInterval is the fallback cadence when the media host does not
	// deliver time-update notifications on its own.
	PlaybackPollInterval = 100 * time.Millisecond
)

// Persistence
const (
	AppDirName       = "timeline-editor"
	SettingsFilename = "settings.yaml"
	ProjectFilename  = "project.db"
)
