package timeline

import "errors"

var (
	// ErrInvalidInterval is returned when a range has end <= start or a split
	// point falls outside the interval.
	ErrInvalidInterval = errors.New("invalid interval")

	// ErrConfiguration is returned for unusable engine settings such as
	// maxLanes < 1 or a non-positive zoom factor.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrNotFound is returned when an interval or track id is unknown.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when an interval or track id is already in use.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrTrackLocked is returned by edits addressed to a locked track.
	ErrTrackLocked = errors.New("track is locked")
)
