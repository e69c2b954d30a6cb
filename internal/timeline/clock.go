package timeline

import (
	"context"
	"time"

	"timeline-editor/internal/config"
)

// MediaClock reports the host player's current position in seconds.
type MediaClock interface {
	CurrentTime() float64
}

// ClockFunc adapts a function to MediaClock.
type ClockFunc func() float64

// CurrentTime implements MediaClock.
func (f ClockFunc) CurrentTime() float64 { return f() }

// PollClock samples clock every interval and calls fn with each new time.
// It is the fallback for hosts that do not push time-update notifications.
// Repeated identical readings (paused playback) are not forwarded. fn runs on
// the polling goroutine; callers must hand it to the session's goroutine.
// PollClock blocks until ctx is done and returns ctx.Err().
func PollClock(ctx context.Context, clock MediaClock, interval time.Duration, fn func(t float64)) error {
	if interval <= 0 {
		interval = config.PlaybackPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last, delivered := 0.0, false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			t := clock.CurrentTime()
			if delivered && t == last {
				continue
			}
			last, delivered = t, true
			fn(t)
		}
	}
}
