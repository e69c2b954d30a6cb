package subtitle

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp converts an SRT timestamp to a duration. Both comma and dot
// are accepted as the millisecond separator, and the hour field may be omitted
// (MM:SS.mmm) as some WebVTT-derived files do.
func ParseTimestamp(ts string) (time.Duration, error) {
	ts = strings.Replace(strings.TrimSpace(ts), ",", ".", 1)

	parts := strings.Split(ts, ":")
	if len(parts) == 2 {
		parts = append([]string{"0"}, parts...)
	}
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", ts, err)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in %q: %w", ts, err)
	}

	secParts := strings.SplitN(parts[2], ".", 2)
	seconds, err := strconv.Atoi(secParts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in %q: %w", ts, err)
	}
	millis := 0
	if len(secParts) > 1 {
		frac := (secParts[1] + "000")[:3]
		if millis, err = strconv.Atoi(frac); err != nil {
			return 0, fmt.Errorf("invalid milliseconds in %q: %w", ts, err)
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// FormatTimestamp converts a time.Duration to SRT timestamp format.
// Output format: 00:00:00,000
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Millisecond)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

// DurationToSeconds converts a time.Duration to seconds as float64.
func DurationToSeconds(d time.Duration) float64 {
	return d.Seconds()
}

// SecondsToDuration converts seconds to a duration rounded to the millisecond,
// the resolution of SRT timestamps.
func SecondsToDuration(seconds float64) time.Duration {
	return time.Duration(math.Round(seconds*1000)) * time.Millisecond
}
