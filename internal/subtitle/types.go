// Package subtitle reads and writes SRT files and converts between subtitle
// entries and timeline cues.
package subtitle

import (
	"strings"
	"time"

	"timeline-editor/internal/timeline"
)

// Subtitle represents a single subtitle entry with timing and text.
type Subtitle struct {
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
	Text      string
}

// Duration returns the duration of this subtitle.
func (s Subtitle) Duration() time.Duration {
	return s.EndTime - s.StartTime
}

// IsEmpty returns true if the subtitle has no text.
func (s Subtitle) IsEmpty() bool {
	return strings.TrimSpace(s.Text) == ""
}

// Cue converts the entry to a timeline cue tagged with source.
func (s Subtitle) Cue(source string) timeline.Cue {
	return timeline.Cue{
		Start:  DurationToSeconds(s.StartTime),
		End:    DurationToSeconds(s.EndTime),
		Text:   s.Text,
		Source: source,
	}
}

// List is a slice of subtitles with utility methods.
type List []Subtitle

// TotalDuration returns the largest end time in the list.
func (l List) TotalDuration() time.Duration {
	var end time.Duration
	for _, sub := range l {
		if sub.EndTime > end {
			end = sub.EndTime
		}
	}
	return end
}

// NonEmpty returns a new list containing only subtitles with non-empty text.
func (l List) NonEmpty() List {
	result := make(List, 0, len(l))
	for _, sub := range l {
		if !sub.IsEmpty() {
			result = append(result, sub)
		}
	}
	return result
}

// Cues converts the list to timeline cues, skipping empty entries.
func (l List) Cues(source string) []timeline.Cue {
	nonEmpty := l.NonEmpty()
	cues := make([]timeline.Cue, len(nonEmpty))
	for i, sub := range nonEmpty {
		cues[i] = sub.Cue(source)
	}
	return cues
}

// FromTrack builds a list from a track snapshot, numbered from 1 in start order.
func FromTrack(track timeline.Track) List {
	result := make(List, len(track.Items))
	for i, iv := range track.Items {
		result[i] = Subtitle{
			Index:     i + 1,
			StartTime: SecondsToDuration(iv.Start),
			EndTime:   SecondsToDuration(iv.End),
			Text:      iv.Payload.Text,
		}
	}
	return result
}
