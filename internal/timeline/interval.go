// Package timeline implements the interval layout engine behind the editor:
// the seconds/pixels viewport transform, lane assignment, the active-interval
// index used during playback, the track store and interactive dragging.
package timeline

import "fmt"

// Kind is the semantic role of a track.
type Kind string

const (
	KindMain        Kind = "main"
	KindTranslation Kind = "translation"
	KindDescription Kind = "description"
	KindGeneric     Kind = "generic"
)

// Kinds lists every track kind in display order.
var Kinds = []Kind{KindMain, KindTranslation, KindDescription, KindGeneric}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMain, KindTranslation, KindDescription, KindGeneric:
		return true
	}
	return false
}

// Payload is the data carried by an interval. The engine only reads
// Continuation, which split sets on the second half.
type Payload struct {
	Text         string
	Source       string // Clip or media reference, empty for plain cues
	Continuation bool
}

// Range is a half-open time range in seconds.
type Range struct {
	Start float64
	End   float64
}

// Duration returns End - Start.
func (r Range) Duration() float64 {
	return r.End - r.Start
}

// Overlaps reports whether r and o share any time, treating both as [start, end).
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains reports whether t lies in the closed range [Start, End].
func (r Range) Contains(t float64) bool {
	return r.Start <= t && t <= r.End
}

func (r Range) validate() error {
	if !(r.End > r.Start) {
		return fmt.Errorf("%w: end %.3f <= start %.3f", ErrInvalidInterval, r.End, r.Start)
	}
	return nil
}

// Interval is a time range with a payload. Copies handed out by Store are
// snapshots; mutate through Store methods.
type Interval struct {
	ID      string
	Start   float64
	End     float64
	Payload Payload

	// ForcedLane pins the interval to a lane when HasForcedLane is set.
	ForcedLane    int
	HasForcedLane bool

	// AssignedKind records an explicit kind assignment that overrides
	// classification. Empty when the item was never assigned by hand.
	AssignedKind Kind

	seq uint64
}

// Range returns the interval's time range.
func (iv Interval) Range() Range {
	return Range{Start: iv.Start, End: iv.End}
}

// Duration returns End - Start.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}
