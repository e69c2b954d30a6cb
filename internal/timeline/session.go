package timeline

import (
	"fmt"
	"math"

	"timeline-editor/internal/config"
	"timeline-editor/internal/logger"
	"timeline-editor/internal/text"
)

// Cue is an inbound item from a parser or clip ingestion, times in seconds.
type Cue struct {
	Start  float64
	End    float64
	Text   string
	Source string
	// Kind, when set, bypasses classification.
	Kind Kind
}

// RenderHint is everything a painting layer needs to draw one item.
type RenderHint struct {
	ID         string
	TrackID    string
	Kind       Kind
	Text       string
	PixelLeft  float64
	PixelWidth float64
	PixelTop   float64
	Height     float64
	LaneIndex  int
	Overflow   bool
	Dragging   bool
	Collision  bool
}

// SessionOptions configures a Session. Zero values use internal/config defaults.
type SessionOptions struct {
	MaxLanes int
	Viewport ViewportOptions
	Drag     DragOptions
	TrackGap float64
	Logger   *logger.Logger
}

// Session is one editor: a viewport, the tracks it shows and the drag
// controller acting on them. Sessions share nothing, so several can coexist.
// All methods must be called from a single goroutine.
type Session struct {
	view   *Viewport
	store  *Store
	drag   *DragController
	events *Events
	user   Events
	log    *logger.Logger

	laneHeight    float64
	trackGap      float64
	mediaDuration float64
	playhead      float64
}

// NewSession builds a session with no tracks.
func NewSession(opts SessionOptions) (*Session, error) {
	if opts.MaxLanes == 0 {
		opts.MaxLanes = config.DefaultMaxLanes
	}
	if opts.TrackGap == 0 {
		opts.TrackGap = config.TrackGap
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	log := opts.Logger.Named("session")

	view, err := NewViewport(opts.Viewport)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(opts.MaxLanes, opts.Logger)
	if err != nil {
		return nil, err
	}

	s := &Session{
		view:     view,
		store:    store,
		events:   &Events{},
		log:      log,
		trackGap: opts.TrackGap,
	}
	s.drag = NewDragController(store, view, opts.Drag, s.events, opts.Logger)
	s.laneHeight = s.drag.opts.LaneHeight
	store.SetEvents(s.events)
	s.SetEvents(Events{})
	return s, nil
}

// Store returns the session's track store.
func (s *Session) Store() *Store { return s.store }

// Viewport returns the session's viewport.
func (s *Session) Viewport() *Viewport { return s.view }

// Drag returns the session's drag controller.
func (s *Session) Drag() *DragController { return s.drag }

// LaneHeight returns the height of one lane row in pixels.
func (s *Session) LaneHeight() float64 { return s.laneHeight }

// SetEvents replaces the registered callbacks.
func (s *Session) SetEvents(e Events) {
	s.user = e
	*s.events = e
	s.events.OnTrackChanged = func(trackID string) {
		s.refreshDuration()
		if s.user.OnTrackChanged != nil {
			s.user.OnTrackChanged(trackID)
		}
	}
}

// EnsureKindTracks creates one track per kind, named after the kind, for
// any kind that has no track yet.
func (s *Session) EnsureKindTracks() {
	for _, kind := range Kinds {
		if _, ok := s.store.TrackForKind(kind); ok {
			continue
		}
		if err := s.store.AddTrack(string(kind), kind); err != nil {
			s.log.Error("creating %s track: %v", kind, err)
		}
	}
}

// Ingest adds cues to the track matching their kind, classifying cues that
// carry none. Rejected cues are reported individually and do not stop the
// rest. It returns the number of cues stored.
func (s *Session) Ingest(cues []Cue) (int, []error) {
	s.EnsureKindTracks()

	var errs []error
	added := 0
	for i, c := range cues {
		iv := Interval{
			Start:        c.Start,
			End:          c.End,
			Payload:      Payload{Text: text.Normalize(c.Text), Source: c.Source},
			AssignedKind: c.Kind,
		}
		trackID, ok := s.store.TrackForKind(KindFor(iv))
		if !ok {
			errs = append(errs, fmt.Errorf("cue %d: %w: kind %q", i, ErrConfiguration, KindFor(iv)))
			continue
		}
		if _, err := s.store.Add(trackID, iv); err != nil {
			errs = append(errs, fmt.Errorf("cue %d: %w", i, err))
			continue
		}
		added++
	}
	s.log.Info("ingested %d of %d cues", added, len(cues))
	return added, errs
}

// SetMediaDuration records the media length; the timeline spans the larger
// of it and the last item's end.
func (s *Session) SetMediaDuration(seconds float64) {
	s.mediaDuration = math.Max(0, seconds)
	s.refreshDuration()
}

// MediaDuration returns the media length set by SetMediaDuration.
func (s *Session) MediaDuration() float64 {
	return s.mediaDuration
}

func (s *Session) refreshDuration() {
	s.view.SetTotalDuration(math.Max(s.mediaDuration, s.store.Span()))
}

// TrackGap returns the vertical space between track bands.
func (s *Session) TrackGap() float64 { return s.trackGap }

// TrackTop returns the y offset of a track's first lane.
func (s *Session) TrackTop(trackID string) (float64, bool) {
	y := 0.0
	for _, id := range s.store.TrackIDs() {
		if id == trackID {
			return y, true
		}
		y += s.trackHeight()
	}
	return 0, false
}

// ContentHeight is the total height of all track bands.
func (s *Session) ContentHeight() float64 {
	n := len(s.store.TrackIDs())
	if n == 0 {
		return 0
	}
	return float64(n)*s.trackHeight() - s.trackGap
}

func (s *Session) trackHeight() float64 {
	return float64(s.store.MaxLanes())*s.laneHeight + s.trackGap
}

// RenderHints lays out the items on screen in viewport coordinates. Items
// outside the visible range are skipped once the viewport has a width. The
// dragged item is always included, drawn at its preview position.
func (s *Session) RenderHints() []RenderHint {
	preview, dragging := s.drag.Preview()
	visible := s.view.VisibleRange()
	cull := s.view.Width() > 0

	var hints []RenderHint
	top := 0.0
	for _, trackID := range s.store.TrackIDs() {
		track, _ := s.store.Track(trackID)
		for _, iv := range track.Items {
			isDragged := dragging && preview.ID == iv.ID
			if cull && !isDragged && !visible.Overlaps(iv.Range()) {
				continue
			}
			p := track.Lanes[iv.ID]
			h := RenderHint{
				ID:         iv.ID,
				TrackID:    trackID,
				Kind:       track.Kind,
				Text:       iv.Payload.Text,
				PixelLeft:  s.view.TimeToPixel(iv.Start),
				PixelWidth: s.view.DurationToPixels(iv.Duration()),
				LaneIndex:  p.Lane,
				Overflow:   p.Overflow,
			}
			if isDragged {
				h.PixelLeft = s.view.TimeToPixel(preview.Start)
				h.PixelWidth = s.view.DurationToPixels(preview.End - preview.Start)
				h.LaneIndex = preview.Lane
				h.Dragging = true
				h.Collision = preview.Collision
			}
			h.PixelTop = top + float64(h.LaneIndex)*s.laneHeight
			h.Height = s.laneHeight
			hints = append(hints, h)
		}
		top += s.trackHeight()
	}
	return hints
}

// HitTest returns the id of the topmost item under (x, y).
func (s *Session) HitTest(x, y float64) (string, bool) {
	hints := s.RenderHints()
	for i := len(hints) - 1; i >= 0; i-- {
		h := hints[i]
		if x >= h.PixelLeft && x <= h.PixelLeft+h.PixelWidth &&
			y >= h.PixelTop && y < h.PixelTop+h.Height {
			return h.ID, true
		}
	}
	return "", false
}

// PointerDown starts a drag on the item under (x, y). Pointer-down on empty
// space, on a locked track or during another drag does nothing.
func (s *Session) PointerDown(x, y float64) bool {
	id, ok := s.HitTest(x, y)
	if !ok {
		return false
	}
	return s.drag.Begin(id, x, y)
}

// PointerMove feeds pointer motion to an active drag.
func (s *Session) PointerMove(x, y float64) (DragPreview, bool) {
	return s.drag.Move(x, y)
}

// PointerUp commits an active drag.
func (s *Session) PointerUp() (Interval, error) {
	return s.drag.Release()
}

// PointerCancel abandons an active drag.
func (s *Session) PointerCancel() bool {
	return s.drag.Cancel()
}

// ActiveAt returns the items of a track covering t. Times outside
// [0, total duration] are clamped.
func (s *Session) ActiveAt(trackID string, t float64) []Interval {
	return s.store.ActiveAt(trackID, s.view.ClampTime(t))
}

// TimeUpdate handles a playback clock notification and returns what each
// track shows at that time, keyed by track id. Tracks with nothing active are
// omitted.
func (s *Session) TimeUpdate(t float64) map[string][]Interval {
	s.playhead = s.view.ClampTime(t)
	showing := make(map[string][]Interval)
	for _, trackID := range s.store.TrackIDs() {
		if active := s.store.ActiveAt(trackID, s.playhead); len(active) > 0 {
			showing[trackID] = active
		}
	}
	return showing
}

// Playhead returns the time of the last clock notification, clamped.
func (s *Session) Playhead() float64 {
	return s.playhead
}
