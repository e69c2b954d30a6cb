package timeline

import (
	"math"

	"timeline-editor/internal/config"
	"timeline-editor/internal/logger"
)

// DragState is the drag controller's state.
type DragState int

const (
	DragIdle DragState = iota
	DragActive
)

func (s DragState) String() string {
	if s == DragActive {
		return "dragging"
	}
	return "idle"
}

// DragSession captures where a drag started. It lives from pointer-down to
// release or cancel.
type DragSession struct {
	TargetID       string
	SourceTrackID  string
	OriginStart    float64
	OriginEnd      float64
	OriginLane     int
	PointerOriginX float64
	PointerOriginY float64
}

// Duration is the dragged interval's length, preserved by every move.
func (s DragSession) Duration() float64 {
	return s.OriginEnd - s.OriginStart
}

// DragPreview is the live candidate position shown while dragging.
type DragPreview struct {
	ID         string
	TrackID    string
	Start      float64
	End        float64
	Lane       int
	Collision  bool
	Snapped    bool
	SnapTarget float64
}

// DragOptions tunes snapping and lane preview. Zero values use the defaults
// from internal/config. BoundsWidth/BoundsHeight, when positive, cancel the
// drag once the pointer leaves [0, w] x [0, h].
type DragOptions struct {
	SnapThreshold     float64
	IntegerSnapWindow float64
	LaneHeight        float64
	BoundsWidth       float64
	BoundsHeight      float64
}

func (o DragOptions) withDefaults() DragOptions {
	if o.SnapThreshold == 0 {
		o.SnapThreshold = config.SnapThreshold
	}
	if o.IntegerSnapWindow == 0 {
		o.IntegerSnapWindow = config.IntegerSnapWindow
	}
	if o.LaneHeight <= 0 {
		o.LaneHeight = config.LaneHeight
	}
	return o
}

// DragController turns pointer movement into candidate interval positions
// and commits the final one into the store on release. Only one drag can be
// active; pointer-down during a drag is ignored.
type DragController struct {
	store   *Store
	view    *Viewport
	opts    DragOptions
	events  *Events
	log     *logger.Logger
	session *DragSession
	preview DragPreview
}

// NewDragController wires a controller to a store and viewport.
func NewDragController(store *Store, view *Viewport, opts DragOptions, events *Events, log *logger.Logger) *DragController {
	if log == nil {
		log = logger.Discard()
	}
	return &DragController{
		store:  store,
		view:   view,
		opts:   opts.withDefaults(),
		events: events,
		log:    log.Named("drag"),
	}
}

// SetBounds updates the area outside of which a drag is cancelled.
func (d *DragController) SetBounds(width, height float64) {
	d.opts.BoundsWidth = width
	d.opts.BoundsHeight = height
}

// State returns whether a drag is in progress.
func (d *DragController) State() DragState {
	if d.session != nil {
		return DragActive
	}
	return DragIdle
}

// Session returns the active session.
func (d *DragController) Session() (DragSession, bool) {
	if d.session == nil {
		return DragSession{}, false
	}
	return *d.session, true
}

// Preview returns the current candidate position.
func (d *DragController) Preview() (DragPreview, bool) {
	if d.session == nil {
		return DragPreview{}, false
	}
	return d.preview, true
}

// Begin starts dragging interval id from pointer position (x, y). It returns
// false without side effects if a drag is already active, the interval is
// unknown, or its track is locked.
func (d *DragController) Begin(id string, x, y float64) bool {
	if d.session != nil {
		return false
	}
	iv, trackID, ok := d.store.Get(id)
	if !ok {
		return false
	}
	if d.store.Locked(trackID) {
		d.log.Debug("ignored drag of %s on locked track %s", id, trackID)
		return false
	}
	placement, _ := d.store.Placement(id)

	d.session = &DragSession{
		TargetID:       id,
		SourceTrackID:  trackID,
		OriginStart:    iv.Start,
		OriginEnd:      iv.End,
		OriginLane:     placement.Lane,
		PointerOriginX: x,
		PointerOriginY: y,
	}
	d.preview = DragPreview{
		ID:      id,
		TrackID: trackID,
		Start:   iv.Start,
		End:     iv.End,
		Lane:    placement.Lane,
	}
	return true
}

// Move updates the candidate position for pointer position (x, y). Leaving
// the configured bounds cancels the drag and returns false.
func (d *DragController) Move(x, y float64) (DragPreview, bool) {
	if d.session == nil {
		return DragPreview{}, false
	}
	if d.outOfBounds(x, y) {
		d.Cancel()
		return DragPreview{}, false
	}

	s := d.session
	duration := s.Duration()
	candidate := math.Max(0, s.OriginStart+d.view.PixelsToDuration(x-s.PointerOriginX))

	track, _ := d.store.Track(s.SourceTrackID)
	boundaries := make([]float64, 0, 2*len(track.Items))
	for _, iv := range track.Items {
		if iv.ID == s.TargetID {
			continue
		}
		boundaries = append(boundaries, iv.Start, iv.End)
	}
	start, target, snapped := SnapStart(candidate, duration, boundaries, d.opts.SnapThreshold, d.opts.IntegerSnapWindow)

	deltaLane := int(math.Round((y - s.PointerOriginY) / d.opts.LaneHeight))
	lane := s.OriginLane + deltaLane
	if lane < 0 {
		lane = 0
	}
	if top := d.store.MaxLanes() - 1; lane > top {
		lane = top
	}

	candidateRange := Range{Start: start, End: start + duration}
	collision := false
	for _, iv := range track.Items {
		if iv.ID == s.TargetID || track.Lanes[iv.ID].Lane != lane {
			continue
		}
		if candidateRange.Overlaps(iv.Range()) {
			collision = true
			break
		}
	}

	prev := d.preview
	d.preview = DragPreview{
		ID:         s.TargetID,
		TrackID:    s.SourceTrackID,
		Start:      candidateRange.Start,
		End:        candidateRange.End,
		Lane:       lane,
		Collision:  collision,
		Snapped:    snapped,
		SnapTarget: target,
	}

	if collision != prev.Collision {
		d.events.collision(s.TargetID, collision)
	}
	if snapped && (!prev.Snapped || prev.SnapTarget != target) {
		d.events.snapped(s.TargetID, target)
	}
	return d.preview, true
}

// Release commits the candidate range, pinning the interval to the previewed
// lane if it changed, and ends the drag.
func (d *DragController) Release() (Interval, error) {
	if d.session == nil {
		return Interval{}, nil
	}
	s := d.session
	p := d.preview
	d.session = nil
	d.preview = DragPreview{}

	lane := -1
	if p.Lane != s.OriginLane {
		lane = p.Lane
	}
	if p.Collision {
		d.events.collision(s.TargetID, false)
	}
	if err := d.store.reposition(s.TargetID, Range{Start: p.Start, End: p.End}, lane); err != nil {
		d.log.Warn("drag of %s not committed: %v", s.TargetID, err)
		return Interval{}, err
	}

	iv, _, _ := d.store.Get(s.TargetID)
	d.events.committed(s.TargetID, iv.Range())
	return iv, nil
}

// Cancel discards the drag without touching the store.
func (d *DragController) Cancel() bool {
	if d.session == nil {
		return false
	}
	id := d.session.TargetID
	colliding := d.preview.Collision
	d.session = nil
	d.preview = DragPreview{}
	if colliding {
		d.events.collision(id, false)
	}
	return true
}

func (d *DragController) outOfBounds(x, y float64) bool {
	if d.opts.BoundsWidth > 0 && (x < 0 || x > d.opts.BoundsWidth) {
		return true
	}
	if d.opts.BoundsHeight > 0 && (y < 0 || y > d.opts.BoundsHeight) {
		return true
	}
	return false
}

// SnapStart aligns a candidate start. The start or end (start+duration) is
// pulled to the nearest boundary within threshold; failing that, a start within
// window of a whole second is rounded to it. Duration never changes, and a
// snap that would move the start below zero is skipped. It returns the start,
// the boundary or second snapped to, and whether a snap happened.
func SnapStart(candidate, duration float64, boundaries []float64, threshold, window float64) (float64, float64, bool) {
	bestDist := math.Inf(1)
	bestStart, bestTarget := candidate, 0.0

	for _, b := range boundaries {
		if dist := math.Abs(candidate - b); dist < bestDist {
			bestDist, bestStart, bestTarget = dist, b, b
		}
		if dist := math.Abs(candidate + duration - b); dist < bestDist && b-duration >= 0 {
			bestDist, bestStart, bestTarget = dist, b-duration, b
		}
	}
	if bestDist <= threshold {
		return bestStart, bestTarget, true
	}

	rounded := math.Round(candidate)
	if math.Abs(candidate-rounded) <= window {
		return rounded, rounded, true
	}
	return candidate, 0, false
}
