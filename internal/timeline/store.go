package timeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/google/uuid"

	"timeline-editor/internal/logger"
	"timeline-editor/internal/text"
)

// Track is a read-only snapshot of one track.
type Track struct {
	ID     string
	Kind   Kind
	Locked bool
	// Items are sorted by start, ties in insertion order.
	Items []Interval
	// Lanes maps interval id to its lane placement.
	Lanes map[string]Placement
}

// Overflowed returns the ids of items flagged with lane overflow.
func (t Track) Overflowed() []string {
	var ids []string
	for _, iv := range t.Items {
		if t.Lanes[iv.ID].Overflow {
			ids = append(ids, iv.ID)
		}
	}
	return ids
}

type trackState struct {
	id         string
	kind       Kind
	locked     bool
	items      []*Interval
	placements map[string]Placement
	index      *ActiveIndex
}

func (ts *trackState) values() []Interval {
	out := make([]Interval, len(ts.items))
	for i, iv := range ts.items {
		out[i] = *iv
	}
	return out
}

func (ts *trackState) find(id string) int {
	for i, iv := range ts.items {
		if iv.ID == id {
			return i
		}
	}
	return -1
}

func (ts *trackState) insert(iv *Interval) {
	pos := sort.Search(len(ts.items), func(i int) bool {
		return before(iv, ts.items[i])
	})
	ts.items = append(ts.items, nil)
	copy(ts.items[pos+1:], ts.items[pos:])
	ts.items[pos] = iv
}

func (ts *trackState) removeAt(i int) *Interval {
	iv := ts.items[i]
	ts.items = append(ts.items[:i], ts.items[i+1:]...)
	return iv
}

func (ts *trackState) resort() {
	sort.Slice(ts.items, func(i, j int) bool { return before(ts.items[i], ts.items[j]) })
}

// adjacencyTolerance absorbs float noise when deciding whether two intervals touch.
const adjacencyTolerance = 1e-9

func before(a, b *Interval) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.seq < b.seq
}

// Store owns every track and its intervals. Each mutation validates first,
// applies, then recomputes lanes and the active index of the touched tracks
// before returning, so no query observes a half-updated track.
type Store struct {
	assigner *LaneAssigner
	tracks   map[string]*trackState
	order    []string
	owner    map[string]string
	seq      uint64
	events   *Events
	log      *logger.Logger
}

// NewStore creates an empty store whose tracks use at most maxLanes lanes.
func NewStore(maxLanes int, log *logger.Logger) (*Store, error) {
	assigner, err := NewLaneAssigner(maxLanes)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Store{
		assigner: assigner,
		tracks:   make(map[string]*trackState),
		owner:    make(map[string]string),
		log:      log.Named("store"),
	}, nil
}

// SetEvents registers the callbacks fired after mutations.
func (s *Store) SetEvents(e *Events) {
	s.events = e
}

// MaxLanes returns the per-track lane bound.
func (s *Store) MaxLanes() int {
	return s.assigner.MaxLanes()
}

// AddTrack creates an empty track.
func (s *Store) AddTrack(id string, kind Kind) error {
	if id == "" {
		return fmt.Errorf("%w: empty track id", ErrConfiguration)
	}
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown track kind %q", ErrConfiguration, kind)
	}
	if _, ok := s.tracks[id]; ok {
		return fmt.Errorf("%w: track %q", ErrDuplicateID, id)
	}
	s.tracks[id] = &trackState{
		id:         id,
		kind:       kind,
		placements: map[string]Placement{},
		index:      NewActiveIndex(nil),
	}
	s.order = append(s.order, id)
	return nil
}

// RemoveTrack deletes a track and all of its intervals.
func (s *Store) RemoveTrack(id string) {
	ts, ok := s.tracks[id]
	if !ok {
		return
	}
	for _, iv := range ts.items {
		delete(s.owner, iv.ID)
	}
	delete(s.tracks, id)
	for i, tid := range s.order {
		if tid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// TrackIDs returns track ids in creation order.
func (s *Store) TrackIDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Track returns a snapshot of the track.
func (s *Store) Track(id string) (Track, bool) {
	ts, ok := s.tracks[id]
	if !ok {
		return Track{}, false
	}
	lanes := make(map[string]Placement, len(ts.placements))
	for k, v := range ts.placements {
		lanes[k] = v
	}
	return Track{
		ID:     ts.id,
		Kind:   ts.kind,
		Locked: ts.locked,
		Items:  ts.values(),
		Lanes:  lanes,
	}, true
}

// TrackForKind returns the first track of the given kind.
func (s *Store) TrackForKind(kind Kind) (string, bool) {
	for _, id := range s.order {
		if s.tracks[id].kind == kind {
			return id, true
		}
	}
	return "", false
}

// Get returns a copy of the interval and the id of the track holding it.
func (s *Store) Get(id string) (Interval, string, bool) {
	ts, iv, ok := s.lookup(id)
	if !ok {
		return Interval{}, "", false
	}
	return *iv, ts.id, true
}

// Placement returns the lane placement of an interval.
func (s *Store) Placement(id string) (Placement, bool) {
	ts, _, ok := s.lookup(id)
	if !ok {
		return Placement{}, false
	}
	p, ok := ts.placements[id]
	return p, ok
}

// Len returns the number of intervals in a track.
func (s *Store) Len(trackID string) int {
	if ts, ok := s.tracks[trackID]; ok {
		return len(ts.items)
	}
	return 0
}

// Span returns the largest end time across all tracks.
func (s *Store) Span() float64 {
	span := 0.0
	for _, ts := range s.tracks {
		for _, iv := range ts.items {
			if iv.End > span {
				span = iv.End
			}
		}
	}
	return span
}

// SetLocked locks or unlocks a track. A locked track rejects timing and
// membership edits and cannot be dragged.
func (s *Store) SetLocked(trackID string, locked bool) error {
	ts, ok := s.tracks[trackID]
	if !ok {
		return fmt.Errorf("%w: track %q", ErrNotFound, trackID)
	}
	ts.locked = locked
	s.events.trackChanged(trackID)
	return nil
}

// Locked reports whether the track is locked.
func (s *Store) Locked(trackID string) bool {
	ts, ok := s.tracks[trackID]
	return ok && ts.locked
}

// Add inserts an interval into a track. A negative start is clamped to zero;
// end <= start is rejected with ErrInvalidInterval. An empty ID is replaced
// by a generated one. The stored copy is returned.
func (s *Store) Add(trackID string, iv Interval) (Interval, error) {
	ts, ok := s.tracks[trackID]
	if !ok {
		return Interval{}, fmt.Errorf("%w: track %q", ErrNotFound, trackID)
	}
	if iv.Start < 0 {
		iv.Start = 0
	}
	if err := iv.Range().validate(); err != nil {
		s.log.Debug("rejected add to %s: %v", trackID, err)
		return Interval{}, err
	}
	if iv.ID == "" {
		iv.ID = uuid.New().String()
	}
	if _, taken := s.owner[iv.ID]; taken {
		return Interval{}, fmt.Errorf("%w: interval %q", ErrDuplicateID, iv.ID)
	}
	if iv.AssignedKind != "" && !iv.AssignedKind.Valid() {
		return Interval{}, fmt.Errorf("%w: unknown kind %q", ErrConfiguration, iv.AssignedKind)
	}

	s.seq++
	iv.seq = s.seq
	stored := iv
	ts.insert(&stored)
	s.owner[stored.ID] = trackID
	s.relayout(ts)
	return stored, nil
}

// Remove deletes an interval from a track. Unknown ids are ignored.
func (s *Store) Remove(trackID, id string) bool {
	ts, ok := s.tracks[trackID]
	if !ok {
		return false
	}
	i := ts.find(id)
	if i < 0 {
		return false
	}
	ts.removeAt(i)
	delete(s.owner, id)
	s.relayout(ts)
	return true
}

// Move transfers an interval between tracks, keeping its time range.
func (s *Store) Move(id, fromTrack, toTrack string) error {
	src, ok := s.tracks[fromTrack]
	if !ok {
		return fmt.Errorf("%w: track %q", ErrNotFound, fromTrack)
	}
	dst, ok := s.tracks[toTrack]
	if !ok {
		return fmt.Errorf("%w: track %q", ErrNotFound, toTrack)
	}
	i := src.find(id)
	if i < 0 {
		return fmt.Errorf("%w: interval %q in track %q", ErrNotFound, id, fromTrack)
	}
	if src.locked || dst.locked {
		return fmt.Errorf("%w: move %q from %q to %q", ErrTrackLocked, id, fromTrack, toTrack)
	}
	if fromTrack == toTrack {
		return nil
	}

	iv := src.removeAt(i)
	iv.HasForcedLane = false
	dst.insert(iv)
	s.owner[id] = toTrack
	s.relayout(src, dst)
	return nil
}

// Split cuts an interval at atTime, which must lie strictly inside it. The
// original keeps [start, atTime) and a new continuation interval covering
// [atTime, end) is inserted into the same track and returned. Text is divided
// at the word boundary nearest the cut.
func (s *Store) Split(id string, atTime float64) (Interval, error) {
	ts, iv, ok := s.lookup(id)
	if !ok {
		return Interval{}, fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}
	if ts.locked {
		return Interval{}, fmt.Errorf("%w: split %q", ErrTrackLocked, id)
	}
	if !(atTime > iv.Start && atTime < iv.End) {
		return Interval{}, fmt.Errorf("%w: split point %.3f outside (%.3f, %.3f)",
			ErrInvalidInterval, atTime, iv.Start, iv.End)
	}

	head, tail := text.SplitAtRatio(iv.Payload.Text, (atTime-iv.Start)/iv.Duration())

	s.seq++
	rest := &Interval{
		ID:    uuid.New().String(),
		Start: atTime,
		End:   iv.End,
		Payload: Payload{
			Text:         tail,
			Source:       iv.Payload.Source,
			Continuation: true,
		},
		AssignedKind: iv.AssignedKind,
		seq:          s.seq,
	}
	iv.End = atTime
	iv.Payload.Text = head

	ts.insert(rest)
	s.owner[rest.ID] = ts.id
	s.relayout(ts)
	return *rest, nil
}

// Merge joins two adjacent intervals of the same track into the first one,
// covering both ranges, and removes the second. The intervals must touch or
// overlap; a gap between them is rejected with ErrInvalidInterval. Texts are
// joined in time order.
func (s *Store) Merge(firstID, secondID string) (Interval, error) {
	ts, first, ok := s.lookup(firstID)
	if !ok {
		return Interval{}, fmt.Errorf("%w: interval %q", ErrNotFound, firstID)
	}
	ts2, second, ok := s.lookup(secondID)
	if !ok {
		return Interval{}, fmt.Errorf("%w: interval %q", ErrNotFound, secondID)
	}
	if ts != ts2 || firstID == secondID {
		return Interval{}, fmt.Errorf("%w: cannot merge %q with %q", ErrInvalidInterval, firstID, secondID)
	}
	if ts.locked {
		return Interval{}, fmt.Errorf("%w: merge %q", ErrTrackLocked, firstID)
	}
	if gap := math.Max(first.Start, second.Start) - math.Min(first.End, second.End); gap > adjacencyTolerance {
		return Interval{}, fmt.Errorf("%w: %q and %q are %.3fs apart", ErrInvalidInterval, firstID, secondID, gap)
	}

	if before(second, first) {
		first.Payload.Text = text.Join(second.Payload.Text, first.Payload.Text)
		first.Start = second.Start
	} else {
		first.Payload.Text = text.Join(first.Payload.Text, second.Payload.Text)
	}
	if second.End > first.End {
		first.End = second.End
	}

	ts.removeAt(ts.find(secondID))
	delete(s.owner, secondID)
	ts.resort()
	s.relayout(ts)
	return *first, nil
}

// UpdateRange changes an interval's time range in place. A negative start is
// clamped to zero; end <= start is rejected.
func (s *Store) UpdateRange(id string, newStart, newEnd float64) error {
	return s.reposition(id, Range{Start: newStart, End: newEnd}, -1)
}

// reposition stores a new range and, when lane >= 0, pins the interval to that
// lane, recomputing lanes once.
func (s *Store) reposition(id string, r Range, lane int) error {
	ts, iv, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}
	if ts.locked {
		return fmt.Errorf("%w: update %q", ErrTrackLocked, id)
	}
	if r.Start < 0 {
		r.Start = 0
	}
	if err := r.validate(); err != nil {
		s.log.Debug("rejected range update of %s: %v", id, err)
		return err
	}
	if lane >= s.assigner.MaxLanes() {
		return fmt.Errorf("%w: lane %d outside [0, %d]", ErrConfiguration, lane, s.assigner.MaxLanes()-1)
	}

	iv.Start, iv.End = r.Start, r.End
	if lane >= 0 {
		iv.ForcedLane = lane
		iv.HasForcedLane = true
	}
	ts.resort()
	s.relayout(ts)
	return nil
}

// SetText replaces an interval's text.
func (s *Store) SetText(id, value string) error {
	ts, iv, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}
	iv.Payload.Text = value
	s.events.trackChanged(ts.id)
	return nil
}

// SetForcedLane pins an interval to a lane.
func (s *Store) SetForcedLane(id string, lane int) error {
	if lane < 0 || lane >= s.assigner.MaxLanes() {
		return fmt.Errorf("%w: lane %d outside [0, %d]", ErrConfiguration, lane, s.assigner.MaxLanes()-1)
	}
	ts, iv, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}
	if ts.locked {
		return fmt.Errorf("%w: pin %q", ErrTrackLocked, id)
	}
	iv.ForcedLane = lane
	iv.HasForcedLane = true
	s.relayout(ts)
	return nil
}

// ClearForcedLane returns an interval to automatic lane assignment.
func (s *Store) ClearForcedLane(id string) error {
	ts, iv, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}
	if ts.locked {
		return fmt.Errorf("%w: unpin %q", ErrTrackLocked, id)
	}
	iv.HasForcedLane = false
	iv.ForcedLane = 0
	s.relayout(ts)
	return nil
}

// AssignKind records an explicit kind for an interval and moves it to the
// first track of that kind, creating the track (id = kind) if none exists.
// The assignment is kept on the item and wins over classification.
func (s *Store) AssignKind(id string, kind Kind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", ErrConfiguration, kind)
	}
	ts, iv, ok := s.lookup(id)
	if !ok {
		return fmt.Errorf("%w: interval %q", ErrNotFound, id)
	}

	dest, ok := s.TrackForKind(kind)
	if dest != ts.id && (ts.locked || (ok && s.tracks[dest].locked)) {
		return fmt.Errorf("%w: move %q to %s track", ErrTrackLocked, id, kind)
	}
	if !ok {
		dest = string(kind)
		if err := s.AddTrack(dest, kind); err != nil {
			return err
		}
	}
	if dest != ts.id {
		if err := s.Move(id, ts.id, dest); err != nil {
			return err
		}
	}
	iv.AssignedKind = kind
	return nil
}

// ShiftTrack moves every interval of a track by delta seconds. The shift is
// rejected if any interval would start before zero.
func (s *Store) ShiftTrack(trackID string, delta float64) error {
	ts, ok := s.tracks[trackID]
	if !ok {
		return fmt.Errorf("%w: track %q", ErrNotFound, trackID)
	}
	if ts.locked {
		return fmt.Errorf("%w: shift %q", ErrTrackLocked, trackID)
	}
	if len(ts.items) == 0 || delta == 0 {
		return nil
	}
	if ts.items[0].Start+delta < 0 {
		return fmt.Errorf("%w: shift by %.3f moves %q before zero", ErrInvalidInterval, delta, ts.items[0].ID)
	}
	for _, iv := range ts.items {
		iv.Start += delta
		iv.End += delta
	}
	s.relayout(ts)
	return nil
}

// ActiveAt returns every interval of the track covering t.
func (s *Store) ActiveAt(trackID string, t float64) []Interval {
	ts, ok := s.tracks[trackID]
	if !ok {
		return nil
	}
	return ts.index.At(t)
}

func (s *Store) lookup(id string) (*trackState, *Interval, bool) {
	trackID, ok := s.owner[id]
	if !ok {
		return nil, nil, false
	}
	ts := s.tracks[trackID]
	i := ts.find(id)
	if i < 0 {
		return nil, nil, false
	}
	return ts, ts.items[i], true
}

// relayout recomputes derived state for each track, then fires events once
// every track is consistent.
func (s *Store) relayout(tracks ...*trackState) {
	overflowed := make([][]string, len(tracks))
	for n, ts := range tracks {
		values := ts.values()
		ts.placements = s.assigner.Assign(values)
		ts.index = NewActiveIndex(values)
		for _, iv := range values {
			if ts.placements[iv.ID].Overflow {
				overflowed[n] = append(overflowed[n], iv.ID)
			}
		}
	}

	for n, ts := range tracks {
		if len(overflowed[n]) > 0 {
			s.log.Warn("track %s: %d item(s) exceed %d lanes", ts.id, len(overflowed[n]), s.assigner.MaxLanes())
			s.events.overflow(ts.id, overflowed[n])
		}
		s.events.trackChanged(ts.id)
	}
}
