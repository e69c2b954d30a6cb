package timeline

import (
	"errors"
	"math"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(3, nil)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if err := s.AddTrack("main", KindMain); err != nil {
		t.Fatalf("AddTrack() error = %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, trackID, id string, start, end float64, text string) Interval {
	t.Helper()
	stored, err := s.Add(trackID, Interval{ID: id, Start: start, End: end, Payload: Payload{Text: text}})
	if err != nil {
		t.Fatalf("Add(%s) error = %v", id, err)
	}
	return stored
}

func TestNewStore_RejectsZeroLanes(t *testing.T) {
	if _, err := NewStore(0, nil); !errors.Is(err, ErrConfiguration) {
		t.Errorf("NewStore(0) error = %v, want ErrConfiguration", err)
	}
}

func TestStore_AddKeepsOrderAndLanes(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "C", 5, 8, "c")
	mustAdd(t, s, "main", "A", 0, 3, "a")
	mustAdd(t, s, "main", "B", 2.5, 5.5, "b")

	track, _ := s.Track("main")
	order := []string{"A", "B", "C"}
	for i, it := range track.Items {
		if it.ID != order[i] {
			t.Errorf("Items[%d] = %s, want %s", i, it.ID, order[i])
		}
	}
	for id, lane := range map[string]int{"A": 0, "B": 1, "C": 0} {
		if track.Lanes[id].Lane != lane {
			t.Errorf("%s lane = %d, want %d", id, track.Lanes[id].Lane, lane)
		}
	}
}

func TestStore_AddRejectsInvertedRange(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 1, "a")

	_, err := s.Add("main", Interval{Start: 5, End: 3, Payload: Payload{Text: "x"}})
	if !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("Add() error = %v, want ErrInvalidInterval", err)
	}
	if got := s.Len("main"); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestStore_AddClampsNegativeStartAndGeneratesID(t *testing.T) {
	s := newTestStore(t)
	stored, err := s.Add("main", Interval{Start: -2, End: 4})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if stored.Start != 0 {
		t.Errorf("Start = %v, want 0", stored.Start)
	}
	if stored.ID == "" {
		t.Error("expected generated ID")
	}

	if _, err := s.Add("main", Interval{Start: -5, End: -1}); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("Add(-5,-1) error = %v, want ErrInvalidInterval", err)
	}
	if _, err := s.Add("main", Interval{ID: stored.ID, Start: 1, End: 2}); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate Add() error = %v, want ErrDuplicateID", err)
	}
	if _, err := s.Add("nope", Interval{Start: 1, End: 2}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Add to unknown track error = %v, want ErrNotFound", err)
	}
}

func TestStore_Remove(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 3, "a")
	mustAdd(t, s, "main", "B", 1, 4, "b")

	if s.Remove("main", "missing") {
		t.Error("Remove(missing) = true")
	}
	if !s.Remove("main", "A") {
		t.Fatal("Remove(A) = false")
	}
	if _, _, ok := s.Get("A"); ok {
		t.Error("A still present")
	}
	if p, _ := s.Placement("B"); p.Lane != 0 {
		t.Errorf("B lane = %d after removing A, want 0", p.Lane)
	}
}

func TestStore_Move(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddTrack("tr", KindTranslation); err != nil {
		t.Fatal(err)
	}
	mustAdd(t, s, "main", "A", 0, 3, "a")
	mustAdd(t, s, "main", "B", 1, 4, "b")
	mustAdd(t, s, "tr", "X", 2, 5, "x")

	if err := s.Move("B", "main", "tr"); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	got, trackID, _ := s.Get("B")
	if trackID != "tr" || got.Start != 1 || got.End != 4 {
		t.Errorf("after move B = %+v in %s", got, trackID)
	}
	if s.Len("main") != 1 || s.Len("tr") != 2 {
		t.Errorf("lengths = %d, %d, want 1, 2", s.Len("main"), s.Len("tr"))
	}
	tr, _ := s.Track("tr")
	if tr.Lanes["B"].Lane != 0 || tr.Lanes["X"].Lane != 1 {
		t.Errorf("tr lanes = %v", tr.Lanes)
	}

	if err := s.Move("B", "main", "tr"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move from wrong track error = %v, want ErrNotFound", err)
	}
}

func TestStore_Split(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 2, 6, "one two three four")

	rest, err := s.Split("A", 4)
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	head, _, _ := s.Get("A")

	if head.Start != 2 || head.End != 4 {
		t.Errorf("head = [%v, %v], want [2, 4]", head.Start, head.End)
	}
	if rest.Start != 4 || rest.End != 6 {
		t.Errorf("rest = [%v, %v], want [4, 6]", rest.Start, rest.End)
	}
	if head.End != rest.Start {
		t.Errorf("seam gap: head ends %v, rest starts %v", head.End, rest.Start)
	}
	if !rest.Payload.Continuation || head.Payload.Continuation {
		t.Errorf("continuation flags head=%v rest=%v", head.Payload.Continuation, rest.Payload.Continuation)
	}
	if head.Payload.Text != "one two" || rest.Payload.Text != "three four" {
		t.Errorf("texts = %q / %q", head.Payload.Text, rest.Payload.Text)
	}
	if s.Len("main") != 2 {
		t.Errorf("Len() = %d, want 2", s.Len("main"))
	}
}

func TestStore_SplitRejectsBoundaries(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 2, 6, "a")
	for _, at := range []float64{2, 6, 1, 7, math.NaN()} {
		if _, err := s.Split("A", at); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("Split(%v) error = %v, want ErrInvalidInterval", at, err)
		}
	}
	if s.Len("main") != 1 {
		t.Errorf("Len() = %d, want 1", s.Len("main"))
	}
}

func TestStore_SplitThenMerge(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 1, 5, "hello there world")
	rest, err := s.Split("A", 3)
	if err != nil {
		t.Fatal(err)
	}
	merged, err := s.Merge("A", rest.ID)
	if err != nil {
		t.Fatalf("Merge() error = %v", err)
	}
	if merged.Start != 1 || merged.End != 5 {
		t.Errorf("merged = [%v, %v], want [1, 5]", merged.Start, merged.End)
	}
	if merged.Payload.Text != "hello there world" {
		t.Errorf("merged text = %q", merged.Payload.Text)
	}
	if s.Len("main") != 1 {
		t.Errorf("Len() = %d, want 1", s.Len("main"))
	}
}

func TestStore_MergeReversedOrder(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "first")
	mustAdd(t, s, "main", "B", 2, 4, "second")
	merged, err := s.Merge("B", "A")
	if err != nil {
		t.Fatal(err)
	}
	if merged.ID != "B" || merged.Start != 0 || merged.End != 4 || merged.Payload.Text != "first second" {
		t.Errorf("merged = %+v", merged)
	}
	if _, err := s.Merge("B", "B"); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("self merge error = %v, want ErrInvalidInterval", err)
	}
}

func TestStore_MergeRejectsGap(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 1, "a")
	mustAdd(t, s, "main", "B", 50, 51, "b")
	mustAdd(t, s, "main", "C", 50.5, 52, "c")

	if _, err := s.Merge("A", "B"); !errors.Is(err, ErrInvalidInterval) {
		t.Fatalf("Merge(A, B) error = %v, want ErrInvalidInterval", err)
	}
	a, _, _ := s.Get("A")
	if a.Start != 0 || a.End != 1 || s.Len("main") != 3 {
		t.Errorf("rejected merge changed state: A = [%v, %v], len %d", a.Start, a.End, s.Len("main"))
	}

	merged, err := s.Merge("B", "C")
	if err != nil {
		t.Fatalf("Merge(B, C) error = %v", err)
	}
	if merged.Start != 50 || merged.End != 52 {
		t.Errorf("merged = [%v, %v], want [50, 52]", merged.Start, merged.End)
	}
}

func TestStore_UpdateRange(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "a")
	mustAdd(t, s, "main", "B", 3, 4, "b")

	if err := s.UpdateRange("A", 5, 7); err != nil {
		t.Fatalf("UpdateRange() error = %v", err)
	}
	track, _ := s.Track("main")
	if track.Items[0].ID != "B" || track.Items[1].ID != "A" {
		t.Errorf("order after update = %s, %s", track.Items[0].ID, track.Items[1].ID)
	}

	if err := s.UpdateRange("A", 7, 7); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("UpdateRange(7,7) error = %v, want ErrInvalidInterval", err)
	}
	got, _, _ := s.Get("A")
	if got.Start != 5 || got.End != 7 {
		t.Errorf("rejected update changed A to [%v, %v]", got.Start, got.End)
	}
	if err := s.UpdateRange("zzz", 1, 2); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateRange(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestStore_ForcedLane(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "a")

	if err := s.SetForcedLane("A", 2); err != nil {
		t.Fatal(err)
	}
	if p, _ := s.Placement("A"); p.Lane != 2 {
		t.Errorf("lane = %d, want 2", p.Lane)
	}
	if err := s.SetForcedLane("A", 3); !errors.Is(err, ErrConfiguration) {
		t.Errorf("SetForcedLane(3) error = %v, want ErrConfiguration", err)
	}
	if err := s.ClearForcedLane("A"); err != nil {
		t.Fatal(err)
	}
	if p, _ := s.Placement("A"); p.Lane != 0 {
		t.Errorf("lane after clear = %d, want 0", p.Lane)
	}
}

func TestStore_LockedTrackRejectsTimingEdits(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "a")
	if err := s.SetLocked("main", true); err != nil {
		t.Fatal(err)
	}

	if err := s.UpdateRange("A", 1, 3); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("UpdateRange error = %v, want ErrTrackLocked", err)
	}
	if _, err := s.Split("A", 1); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("Split error = %v, want ErrTrackLocked", err)
	}
	if err := s.ShiftTrack("main", 1); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("ShiftTrack error = %v, want ErrTrackLocked", err)
	}
	if err := s.SetText("A", "edited"); err != nil {
		t.Errorf("SetText on locked track error = %v", err)
	}
}

func TestStore_AssignKind(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "Hello")

	if err := s.AssignKind("A", KindDescription); err != nil {
		t.Fatalf("AssignKind() error = %v", err)
	}
	got, trackID, _ := s.Get("A")
	if trackID != "description" {
		t.Errorf("track = %s, want description", trackID)
	}
	if got.AssignedKind != KindDescription {
		t.Errorf("AssignedKind = %q", got.AssignedKind)
	}
	if KindFor(got) != KindDescription {
		t.Errorf("KindFor() = %q, want description", KindFor(got))
	}
	if err := s.AssignKind("A", Kind("bogus")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("AssignKind(bogus) error = %v, want ErrConfiguration", err)
	}
}

func TestStore_AssignKindOnLockedTrack(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 2, "Hello")
	if err := s.SetLocked("main", true); err != nil {
		t.Fatal(err)
	}

	if err := s.AssignKind("A", KindDescription); !errors.Is(err, ErrTrackLocked) {
		t.Fatalf("AssignKind() error = %v, want ErrTrackLocked", err)
	}
	if ids := s.TrackIDs(); len(ids) != 1 || ids[0] != "main" {
		t.Errorf("TrackIDs() = %v, want [main]", ids)
	}
	got, trackID, _ := s.Get("A")
	if trackID != "main" || got.AssignedKind != "" {
		t.Errorf("A on %s with kind %q, want main and none", trackID, got.AssignedKind)
	}

	// A locked destination is refused the same way.
	if err := s.SetLocked("main", false); err != nil {
		t.Fatal(err)
	}
	if err := s.AddTrack("notes", KindDescription); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLocked("notes", true); err != nil {
		t.Fatal(err)
	}
	if err := s.AssignKind("A", KindDescription); !errors.Is(err, ErrTrackLocked) {
		t.Errorf("AssignKind() to locked track error = %v, want ErrTrackLocked", err)
	}
	if s.Len("notes") != 0 || s.Len("main") != 1 {
		t.Errorf("lens main=%d notes=%d, want 1 and 0", s.Len("main"), s.Len("notes"))
	}
}

func TestStore_ShiftTrack(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 1, 2, "a")
	mustAdd(t, s, "main", "B", 3, 4, "b")

	if err := s.ShiftTrack("main", -1.5); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("ShiftTrack(-1.5) error = %v, want ErrInvalidInterval", err)
	}
	if err := s.ShiftTrack("main", 0.5); err != nil {
		t.Fatal(err)
	}
	a, _, _ := s.Get("A")
	b, _, _ := s.Get("B")
	if a.Start != 1.5 || b.End != 4.5 {
		t.Errorf("after shift A=%v B=%v", a.Range(), b.Range())
	}
}

func TestStore_ActiveAtTracksMutations(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "main", "A", 0, 3, "a")
	mustAdd(t, s, "main", "B", 2.5, 5.5, "b")
	mustAdd(t, s, "main", "C", 5, 8, "c")

	if got := ids(s.ActiveAt("main", 2.7)); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("ActiveAt(2.7) = %v, want [A B]", got)
	}
	if err := s.UpdateRange("C", 2, 5); err != nil {
		t.Fatal(err)
	}
	if got := ids(s.ActiveAt("main", 2.7)); len(got) != 3 {
		t.Errorf("ActiveAt(2.7) after update = %v, want 3 items", got)
	}
	if got := s.ActiveAt("missing", 1); got != nil {
		t.Errorf("ActiveAt(missing) = %v, want nil", got)
	}
}

func TestStore_Events(t *testing.T) {
	s := newTestStore(t)
	var changed []string
	var overflow []string
	s.SetEvents(&Events{
		OnTrackChanged: func(id string) { changed = append(changed, id) },
		OnOverflow:     func(_ string, ids []string) { overflow = append(overflow, ids...) },
	})

	for i, id := range []string{"A", "B", "C", "D"} {
		mustAdd(t, s, "main", id, float64(i), 10, id)
	}
	if len(changed) != 4 {
		t.Errorf("OnTrackChanged fired %d times, want 4", len(changed))
	}
	if len(overflow) != 1 || overflow[0] != "D" {
		t.Errorf("overflow = %v, want [D]", overflow)
	}
	track, _ := s.Track("main")
	if got := track.Overflowed(); len(got) != 1 || got[0] != "D" {
		t.Errorf("Overflowed() = %v, want [D]", got)
	}
}

func TestStore_Tracks(t *testing.T) {
	s := newTestStore(t)
	if err := s.AddTrack("main", KindMain); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate AddTrack error = %v", err)
	}
	if err := s.AddTrack("x", Kind("nope")); !errors.Is(err, ErrConfiguration) {
		t.Errorf("AddTrack(bad kind) error = %v", err)
	}
	mustAdd(t, s, "main", "A", 0, 9, "a")
	if s.Span() != 9 {
		t.Errorf("Span() = %v, want 9", s.Span())
	}
	s.RemoveTrack("main")
	if len(s.TrackIDs()) != 0 {
		t.Errorf("TrackIDs() = %v", s.TrackIDs())
	}
	if _, _, ok := s.Get("A"); ok {
		t.Error("interval survived its track")
	}
}
