package timeline

// Events holds the notification callbacks a UI layer registers once against a
// session. Every field is optional. Callbacks run synchronously inside the
// call that triggered them, after state is consistent.
type Events struct {
	// OnCommitted fires when a drag is released and its range stored.
	OnCommitted func(id string, newRange Range)
	// OnCollision fires when the dragged item starts or stops overlapping an
	// item in its previewed lane.
	OnCollision func(id string, colliding bool)
	// OnSnapped fires when a drag candidate snaps to a boundary or round second.
	OnSnapped func(id string, target float64)
	// OnTrackChanged fires after a track's items or lanes were recomputed.
	OnTrackChanged func(trackID string)
	// OnOverflow fires when lane assignment forced items to share a lane.
	OnOverflow func(trackID string, ids []string)
}

func (e *Events) committed(id string, r Range) {
	if e != nil && e.OnCommitted != nil {
		e.OnCommitted(id, r)
	}
}

func (e *Events) collision(id string, colliding bool) {
	if e != nil && e.OnCollision != nil {
		e.OnCollision(id, colliding)
	}
}

func (e *Events) snapped(id string, target float64) {
	if e != nil && e.OnSnapped != nil {
		e.OnSnapped(id, target)
	}
}

func (e *Events) trackChanged(trackID string) {
	if e != nil && e.OnTrackChanged != nil {
		e.OnTrackChanged(trackID)
	}
}

func (e *Events) overflow(trackID string, ids []string) {
	if e != nil && e.OnOverflow != nil {
		e.OnOverflow(trackID, ids)
	}
}
