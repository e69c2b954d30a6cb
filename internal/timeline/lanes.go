package timeline

import (
	"fmt"
	"sort"
)

// Placement is the lane assigned to one interval. Overflow is set when the
// interval had to share a lane with an overlapping interval because every
// lane was busy.
type Placement struct {
	Lane     int
	Overflow bool
}

// LaneAssigner partitions intervals into at most maxLanes rows using greedy
// interval partitioning.
type LaneAssigner struct {
	maxLanes int
}

// NewLaneAssigner returns an assigner bounded to maxLanes rows.
func NewLaneAssigner(maxLanes int) (*LaneAssigner, error) {
	if maxLanes < 1 {
		return nil, fmt.Errorf("%w: maxLanes %d < 1", ErrConfiguration, maxLanes)
	}
	return &LaneAssigner{maxLanes: maxLanes}, nil
}

// MaxLanes returns the lane bound.
func (a *LaneAssigner) MaxLanes() int {
	return a.maxLanes
}

// Assign computes a lane for every interval. Intervals are visited by start
// time; ties keep the order of items. Each interval takes the lowest lane
// whose last end is <= its start, opens a new lane while fewer than maxLanes
// exist, and otherwise goes to the lane that frees up soonest with Overflow
// set. A valid ForcedLane bypasses the search but still occupies its lane.
func (a *LaneAssigner) Assign(items []Interval) map[string]Placement {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return items[order[i]].Start < items[order[j]].Start
	})

	placements := make(map[string]Placement, len(items))
	lastEnd := make([]float64, 0, a.maxLanes)

	for _, idx := range order {
		iv := items[idx]
		lane := -1
		overflow := false

		if iv.HasForcedLane && iv.ForcedLane >= 0 && iv.ForcedLane < a.maxLanes {
			lane = iv.ForcedLane
			for len(lastEnd) <= lane {
				lastEnd = append(lastEnd, 0)
			}
			overflow = lastEnd[lane] > iv.Start
		} else {
			for l, end := range lastEnd {
				if end <= iv.Start {
					lane = l
					break
				}
			}
			if lane < 0 && len(lastEnd) < a.maxLanes {
				lastEnd = append(lastEnd, 0)
				lane = len(lastEnd) - 1
			}
			if lane < 0 {
				lane = soonestFreed(lastEnd)
				overflow = true
			}
		}

		placements[iv.ID] = Placement{Lane: lane, Overflow: overflow}
		if iv.End > lastEnd[lane] {
			lastEnd[lane] = iv.End
		}
	}

	return placements
}

// soonestFreed returns the lane with the smallest last end, lowest index on ties.
func soonestFreed(lastEnd []float64) int {
	best := 0
	for l := 1; l < len(lastEnd); l++ {
		if lastEnd[l] < lastEnd[best] {
			best = l
		}
	}
	return best
}
