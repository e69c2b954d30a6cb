package timeline

import "sort"

// ActiveIndex answers point-containment queries over intervals that may
// overlap arbitrarily. It keeps the items sorted by start together with a
// running maximum of their ends, so a query walks back from the last item
// starting at or before t and stops once no earlier item can reach t.
type ActiveIndex struct {
	items  []Interval
	maxEnd []float64
}

// NewActiveIndex builds an index over items. The slice is copied and sorted
// by start; callers that already keep order pay only the O(n) prefix pass.
func NewActiveIndex(items []Interval) *ActiveIndex {
	sorted := make([]Interval, len(items))
	copy(sorted, items)
	if !sort.SliceIsSorted(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start }) {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })
	}

	maxEnd := make([]float64, len(sorted))
	for i, iv := range sorted {
		maxEnd[i] = iv.End
		if i > 0 && maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return &ActiveIndex{items: sorted, maxEnd: maxEnd}
}

// Len returns the number of indexed intervals.
func (x *ActiveIndex) Len() int {
	return len(x.items)
}

// At returns every interval with start <= t <= end, ordered by start.
func (x *ActiveIndex) At(t float64) []Interval {
	last := sort.Search(len(x.items), func(i int) bool { return x.items[i].Start > t }) - 1

	var hits []Interval
	for i := last; i >= 0 && x.maxEnd[i] >= t; i-- {
		if x.items[i].End >= t {
			hits = append(hits, x.items[i])
		}
	}

	for i, j := 0, len(hits)-1; i < j; i, j = i+1, j-1 {
		hits[i], hits[j] = hits[j], hits[i]
	}
	return hits
}
