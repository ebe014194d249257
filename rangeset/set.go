// Package rangeset implements a sorted collection of disjoint, half-open
// character intervals that each carry a value.
//
// A Set is an immutable value: every operation returns a new Set and leaves
// the receiver untouched, so a Set can be handed to readers as a snapshot.
package rangeset

import "sort"

// Assoc selects which side of an edit a position sticks to when the edit
// happens exactly at that position.
type Assoc int

const (
	// AssocBefore keeps the position before text inserted at it.
	AssocBefore Assoc = -1
	// AssocAfter moves the position past text inserted at it.
	AssocAfter Assoc = 1
)

// Mapper translates positions of the previous document into the current one.
type Mapper interface {
	MapPos(pos int, assoc Assoc) int
}

// Range is one interval [From, To) and its value.
type Range[V any] struct {
	From  int
	To    int
	Value V
}

// Empty reports whether r covers no characters.
func (r Range[V]) Empty() bool { return r.To <= r.From }

// Overlaps reports whether r and other share at least one character.
func (r Range[V]) Overlaps(other Range[V]) bool {
	return r.From < other.To && other.From < r.To
}

// Touches reports whether [from, to] and the closed interval [r.From, r.To]
// intersect.
func (r Range[V]) Touches(from, to int) bool {
	return r.From <= to && from <= r.To
}

// Set is a sorted collection of disjoint intervals.
type Set[V any] struct {
	ranges []Range[V]
}

// Of builds a Set from ranges in any order; see Add for what is dropped.
func Of[V any](ranges ...Range[V]) Set[V] {
	return Set[V]{}.Add(ranges...)
}

// Len returns the number of intervals.
func (s Set[V]) Len() int { return len(s.ranges) }

// Ranges returns a copy of the intervals in order.
func (s Set[V]) Ranges() []Range[V] {
	return append([]Range[V](nil), s.ranges...)
}

// Add merges new intervals into the set. Empty intervals, and intervals that
// overlap an interval already present (or added earlier in the same call),
// are ignored. Adjacent intervals stay separate.
func (s Set[V]) Add(ranges ...Range[V]) Set[V] {
	if len(ranges) == 0 {
		return s
	}
	in := make([]Range[V], 0, len(ranges))
	for _, r := range ranges {
		if !r.Empty() {
			in = append(in, r)
		}
	}
	if len(in) == 0 {
		return s
	}
	sort.SliceStable(in, func(i, j int) bool { return in[i].From < in[j].From })

	out := make([]Range[V], 0, len(s.ranges)+len(in))
	out = append(out, s.ranges...)
	accepted := 0
	for _, r := range in {
		if overlapsAny(out, r) {
			continue
		}
		i := sort.Search(len(out), func(i int) bool { return out[i].From >= r.To })
		out = append(out, Range[V]{})
		copy(out[i+1:], out[i:])
		out[i] = r
		accepted++
	}
	if accepted == 0 {
		return s
	}
	return Set[V]{ranges: out}
}

// Filter keeps the intervals for which keep returns true.
func (s Set[V]) Filter(keep func(Range[V]) bool) Set[V] {
	out := make([]Range[V], 0, len(s.ranges))
	for _, r := range s.ranges {
		if keep(r) {
			out = append(out, r)
		}
	}
	if len(out) == len(s.ranges) {
		return s
	}
	return Set[V]{ranges: out}
}

// Map re-projects every interval through m. From sticks after and To sticks
// before text inserted at their position, so an insertion at an edge never
// grows an interval. Intervals whose text was deleted entirely collapse to
// zero width and are dropped.
func (s Set[V]) Map(m Mapper) Set[V] {
	if m == nil || len(s.ranges) == 0 {
		return s
	}
	out := make([]Range[V], 0, len(s.ranges))
	for _, r := range s.ranges {
		from := m.MapPos(r.From, AssocAfter)
		to := m.MapPos(r.To, AssocBefore)
		if to <= from {
			continue
		}
		out = append(out, Range[V]{From: from, To: to, Value: r.Value})
	}
	return Set[V]{ranges: out}
}

// Intersecting returns the intervals whose closed extent [From, To] meets
// the closed query interval [from, to].
func (s Set[V]) Intersecting(from, to int) []Range[V] {
	if to < from {
		from, to = to, from
	}
	// First interval that can still reach from.
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].To >= from })
	var out []Range[V]
	for ; i < len(s.ranges) && s.ranges[i].From <= to; i++ {
		out = append(out, s.ranges[i])
	}
	return out
}

// At returns the intervals whose closed extent contains pos.
func (s Set[V]) At(pos int) []Range[V] {
	return s.Intersecting(pos, pos)
}

// Find returns the interval with exactly the given bounds.
func (s Set[V]) Find(from, to int) (Range[V], bool) {
	i := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].From >= from })
	if i < len(s.ranges) && s.ranges[i].From == from && s.ranges[i].To == to {
		return s.ranges[i], true
	}
	return Range[V]{}, false
}

// Remove drops the interval with exactly the given bounds, if present.
func (s Set[V]) Remove(from, to int) Set[V] {
	if _, ok := s.Find(from, to); !ok {
		return s
	}
	return s.Filter(func(r Range[V]) bool { return r.From != from || r.To != to })
}

func overlapsAny[V any](sorted []Range[V], r Range[V]) bool {
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].To > r.From })
	return i < len(sorted) && sorted[i].From < r.To
}
