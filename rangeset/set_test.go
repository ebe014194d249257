package rangeset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// edit replaces [from, to) with insert characters.
type edit struct{ from, to, insert int }

func (e edit) MapPos(pos int, assoc Assoc) int {
	switch {
	case pos < e.from:
		return pos
	case pos > e.to || (pos == e.to && e.to > e.from):
		return pos + e.insert - (e.to - e.from)
	case assoc == AssocBefore:
		return e.from
	default:
		return e.from + e.insert
	}
}

func bounds[V any](s Set[V]) [][2]int {
	var out [][2]int
	for _, r := range s.Ranges() {
		out = append(out, [2]int{r.From, r.To})
	}
	return out
}

func TestSet_AddKeepsOrderAndSkipsOverlaps(t *testing.T) {
	s := Of(
		Range[string]{From: 20, To: 30, Value: "b"},
		Range[string]{From: 0, To: 10, Value: "a"},
		Range[string]{From: 5, To: 7, Value: "overlap"},
		Range[string]{From: 12, To: 12, Value: "empty"},
	)
	assert.Equal(t, [][2]int{{0, 10}, {20, 30}}, bounds(s))

	s2 := s.Add(Range[string]{From: 10, To: 20, Value: "c"}, Range[string]{From: 25, To: 40})
	assert.Equal(t, [][2]int{{0, 10}, {10, 20}, {20, 30}}, bounds(s2))
	assert.Equal(t, [][2]int{{0, 10}, {20, 30}}, bounds(s), "receiver must not change")
}

func TestSet_MapShiftsAndDropsCollapsed(t *testing.T) {
	s := Of(
		Range[int]{From: 0, To: 5, Value: 1},
		Range[int]{From: 10, To: 15, Value: 2},
		Range[int]{From: 20, To: 25, Value: 3},
	)

	// Delete [9, 16): the middle interval disappears entirely.
	got := s.Map(edit{from: 9, to: 16})
	assert.Equal(t, [][2]int{{0, 5}, {13, 18}}, bounds(got))

	// Insert 3 characters at 10 (left edge of the middle interval).
	got = s.Map(edit{from: 10, to: 10, insert: 3})
	assert.Equal(t, [][2]int{{0, 5}, {13, 18}, {23, 28}}, bounds(got))

	// Insert at the right edge does not grow the interval.
	got = s.Map(edit{from: 5, to: 5, insert: 2})
	assert.Equal(t, [][2]int{{0, 5}, {12, 17}, {22, 27}}, bounds(got))

	// Partial deletion shrinks.
	got = s.Map(edit{from: 12, to: 22})
	assert.Equal(t, [][2]int{{0, 5}, {10, 12}, {12, 15}}, bounds(got))
	require.Equal(t, 3, got.Len(), "adjacent intervals are not merged")
}

func TestSet_FilterAndRemove(t *testing.T) {
	s := Of(
		Range[string]{From: 0, To: 5, Value: "go"},
		Range[string]{From: 10, To: 15, Value: "py"},
		Range[string]{From: 20, To: 25, Value: "go"},
	)
	onlyGo := s.Filter(func(r Range[string]) bool { return r.Value == "go" })
	assert.Equal(t, [][2]int{{0, 5}, {20, 25}}, bounds(onlyGo))

	assert.Equal(t, [][2]int{{0, 5}, {20, 25}}, bounds(s.Remove(10, 15)))
	assert.Equal(t, 3, s.Remove(10, 14).Len())
}

func TestSet_IntersectingUsesClosedBounds(t *testing.T) {
	s := Of(
		Range[int]{From: 0, To: 5},
		Range[int]{From: 10, To: 15},
	)

	assert.Len(t, s.At(5), 1)
	assert.Len(t, s.At(10), 1)
	assert.Len(t, s.At(7), 0)
	assert.Len(t, s.Intersecting(5, 10), 2)
	assert.Len(t, s.Intersecting(16, 100), 0)

	r, ok := s.Find(10, 15)
	require.True(t, ok)
	assert.Equal(t, 10, r.From)
	_, ok = s.Find(10, 14)
	assert.False(t, ok)
}
