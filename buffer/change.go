package buffer

import (
	"math"

	"github.com/iw2rmb/codefence/rangeset"
)

// ChangeSource identifies where a change originated.
type ChangeSource uint8

const (
	ChangeSourceLocal ChangeSource = iota
	ChangeSourceHistory
)

// SelectionState captures normalized selection state at a point in time.
type SelectionState struct {
	Active bool
	Range  Range
}

// AppliedEdit describes one effective edit in a change transaction.
type AppliedEdit struct {
	RangeBefore Range
	RangeAfter  Range
	InsertText  string
	DeletedText string
}

// Change is a normalized, versioned mutation payload.
type Change struct {
	Source          ChangeSource
	VersionBefore   uint64
	VersionAfter    uint64
	CursorBefore    Pos
	CursorAfter     Pos
	SelectionBefore SelectionState
	SelectionAfter  SelectionState
	AppliedEdits    []AppliedEdit
	Steps           []ChangeStep
}

// Map returns the offset mapping from the document before the change to the
// document after it.
func (c Change) Map() ChangeMap {
	return ChangeMap{Steps: append([]ChangeStep(nil), c.Steps...)}
}

// ChangeStep replaces the rune offsets [From, To) with Insert runes. Offsets
// refer to the document as it was right before the step.
type ChangeStep struct {
	From   int
	To     int
	Insert int
}

func (s ChangeStep) mapPos(pos int, assoc rangeset.Assoc) int {
	switch {
	case pos < s.From:
		return pos
	case pos > s.To || (pos == s.To && s.To > s.From):
		return pos + s.Insert - (s.To - s.From)
	case assoc == rangeset.AssocBefore:
		return s.From
	default:
		return s.From + s.Insert
	}
}

// ChangeMap maps offsets through a sequence of steps.
type ChangeMap struct {
	Steps []ChangeStep
}

var _ rangeset.Mapper = ChangeMap{}

// MapPos maps pos through every step in order. A position inside deleted
// text lands at the deletion point; a position at an insertion point sticks
// to the side chosen by assoc.
func (m ChangeMap) MapPos(pos int, assoc rangeset.Assoc) int {
	for _, s := range m.Steps {
		pos = s.mapPos(pos, assoc)
	}
	return pos
}

// Empty reports whether the map changes nothing.
func (m ChangeMap) Empty() bool {
	for _, s := range m.Steps {
		if s.To > s.From || s.Insert > 0 {
			return false
		}
	}
	return true
}

// Then returns the map that applies m followed by next.
func (m ChangeMap) Then(next ChangeMap) ChangeMap {
	steps := make([]ChangeStep, 0, len(m.Steps)+len(next.Steps))
	steps = append(steps, m.Steps...)
	steps = append(steps, next.Steps...)
	return ChangeMap{Steps: steps}
}

type changeBuilder struct {
	source          ChangeSource
	versionBefore   uint64
	cursorBefore    Pos
	selectionBefore SelectionState
	appliedEdits    []AppliedEdit
	steps           []ChangeStep
}

type changeLogEntry struct {
	versionBefore uint64
	versionAfter  uint64
	steps         []ChangeStep
}

const changeLogLimit = 64

// LastChange returns the most recent effective change.
func (b *Buffer) LastChange() (Change, bool) {
	if !b.hasLastChange {
		return Change{}, false
	}
	return cloneChange(b.lastChange), true
}

// ChangesSince returns the composed map of every text change made after
// version, and whether there was any. When the retained log no longer reaches
// back to version, the map replaces the whole document.
func (b *Buffer) ChangesSince(version uint64) (ChangeMap, bool) {
	if version < b.changeLogFloor {
		return b.wholeDocumentMap(), true
	}
	var m ChangeMap
	changed := false
	for _, e := range b.changeLog {
		if e.versionAfter <= version {
			continue
		}
		if !changed && e.versionBefore < version {
			return b.wholeDocumentMap(), true
		}
		changed = true
		m = m.Then(ChangeMap{Steps: e.steps})
	}
	return m, changed
}

// wholeDocumentMap replaces everything the previous document could have held
// with the current text.
func (b *Buffer) wholeDocumentMap() ChangeMap {
	return ChangeMap{Steps: []ChangeStep{{From: 0, To: math.MaxInt32, Insert: b.Len()}}}
}

func cloneChange(in Change) Change {
	out := in
	out.AppliedEdits = append([]AppliedEdit(nil), in.AppliedEdits...)
	out.Steps = append([]ChangeStep(nil), in.Steps...)
	return out
}

func selectionStateFromInternal(sel selectionState) SelectionState {
	if !sel.active {
		return SelectionState{}
	}
	r := NormalizeRange(Range{Start: sel.anchor, End: sel.end})
	if r.IsEmpty() {
		return SelectionState{}
	}
	return SelectionState{Active: true, Range: r}
}

func (b *Buffer) beginChange(source ChangeSource) changeBuilder {
	return changeBuilder{
		source:          source,
		versionBefore:   b.version,
		cursorBefore:    b.cursor,
		selectionBefore: selectionStateFromInternal(b.sel),
	}
}

func (cb *changeBuilder) add(edit AppliedEdit, step ChangeStep) {
	edit.RangeBefore = NormalizeRange(edit.RangeBefore)
	edit.RangeAfter = NormalizeRange(edit.RangeAfter)
	cb.appliedEdits = append(cb.appliedEdits, edit)
	cb.steps = append(cb.steps, step)
}

func (b *Buffer) commitChange(cb changeBuilder) {
	if b.version == cb.versionBefore {
		return
	}
	b.lastChange = Change{
		Source:          cb.source,
		VersionBefore:   cb.versionBefore,
		VersionAfter:    b.version,
		CursorBefore:    cb.cursorBefore,
		CursorAfter:     b.cursor,
		SelectionBefore: cb.selectionBefore,
		SelectionAfter:  selectionStateFromInternal(b.sel),
		AppliedEdits:    append([]AppliedEdit(nil), cb.appliedEdits...),
		Steps:           append([]ChangeStep(nil), cb.steps...),
	}
	b.hasLastChange = true

	b.changeLog = append(b.changeLog, changeLogEntry{
		versionBefore: cb.versionBefore,
		versionAfter:  b.version,
		steps:         b.lastChange.Steps,
	})
	if n := len(b.changeLog) - changeLogLimit; n > 0 {
		b.changeLogFloor = b.changeLog[n-1].versionAfter
		b.changeLog = append([]changeLogEntry(nil), b.changeLog[n:]...)
	}
}
