package buffer

// Apply applies a sequence of text edits in order as one undoable change.
// Each edit's range is interpreted against the buffer state at the time that
// edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Empty range + non-empty text inserts.
// - Cursor moves to the end of the last effective edit.
// - Selection is cleared if any edit applies.
func (b *Buffer) Apply(edits ...TextEdit) {
	if len(edits) == 0 {
		return
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceLocal)

	anyChanged := false
	lastCursor := b.cursor
	for _, e := range edits {
		nextCursor, applied, step, changed := b.replaceRange(e.Range, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		lastCursor = nextCursor
		change.add(applied, step)
	}
	if !anyChanged {
		return
	}

	b.cursor = b.clampPos(lastCursor)
	b.sel = selectionState{}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
}

// SetText replaces the whole document, keeping history.
func (b *Buffer) SetText(text string) {
	last := len(b.lines) - 1
	b.Apply(TextEdit{
		Range: Range{End: Pos{Row: last, Col: len(b.lines[last])}},
		Text:  text,
	})
}
