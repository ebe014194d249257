package buffer

type bufferSnapshot struct {
	text   string
	cursor Pos
	sel    selectionState
}

type historyState struct {
	undo []bufferSnapshot
	redo []bufferSnapshot
}

func (b *Buffer) snapshot() bufferSnapshot {
	return bufferSnapshot{
		text:   b.Text(),
		cursor: b.cursor,
		sel:    b.sel,
	}
}

func (b *Buffer) restore(s bufferSnapshot) {
	b.lines = splitLines(s.text)
	b.cursor = b.clampPos(s.cursor)

	if !s.sel.active {
		b.sel = selectionState{}
		return
	}
	anchor := b.clampPos(s.sel.anchor)
	end := b.clampPos(s.sel.end)
	if anchor == end {
		b.sel = selectionState{}
		return
	}
	b.sel = selectionState{active: true, anchor: anchor, end: end}
}

func (b *Buffer) recordUndo(prev bufferSnapshot) {
	limit := b.opt.HistoryLimit
	if limit <= 0 {
		return
	}

	b.hist.undo = append(b.hist.undo, prev)
	if len(b.hist.undo) > limit {
		b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
	}
	b.hist.redo = nil
}

func (b *Buffer) CanUndo() bool { return len(b.hist.undo) > 0 }

func (b *Buffer) CanRedo() bool { return len(b.hist.redo) > 0 }

func (b *Buffer) Undo() bool {
	if len(b.hist.undo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.undo) - 1
	prev := b.hist.undo[i]
	b.hist.undo = b.hist.undo[:i]
	b.hist.redo = append(b.hist.redo, cur)

	b.swapTo(cur, prev)
	return true
}

func (b *Buffer) Redo() bool {
	if len(b.hist.redo) == 0 {
		return false
	}

	cur := b.snapshot()
	i := len(b.hist.redo) - 1
	next := b.hist.redo[i]
	b.hist.redo = b.hist.redo[:i]

	if limit := b.opt.HistoryLimit; limit > 0 {
		b.hist.undo = append(b.hist.undo, cur)
		if len(b.hist.undo) > limit {
			b.hist.undo = b.hist.undo[len(b.hist.undo)-limit:]
		}
	}

	b.swapTo(cur, next)
	return true
}

// swapTo restores target and records the text difference as one change.
func (b *Buffer) swapTo(cur, target bufferSnapshot) {
	change := b.beginChange(ChangeSourceHistory)
	b.restore(target)
	b.version++
	if applied, step, ok := diffEdit(cur.text, target.text); ok {
		change.add(applied, step)
	}
	b.commitChange(change)
}

// diffEdit describes the change from before to after as a single replacement
// of the span between their common prefix and common suffix.
func diffEdit(before, after string) (AppliedEdit, ChangeStep, bool) {
	if before == after {
		return AppliedEdit{}, ChangeStep{}, false
	}
	a, z := []rune(before), []rune(after)

	prefix := 0
	for prefix < len(a) && prefix < len(z) && a[prefix] == z[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(a)-prefix && suffix < len(z)-prefix && a[len(a)-1-suffix] == z[len(z)-1-suffix] {
		suffix++
	}

	deleted := string(a[prefix : len(a)-suffix])
	inserted := string(z[prefix : len(z)-suffix])
	start := posAtOffset(splitLines(before), prefix)
	step := ChangeStep{From: prefix, To: len(a) - suffix, Insert: len(z) - suffix - prefix}
	applied := AppliedEdit{
		RangeBefore: Range{Start: start, End: posAtOffset(splitLines(before), len(a)-suffix)},
		RangeAfter:  Range{Start: start, End: posAtOffset(splitLines(after), len(z)-suffix)},
		InsertText:  inserted,
		DeletedText: deleted,
	}
	return applied, step, true
}
