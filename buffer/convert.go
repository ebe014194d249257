package buffer

// OffsetClampMode controls how out-of-range inputs are converted.
type OffsetClampMode uint8

const (
	OffsetError OffsetClampMode = iota
	OffsetClamp
)

// PosFromOffset converts a rune offset into a position.
func (b *Buffer) PosFromOffset(off int, mode OffsetClampMode) (Pos, bool) {
	n := b.Len()
	if off < 0 || off > n {
		if mode != OffsetClamp {
			return Pos{}, false
		}
		off = clampInt(off, 0, n)
	}
	return posAtOffset(b.lines, off), true
}

// OffsetFromPos converts a position into a rune offset.
func (b *Buffer) OffsetFromPos(pos Pos, mode OffsetClampMode) (int, bool) {
	clamped := b.clampPos(pos)
	if clamped != pos && mode != OffsetClamp {
		return 0, false
	}
	return b.offsetOf(clamped), true
}

// LineStart returns the offset of the first rune of row. Rows past the end
// map to the document length.
func (b *Buffer) LineStart(row int) int {
	if row <= 0 {
		return 0
	}
	if row >= len(b.lines) {
		return b.Len()
	}
	return b.offsetOf(Pos{Row: row})
}

// LineAt returns the row containing offset. An offset on a line break
// belongs to the line it ends.
func (b *Buffer) LineAt(off int) int {
	return posAtOffset(b.lines, clampInt(off, 0, b.Len())).Row
}

func (b *Buffer) offsetOf(p Pos) int {
	off := 0
	for row := 0; row < p.Row && row < len(b.lines); row++ {
		off += len(b.lines[row]) + 1
	}
	return off + p.Col
}

func posAtOffset(lines [][]rune, off int) Pos {
	for row, line := range lines {
		if off <= len(line) || row == len(lines)-1 {
			return Pos{Row: row, Col: clampInt(off, 0, len(line))}
		}
		off -= len(line) + 1
	}
	return Pos{}
}
