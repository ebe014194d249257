package editor

import "github.com/iw2rmb/codefence/buffer"

// screenToDocPos maps viewport-local mouse coordinates to a document position.
//
// Coordinates are in terminal cells relative to the top-left of the visible
// content. header reports a click on a header row; pos is then the start of
// its opening line. Gutter clicks map to the first column of the row.
func (m *Model) screenToDocPos(x, y int) (pos buffer.Pos, header bool) {
	rows := m.frame.rows
	if len(rows) == 0 {
		return buffer.Pos{}, false
	}
	r := rows[clampInt(m.viewport.YOffset+y, 0, len(rows)-1)]
	if r.kind == rowHeader {
		return buffer.Pos{Row: r.line}, true
	}

	x -= m.frame.gutterWidth()
	if x < 0 {
		return buffer.Pos{Row: r.line, Col: r.startCol}, false
	}
	cells := layoutCells(m.buf.Line(r.line), m.cfg.TabWidth)
	col := colAtX(cells, r.x0+x)
	if col >= r.endCol && !r.last {
		// Past the end of a wrapped row: stay on its last cluster.
		for i := len(cells) - 1; i >= 0; i-- {
			if cells[i].Col < r.endCol {
				col = cells[i].Col
				break
			}
		}
	}
	return buffer.Pos{Row: r.line, Col: max(col, r.startCol)}, false
}
