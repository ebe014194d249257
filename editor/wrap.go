package editor

import graphemeutil "github.com/iw2rmb/codefence/internal/grapheme"

// WrapMode controls how lines longer than the view are broken into rows.
//
// Lines outside code regions follow it directly. Region body lines wrap
// unless their region is unwrapped; they use WrapWord when the mode is
// WrapNone.
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapWord
	WrapGrapheme
)

// segment is a run of cells [from, to) shown on one row.
type segment struct {
	from, to int
}

// wrapCells breaks cells into rows of at most width screen cells. A cell
// wider than width gets a row of its own.
func wrapCells(cells []cell, mode WrapMode, width int) []segment {
	if width <= 0 || mode == WrapNone || len(cells) == 0 {
		return []segment{{0, len(cells)}}
	}

	var out []segment
	for start := 0; start < len(cells); {
		used := 0
		overflow := start
		for overflow < len(cells) {
			w := max(cells[overflow].Width, 1)
			if used > 0 && used+w > width {
				break
			}
			used += w
			overflow++
		}

		end := overflow
		if mode == WrapWord && overflow < len(cells) {
			if br, ok := wordBreak(cells, start, overflow); ok {
				end = br
			}
		}
		out = append(out, segment{start, end})
		start = end
	}
	return out
}

// wordBreak returns the cell after the last whitespace run in
// [start, overflow), so a row ends with its trailing spaces.
func wordBreak(cells []cell, start, overflow int) (int, bool) {
	last := -1
	for i := start; i < overflow; {
		if !graphemeutil.IsSpace(cells[i].Text) {
			i++
			continue
		}
		j := i + 1
		for j < overflow && graphemeutil.IsSpace(cells[j].Text) {
			j++
		}
		last = j
		i = j
	}
	if last <= start {
		return 0, false
	}
	return last, true
}

// clipCells returns the cells of an unwrapped line that fit width, scrolled
// right just enough to show column col. col < 0 keeps the line start.
func clipCells(cells []cell, width, col int) segment {
	if width <= 0 {
		return segment{0, len(cells)}
	}
	to := 0
	for to < len(cells) && cells[to].X+cells[to].Width <= width {
		to++
	}
	if col < 0 {
		return segment{0, to}
	}

	// Index of the cell under col; len(cells) stands for the end of line,
	// which needs one more cell for the cursor.
	at := len(cells)
	for i, c := range cells {
		if col < c.end() {
			at = i
			break
		}
	}
	if at < to || (at == len(cells) && at == to && lineWidth(cells) < width) {
		return segment{0, to}
	}

	right := lineWidth(cells) + 1
	end := len(cells)
	if at < len(cells) {
		right = cells[at].X + cells[at].Width
		end = at + 1
	}
	from := at
	if from == len(cells) {
		from = len(cells) - 1
	}
	for from > 0 && right-cells[from-1].X <= width {
		from--
	}
	for end < len(cells) && cells[end].X+cells[end].Width-cells[from].X <= width {
		end++
	}
	return segment{from, end}
}

func lineWidth(cells []cell) int {
	if len(cells) == 0 {
		return 0
	}
	last := cells[len(cells)-1]
	return last.X + last.Width
}
