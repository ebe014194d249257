package editor

import (
	"sort"

	"github.com/iw2rmb/codefence/buffer"
	"github.com/iw2rmb/codefence/engine"
)

type rowKind uint8

const (
	rowLine rowKind = iota
	rowHeader
)

// row is one screen row: a piece of a document line or the header widget
// drawn above an opening line.
type row struct {
	kind rowKind
	line int

	// startCol and endCol bound the runes shown; x0 is the screen cell of
	// startCol within the line.
	startCol, endCol int
	x0               int
	// cont marks wrapped rows after the first; last the row reaching the
	// line end.
	cont, last bool
}

// frame is the engine's decoration output indexed by line.
type frame struct {
	rows []row

	headers      map[int]engine.Header
	classes      map[int]engine.LineClass
	numbers      map[int]engine.LineNumber
	placeholders map[int]engine.Placeholder
	languages    map[int]string

	// numberWidth is the widest line number; 0 hides the gutter.
	numberWidth int
}

// layoutOptions are the host settings rows depend on.
type layoutOptions struct {
	// width is the text area including the gutter; 0 disables wrapping.
	width    int
	tabWidth int
	wrap     WrapMode
	cursor   buffer.Pos
}

func buildFrame(eng *engine.Engine, buf *buffer.Buffer, opts layoutOptions) frame {
	st := eng.State()
	n := buf.LineCount()
	f := frame{
		headers:      map[int]engine.Header{},
		classes:      map[int]engine.LineClass{},
		numbers:      map[int]engine.LineNumber{},
		placeholders: map[int]engine.Placeholder{},
		languages:    map[int]string{},
	}

	hidden := make([]bool, n)
	for _, d := range eng.Decorations() {
		switch p := d.Payload.(type) {
		case engine.Header:
			f.headers[p.Line] = p
		case engine.LineClass:
			f.classes[p.Line] = p
		case engine.LineNumber:
			f.numbers[p.Line] = p
			f.numberWidth = max(f.numberWidth, p.Width)
		case engine.Placeholder:
			f.placeholders[p.Line] = p
			for l := p.Line + 1; l <= st.LineAt(d.To) && l < n; l++ {
				hidden[l] = true
			}
		}
	}
	for _, r := range st.Regions {
		if _, ok := f.headers[r.StartLine]; !ok {
			continue
		}
		for l := r.BodyFrom; l < r.BodyTo; l++ {
			f.languages[l] = r.Parameters.Language
		}
	}

	textWidth := 0
	if opts.width > 0 {
		textWidth = max(opts.width-f.gutterWidth(), 1)
	}
	f.rows = make([]row, 0, n+len(f.headers))
	for l := 0; l < n; l++ {
		if hidden[l] {
			continue
		}
		if _, ok := f.headers[l]; ok {
			f.rows = append(f.rows, row{kind: rowHeader, line: l})
		}
		f.rows = append(f.rows, f.lineRows(l, buf.Line(l), textWidth, opts)...)
	}
	return f
}

// lineRows lays out one document line. Body lines of unwrapped regions stay
// on one row, clipped around the cursor, unless they wrap while active.
func (f frame) lineRows(line int, text string, width int, opts layoutOptions) []row {
	cells := layoutCells(text, opts.tabWidth)
	mode := opts.wrap
	var segs []segment
	if lc, ok := f.classes[line]; ok {
		active := opts.cursor.Row == line
		if lc.Unwrap && !(lc.ActiveWrap && active) {
			col := -1
			if active {
				col = opts.cursor.Col
			}
			segs = []segment{clipCells(cells, width, col)}
		} else if mode == WrapNone {
			mode = WrapWord
		}
	}
	if segs == nil {
		segs = wrapCells(cells, mode, width)
	}

	out := make([]row, 0, len(segs))
	for i, sg := range segs {
		r := row{kind: rowLine, line: line, cont: i > 0}
		if sg.from < len(cells) {
			r.startCol = cells[sg.from].Col
			r.x0 = cells[sg.from].X
		} else {
			r.startCol = lineEnd(cells)
			r.x0 = lineWidth(cells)
		}
		r.endCol = r.startCol
		if sg.to > sg.from {
			r.endCol = cells[sg.to-1].end()
		}
		r.last = sg.to >= len(cells)
		out = append(out, r)
	}
	return out
}

func lineEnd(cells []cell) int {
	if len(cells) == 0 {
		return 0
	}
	return cells[len(cells)-1].end()
}

// gutterWidth includes the separator column.
func (f frame) gutterWidth() int {
	if f.numberWidth == 0 {
		return 0
	}
	return f.numberWidth + 1
}

// rowOfPos returns the screen row showing p, or the nearest shown row above
// it.
func (f frame) rowOfPos(p buffer.Pos) (int, bool) {
	i := sort.Search(len(f.rows), func(i int) bool {
		r := f.rows[i]
		return r.line > p.Row || (r.line == p.Row && r.kind == rowLine)
	})
	if i < len(f.rows) && f.rows[i].line == p.Row {
		for i+1 < len(f.rows) && f.rows[i+1].line == p.Row && p.Col >= f.rows[i+1].startCol {
			i++
		}
		return i, true
	}
	if i > 0 {
		return i - 1, true
	}
	return 0, len(f.rows) > 0
}

func (f frame) foldedLines() []int {
	out := make([]int, 0, len(f.placeholders))
	for l := range f.placeholders {
		out = append(out, l)
	}
	sort.Ints(out)
	return out
}
