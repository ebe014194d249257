package editor

import (
	"fmt"
	"strings"

	"github.com/iw2rmb/codefence/buffer"
)

// renderGutter draws the line-number column of one row. Lines outside
// numbered regions, wrapped continuations and header rows get blanks.
func (m *Model) renderGutter(r row, cursor buffer.Pos) string {
	w := m.frame.gutterWidth()
	if w == 0 {
		return ""
	}
	n, ok := m.frame.numbers[r.line]
	if r.kind != rowLine || r.cont || !ok {
		return m.cfg.Style.Gutter.Render(strings.Repeat(" ", w))
	}

	style := m.cfg.Style.LineNum
	if m.focused && r.line == cursor.Row {
		style = m.cfg.Style.LineNumActive
	}
	// Every region pads to its own width; the column pads to the widest.
	num := fmt.Sprintf("%*d", n.Width, n.Number)
	num = strings.Repeat(" ", max(m.frame.numberWidth-len(num), 0)) + num
	return style.Render(num) + m.cfg.Style.Gutter.Render(" ")
}
