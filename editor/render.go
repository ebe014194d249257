package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codefence/buffer"
	"github.com/iw2rmb/codefence/engine"
	"github.com/iw2rmb/codefence/fence"
	graphemeutil "github.com/iw2rmb/codefence/internal/grapheme"
)

const (
	markerUnfolded = "▼"
	markerFolded   = "▶"
)

func (m *Model) renderContent() string {
	cursor := m.buf.Cursor()
	sel, selOK := m.buf.Selection()

	out := make([]string, 0, len(m.frame.rows))
	for _, r := range m.frame.rows {
		var sb strings.Builder
		sb.WriteString(m.renderGutter(r, cursor))
		switch r.kind {
		case rowHeader:
			sb.WriteString(m.renderHeader(m.frame.headers[r.line]))
		default:
			sb.WriteString(m.renderLine(r, cursor, sel, selOK))
		}
		out = append(out, sb.String())
	}
	return strings.Join(out, "\n")
}

func (m *Model) contentWidth() int {
	return m.viewport.Width - m.viewport.Style.GetHorizontalFrameSize() - m.frame.gutterWidth()
}

func (m *Model) renderHeader(h engine.Header) string {
	marker := markerUnfolded
	if h.Folded {
		marker = markerFolded
	}
	st := m.eng.State()
	if r, ok := st.RegionAt(st.LineStart(h.Line)); !ok || !r.HasBody() || r.Parameters.Ignore {
		marker = " "
	}
	return m.cfg.Style.Header.Render(marker + " " + graphemeutil.Truncate(headerLabel(h), m.contentWidth()-2))
}

func headerLabel(h engine.Header) string {
	label := h.Title
	if label == "" {
		label = h.Language
	}
	if label == "" {
		label = "code"
	}
	if h.Reference != "" && h.Reference != label {
		label += " (" + h.Reference + ")"
	}
	return label
}

// renderLine draws the part of a line shown on row r.
func (m *Model) renderLine(r row, cursor buffer.Pos, sel buffer.Range, selOK bool) string {
	st := m.cfg.Style
	line := r.line
	text := m.buf.Line(line)
	cells := layoutCells(text, m.cfg.TabWidth)
	lineLen := lineEnd(cells)

	lc, classed := m.frame.classes[line]
	class := lc.Class
	base := st.lineStyle(class)

	spans := m.highlightLine(line, text, class, lineLen)

	cursorCol := -1
	if m.focused && cursor.Row == line {
		cursorCol = clampInt(cursor.Col, 0, lineLen)
	}
	selStart, selEnd, hasSel := selectionColsForRow(sel, selOK, line, lineLen)

	var sb strings.Builder
	used := 0
	si := 0
	for _, c := range cells {
		if c.Col < r.startCol || c.Col >= r.endCol {
			continue
		}
		for si < len(spans) && spans[si].EndCol <= c.Col {
			si++
		}
		style := base
		onCursor := cursorCol >= c.Col && cursorCol < c.end()
		switch {
		case onCursor:
			style = st.Cursor.Inherit(base)
		case hasSel && c.Col < selEnd && c.end() > selStart:
			style = st.Selection.Inherit(base)
		case si < len(spans) && spans[si].StartCol <= c.Col:
			style = spans[si].Style.Inherit(base)
		}
		text := c.displayText()
		if onCursor && graphemeutil.IsSpace(c.Text) && trailingSpace(cells, c) {
			// Terminals may drop styled trailing spaces.
			text = strings.ReplaceAll(text, " ", "\u00a0")
		}
		sb.WriteString(style.Render(text))
		used = c.X + c.Width - r.x0
	}
	if !r.last {
		return m.padClassed(&sb, base, classed, class, used)
	}
	if cursorCol == lineLen && cursorCol >= 0 {
		sb.WriteString(st.Cursor.Inherit(base).Render(" "))
		used++
	}

	if ph, ok := m.frame.placeholders[line]; ok {
		label := " " + ph.Text + " "
		sb.WriteString(st.Text.Render(" "))
		sb.WriteString(st.Placeholder.Render(label))
		used += 1 + graphemeutil.Width(label)
	}
	return m.padClassed(&sb, base, classed, class, used)
}

// padClassed fills the rest of a highlighted row with its background.
func (m *Model) padClassed(sb *strings.Builder, base lipgloss.Style, classed bool, class string, used int) string {
	if classed && class != fence.ClassPlain {
		if pad := m.contentWidth() - used; pad > 0 {
			sb.WriteString(base.Render(strings.Repeat(" ", pad)))
		}
	}
	return sb.String()
}

func (m *Model) highlightLine(line int, text, class string, lineLen int) []HighlightSpan {
	lang, ok := m.frame.languages[line]
	if !ok || m.cfg.Highlighter == nil {
		return nil
	}
	spans, err := m.cfg.Highlighter.HighlightLine(LineContext{
		Row:      line,
		Text:     text,
		Language: lang,
		Class:    class,
	})
	if err != nil {
		return nil
	}
	return normalizeHighlightSpans(spans, lineLen)
}

func selectionColsForRow(sel buffer.Range, ok bool, row, lineLen int) (start, end int, has bool) {
	if !ok || row < sel.Start.Row || row > sel.End.Row {
		return 0, 0, false
	}
	start, end = 0, lineLen
	if row == sel.Start.Row {
		start = sel.Start.Col
	}
	if row == sel.End.Row {
		end = sel.End.Col
	}
	return start, end, start < end
}

func trailingSpace(cells []cell, from cell) bool {
	for _, c := range cells {
		if c.Col >= from.Col && !graphemeutil.IsSpace(c.Text) {
			return false
		}
	}
	return true
}
