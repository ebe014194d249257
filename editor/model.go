package editor

import (
	"slices"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefence/buffer"
	"github.com/iw2rmb/codefence/engine"
)

// Model is a Bubble Tea component that edits a buffer and renders the fence
// decorations of an engine bound to it.
type Model struct {
	cfg Config
	buf *buffer.Buffer
	eng *engine.Engine

	focused bool

	viewport viewport.Model
	frame    frame

	lastBufVersion uint64
	lastCursor     buffer.Pos
	lastSel        buffer.Range
	lastFolded     []int
	lastEventVer   uint64

	mouseDragging bool
	mouseAnchor   buffer.Pos
}

// SettingsMsg replaces the engine settings, and optionally the style and
// highlighter, for example after the configuration file changed.
type SettingsMsg struct {
	Settings    engine.Settings
	Style       *Style
	Highlighter Highlighter
}

func New(cfg Config) Model {
	cfg = cfg.withDefaults()
	buf := buffer.New(cfg.Text, buffer.Options{HistoryLimit: cfg.HistoryLimit})
	m := Model{
		cfg:      cfg,
		buf:      buf,
		eng:      engine.New(buf, cfg.Settings, cfg.Engine),
		focused:  true,
		viewport: viewport.New(0, 0),
	}
	m.lastBufVersion = buf.Version()
	m.lastEventVer = buf.Version()
	m.eng.Apply(engine.Transaction{Selection: m.selection()})
	m.relayout()
	m.lastFolded = m.frame.foldedLines()
	return m
}

func (m Model) Buffer() *buffer.Buffer { return m.buf }

func (m Model) Engine() *engine.Engine { return m.eng }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) SetSize(width, height int) Model {
	m.viewport.Width = max(width, 0)
	m.viewport.Height = max(height, 0)
	m.refresh(true)
	return m
}

func (m Model) Focus() Model {
	if !m.focused {
		m.focused = true
		m.refresh(true)
	}
	return m
}

func (m Model) Blur() Model {
	if m.focused {
		m.focused = false
		m.refresh(false)
	}
	return m
}

func (m Model) Focused() bool { return m.focused }

// FoldAll folds every visible region.
func (m Model) FoldAll() Model {
	m.eng.FoldAll()
	m.refresh(false)
	return m
}

// UnfoldAll unfolds every visible region.
func (m Model) UnfoldAll() Model {
	m.eng.UnfoldAll()
	m.refresh(false)
	return m
}

// ResetFolds returns every visible region to its fold parameter.
func (m Model) ResetFolds() Model {
	m.eng.ResetFolds()
	m.refresh(false)
	return m
}

// ToggleFold toggles the region containing line.
func (m Model) ToggleFold(line int) Model {
	m.toggleFoldAt(line)
	m.refresh(true)
	return m
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case SettingsMsg:
		m.applySettings(msg)
		return m, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.updateKey(msg)
		m.refresh(true)
		return m, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		m, cmd = m.updateMouse(msg)
		m.refresh(false)
		return m, cmd
	default:
		// The host may have mutated the buffer directly.
		if m.bufferMoved() {
			m.refresh(true)
		}
		return m, nil
	}
}

func (m Model) View() string { return m.viewport.View() }

func (m *Model) applySettings(msg SettingsMsg) {
	if msg.Style != nil {
		m.cfg.Style = *msg.Style
	}
	if msg.Highlighter != nil {
		m.cfg.Highlighter = msg.Highlighter
	}
	s := msg.Settings
	m.eng.Apply(engine.Transaction{Settings: &s})
	m.refresh(false)
}

// refresh hands pending buffer changes to the engine, lays out the rows and
// keeps the engine viewport in step with the scroll position.
func (m *Model) refresh(follow bool) {
	m.syncEngine()
	m.relayout()
	if follow {
		m.followCursor()
	}
	if vp := m.engineViewport(); vp != m.eng.State().Viewport {
		m.eng.Apply(engine.Transaction{Viewport: &vp})
		m.relayout()
	}
	m.emitChange()
}

// syncEngine applies a transaction for buffer edits and cursor movement made
// since the last sync.
func (m *Model) syncEngine() {
	if !m.bufferMoved() {
		return
	}
	ver := m.buf.Version()
	cur := m.buf.Cursor()
	sel, _ := m.buf.SelectionRaw()

	tr := engine.Transaction{Selection: m.selection()}
	if ver != m.lastBufVersion {
		tr.Doc = m.buf
		if changes, ok := m.buf.ChangesSince(m.lastBufVersion); ok {
			tr.Changes = changes
		}
	}
	m.eng.Apply(tr)
	m.lastBufVersion = ver
	m.lastCursor = cur
	m.lastSel = sel
}

// bufferMoved reports whether the text, cursor or selection changed since
// the last sync.
func (m *Model) bufferMoved() bool {
	sel, _ := m.buf.SelectionRaw()
	return m.buf.Version() != m.lastBufVersion || m.buf.Cursor() != m.lastCursor || sel != m.lastSel
}

// selection converts the buffer cursor and selection to engine offsets.
func (m *Model) selection() []engine.Selection {
	if raw, ok := m.buf.SelectionRaw(); ok {
		anchor, _ := m.buf.OffsetFromPos(raw.Start, buffer.OffsetClamp)
		head, _ := m.buf.OffsetFromPos(raw.End, buffer.OffsetClamp)
		return []engine.Selection{{Anchor: anchor, Head: head}}
	}
	off, _ := m.buf.OffsetFromPos(m.buf.Cursor(), buffer.OffsetClamp)
	return []engine.Selection{engine.Cursor(off)}
}

func (m *Model) relayout() {
	m.frame = buildFrame(m.eng, m.buf, layoutOptions{
		width:    max(m.viewport.Width-m.viewport.Style.GetHorizontalFrameSize(), 0),
		tabWidth: m.cfg.TabWidth,
		wrap:     m.cfg.WrapMode,
		cursor:   m.buf.Cursor(),
	})
	m.viewport.SetContent(m.renderContent())
}

// toggleFoldAt parks the cursor on the opening line of the region containing
// line, so a new fold is not revealed right away, and toggles it.
func (m *Model) toggleFoldAt(line int) bool {
	st := m.eng.State()
	r, ok := st.RegionAt(st.LineStart(line))
	if !ok {
		return false
	}
	m.buf.ClearSelection()
	m.buf.SetCursor(buffer.Pos{Row: r.StartLine})
	m.syncEngine()
	return m.eng.ToggleFold(st.LineStart(r.StartLine))
}

func (m *Model) followCursor() {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	if h <= 0 {
		return
	}
	row, ok := m.frame.rowOfPos(m.buf.Cursor())
	if !ok {
		return
	}

	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}

// engineViewport is the line range of the visible rows, widened by one
// screen on each side. An unsized editor shows the whole document.
func (m *Model) engineViewport() engine.Viewport {
	h := m.viewport.Height - m.viewport.Style.GetVerticalFrameSize()
	rows := m.frame.rows
	if h <= 0 || len(rows) == 0 {
		return engine.Viewport{}
	}
	first := clampInt(m.viewport.YOffset, 0, len(rows)-1)
	last := clampInt(m.viewport.YOffset+h-1, 0, len(rows)-1)
	return engine.Viewport{
		From: max(rows[first].line-h, 0),
		To:   min(rows[last].line+1+h, m.buf.LineCount()),
	}
}

func (m *Model) emitChange() {
	folded := m.frame.foldedLines()
	changed := m.buf.Version() != m.lastEventVer || !slices.Equal(folded, m.lastFolded)
	m.lastFolded = folded
	if !changed {
		return
	}
	m.lastEventVer = m.buf.Version()
	if m.cfg.OnChange != nil {
		m.cfg.OnChange(buildChangeEvent(m.buf, folded))
	}
}
