package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefence/buffer"
)

type keyMove struct {
	binding func(KeyMap) key.Binding
	move    buffer.Move
}

var keyMoves = []keyMove{
	{func(k KeyMap) key.Binding { return k.Left }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft}},
	{func(k KeyMap) key.Binding { return k.Right }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight}},
	{func(k KeyMap) key.Binding { return k.Up }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp}},
	{func(k KeyMap) key.Binding { return k.Down }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown}},
	{func(k KeyMap) key.Binding { return k.ShiftLeft }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirLeft, Extend: true}},
	{func(k KeyMap) key.Binding { return k.ShiftRight }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirRight, Extend: true}},
	{func(k KeyMap) key.Binding { return k.ShiftUp }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirUp, Extend: true}},
	{func(k KeyMap) key.Binding { return k.ShiftDown }, buffer.Move{Unit: buffer.MoveRune, Dir: buffer.DirDown, Extend: true}},
	{func(k KeyMap) key.Binding { return k.WordLeft }, buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirLeft}},
	{func(k KeyMap) key.Binding { return k.WordRight }, buffer.Move{Unit: buffer.MoveWord, Dir: buffer.DirRight}},
	{func(k KeyMap) key.Binding { return k.Home }, buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirHome}},
	{func(k KeyMap) key.Binding { return k.End }, buffer.Move{Unit: buffer.MoveLine, Dir: buffer.DirEnd}},
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.focused || m.buf == nil {
		return m, nil
	}

	// Paste events always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		m.edit(func(b *buffer.Buffer) { b.InsertText(string(msg.Runes)) })
		return m, nil
	}

	km := m.cfg.KeyMap
	for _, km2 := range keyMoves {
		if key.Matches(msg, km2.binding(km)) {
			m.buf.Move(km2.move)
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, km.ToggleFold):
		m.toggleFoldAt(m.buf.Cursor().Row)
	case key.Matches(msg, km.FoldAll):
		m.eng.FoldAll()
	case key.Matches(msg, km.UnfoldAll):
		m.eng.UnfoldAll()
	case key.Matches(msg, km.ResetFolds):
		m.eng.ResetFolds()

	case key.Matches(msg, km.Backspace):
		m.edit((*buffer.Buffer).DeleteBackward)
	case key.Matches(msg, km.Delete):
		m.edit((*buffer.Buffer).DeleteForward)
	case key.Matches(msg, km.Enter):
		m.edit((*buffer.Buffer).InsertNewline)
	case key.Matches(msg, km.Undo):
		m.edit(func(b *buffer.Buffer) { b.Undo() })
	case key.Matches(msg, km.Redo):
		m.edit(func(b *buffer.Buffer) { b.Redo() })

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		m.copySelection()
		m.edit((*buffer.Buffer).DeleteSelection)
	case key.Matches(msg, km.Paste):
		m.edit(m.pasteClipboard)

	case msg.Type == tea.KeyTab:
		m.edit(func(b *buffer.Buffer) { b.InsertRune('\t') })
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt:
		m.edit(func(b *buffer.Buffer) { b.InsertText(string(msg.Runes)) })
	}
	return m, nil
}

// edit runs fn unless the editor is read-only.
func (m Model) edit(fn func(*buffer.Buffer)) {
	if !m.cfg.ReadOnly {
		fn(m.buf)
	}
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	r, ok := m.buf.Selection()
	if !ok {
		return
	}
	if s := m.buf.TextIn(r); s != "" {
		_ = m.cfg.Clipboard.WriteText(s)
	}
}

func (m Model) pasteClipboard(b *buffer.Buffer) {
	if m.cfg.Clipboard == nil {
		return
	}
	s, err := m.cfg.Clipboard.ReadText()
	if err != nil || s == "" {
		return
	}
	// Normalize newlines from external sources.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	b.InsertText(s)
}
