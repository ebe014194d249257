package editor

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/codefence/buffer"
)

type memClipboard struct {
	s string
}

func (c *memClipboard) ReadText() (string, error) { return c.s, nil }
func (c *memClipboard) WriteText(s string) error  { c.s = s; return nil }

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func TestUpdate_TypingMovementAndDelete(t *testing.T) {
	m := New(Config{Text: "ab"})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	if got := m.buf.Text(); got != "aXb" {
		t.Fatalf("text after insert: got %q, want %q", got, "aXb")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 0, Col: 2}) {
		t.Fatalf("cursor after insert: got %v, want %v", got, buffer.Pos{Row: 0, Col: 2})
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after backspace: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("cursor after backspace: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}
}

func TestUpdate_ReadOnly_IgnoresMutations(t *testing.T) {
	m := New(Config{Text: "ab", ReadOnly: true})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("X")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text in read-only: got %q, want %q", got, "ab")
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 0, Col: 1}) {
		t.Fatalf("cursor in read-only: got %v, want %v", got, buffer.Pos{Row: 0, Col: 1})
	}
}

func TestUpdate_UndoRedo(t *testing.T) {
	m := New(Config{Text: ""})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("b")})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := m.buf.Text(); got != "a" {
		t.Fatalf("text after undo: got %q, want %q", got, "a")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := m.buf.Text(); got != "ab" {
		t.Fatalf("text after redo: got %q, want %q", got, "ab")
	}
}

func TestUpdate_CopyCutPaste(t *testing.T) {
	cb := &memClipboard{}
	m := New(Config{Text: "hello", Clipboard: cb})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftRight})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if got := cb.s; got != "he" {
		t.Fatalf("clipboard after copy: got %q, want %q", got, "he")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlX})
	if got := m.buf.Text(); got != "llo" {
		t.Fatalf("text after cut: got %q, want %q", got, "llo")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := m.buf.Text(); got != "hello" {
		t.Fatalf("text after paste: got %q, want %q", got, "hello")
	}
}

func TestUpdate_ViewportFollowsCursor(t *testing.T) {
	m := New(Config{Text: "0\n1\n2\n3\n4\n5\n6\n7\n8\n9"})
	m = m.SetSize(10, 3)

	for i := 0; i < 3; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset at row 3: got %d, want %d", got, 1)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := m.viewport.YOffset; got != 0 {
		t.Fatalf("yoffset back at row 0: got %d, want %d", got, 0)
	}
}

const twoRegions = "top\n```go fold\nx\n```\n```py\ny\n```"

func TestUpdate_BulkFoldKeys(t *testing.T) {
	m := newTestModel(twoRegions)
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("initial folds=%v, want [1]", got)
	}

	m, _ = m.Update(altKey(']'))
	if got := m.frame.foldedLines(); len(got) != 0 {
		t.Fatalf("folds after unfold all=%v, want none", got)
	}

	m, _ = m.Update(altKey('['))
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1, 4}) {
		t.Fatalf("folds after fold all=%v, want [1 4]", got)
	}

	m, _ = m.Update(altKey('r'))
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("folds after reset=%v, want [1]", got)
	}
}

func TestUpdate_ToggleFoldKeyParksCursor(t *testing.T) {
	m := newTestModel(twoRegions)
	m.Buffer().SetCursor(buffer.Pos{Row: 5, Col: 1})

	m, _ = m.Update(altKey('f'))
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1, 4}) {
		t.Fatalf("folds=%v, want [1 4]", got)
	}
	if got := m.buf.Cursor(); got != (buffer.Pos{Row: 4}) {
		t.Fatalf("cursor=%v, want start of the opening line", got)
	}

	m, _ = m.Update(altKey('f'))
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("folds after second toggle=%v, want [1]", got)
	}

	m.Buffer().SetCursor(buffer.Pos{Row: 0})
	m, _ = m.Update(altKey('f'))
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("toggle outside a region changed folds: %v", got)
	}
}
