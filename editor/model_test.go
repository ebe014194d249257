package editor

import (
	"io"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/codefence/buffer"
	"github.com/iw2rmb/codefence/engine"
	"github.com/iw2rmb/codefence/fence"
)

const foldedDoc = "intro\n```go fold\na := 1\nb := 2\n```\ntail"

var testSettings = engine.Settings{
	Theme: fence.Theme{FoldPlaceholder: "Folded Code", LineNumbers: true},
}

func plainStyle() Style {
	p := lipgloss.NewStyle()
	return Style{
		Gutter: p, LineNum: p, LineNumActive: p,
		Text: p, Selection: p, Cursor: p,
		Header: p, Placeholder: p,
		Classes: map[string]lipgloss.Style{},
	}
}

func newTestModel(text string) Model {
	return New(Config{Text: text, Settings: testSettings, Style: plainStyle()})
}

func contentLines(m Model) []string {
	return strings.Split(m.renderContent(), "\n")
}

func TestRender_FoldedRegionShowsHeaderAndPlaceholder(t *testing.T) {
	m := newTestModel(foldedDoc)

	got := contentLines(m)
	want := []string{
		"  intro",
		"  ▶ go",
		"  ```go fold  Folded Code ",
		"  tail",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("content:\n got: %q\nwant: %q", got, want)
	}
	if folded := m.frame.foldedLines(); !slices.Equal(folded, []int{1}) {
		t.Fatalf("folded=%v, want [1]", folded)
	}
}

func TestRender_LineNumbersUseRegionOffset(t *testing.T) {
	m := newTestModel("```go ln:10\nx\ny\n```")

	got := contentLines(m)
	want := []string{
		"   ▼ go",
		"   ```go ln:10",
		"10 x",
		"11 y",
		"   ```",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("content:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_HeaderPrefersTitleAndReference(t *testing.T) {
	m := newTestModel("```go title:\"[Main](src/main.go)\"\nx\n```")

	if got := contentLines(m)[0]; got != "  ▼ Main (src/main.go)" {
		t.Fatalf("header=%q", got)
	}
}

func TestRender_CursorProducesPaddingWhenFocused(t *testing.T) {
	st := plainStyle()
	st.Cursor = lipgloss.NewStyle().PaddingLeft(1).PaddingRight(1)
	m := New(Config{Text: "ab", Style: st})

	if got, want := m.renderContent(), " a b"; got != want {
		t.Fatalf("unexpected cursor rendering:\n got: %q\nwant: %q", got, want)
	}

	m = m.Blur()
	if got, want := m.renderContent(), "ab"; got != want {
		t.Fatalf("blurred rendering:\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_LineClassBackground(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)

	st := plainStyle()
	st.Classes[fence.ClassHighlighted] = r.NewStyle().Background(lipgloss.Color("#112233"))
	m := New(Config{Text: "```go hl:1\nx\ny\n```", Settings: testSettings, Style: st})

	lines := contentLines(m)
	if !strings.Contains(lines[2], "48;2;17;34;51") {
		t.Fatalf("highlighted line has no background: %q", lines[2])
	}
	if strings.Contains(lines[3], "48;2;17;34;51") {
		t.Fatalf("plain line has a background: %q", lines[3])
	}
}

func TestModel_CursorInsideFoldRevealsIt(t *testing.T) {
	m := newTestModel(foldedDoc)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if got := contentLines(m); len(got) != 4 {
		t.Fatalf("fold opened before the cursor reached it: %q", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	got := contentLines(m)
	if len(got) != 7 || got[3] != "1 a := 1" {
		t.Fatalf("fold not revealed:\n%q", got)
	}
	if m.Engine().State().Hidden.Len() != 1 {
		t.Fatalf("hidden=%d, want 1", m.Engine().State().Hidden.Len())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if got := contentLines(m); len(got) != 4 {
		t.Fatalf("fold not restored after leaving:\n%q", got)
	}
}

func TestModel_HeaderClickTogglesFold(t *testing.T) {
	var events []ChangeEvent
	m := New(Config{
		Text:     foldedDoc,
		Settings: testSettings,
		Style:    plainStyle(),
		OnChange: func(ev ChangeEvent) { events = append(events, ev) },
	})
	m = m.SetSize(40, 10)

	click := tea.MouseMsg{X: 0, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m, _ = m.Update(click)
	if got := m.frame.foldedLines(); len(got) != 0 {
		t.Fatalf("folded=%v after click, want none", got)
	}
	if got := m.Buffer().Cursor(); got != (buffer.Pos{Row: 1}) {
		t.Fatalf("cursor=%v, want opening line", got)
	}
	if !strings.Contains(m.View(), "a := 1") {
		t.Fatalf("body not shown:\n%s", m.View())
	}

	m, _ = m.Update(click)
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("folded=%v after second click, want [1]", got)
	}

	if len(events) != 2 {
		t.Fatalf("events=%d, want 2", len(events))
	}
	if len(events[0].Folded) != 0 || !slices.Equal(events[1].Folded, []int{1}) {
		t.Fatalf("event folds: %v, %v", events[0].Folded, events[1].Folded)
	}
}

func TestModel_EditsShiftFolds(t *testing.T) {
	m := newTestModel(foldedDoc)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("xx")})
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("folded=%v, want [1]", got)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{2}) {
		t.Fatalf("folded=%v after newline, want [2]", got)
	}
	if got := contentLines(m)[2]; got != "  ▶ go" {
		t.Fatalf("header row=%q", got)
	}
}

func TestModel_SettingsMsgExcludesLanguage(t *testing.T) {
	m := newTestModel(foldedDoc)

	excluded := testSettings
	excluded.ExcludedLanguages = "go"
	m, _ = m.Update(SettingsMsg{Settings: excluded})
	want := []string{"intro", "```go fold", "a := 1", "b := 2", "```", "tail"}
	if got := contentLines(m); !slices.Equal(got, want) {
		t.Fatalf("content:\n got: %q\nwant: %q", got, want)
	}

	m, _ = m.Update(SettingsMsg{Settings: testSettings})
	if got := m.frame.foldedLines(); !slices.Equal(got, []int{1}) {
		t.Fatalf("folded=%v after re-including, want [1]", got)
	}
}

func TestModel_ScrollingMovesEngineViewport(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 80; i++ {
		sb.WriteString("l\n")
	}
	sb.WriteString("```go fold\nx\n```\n")
	for i := 0; i < 20; i++ {
		sb.WriteString("tail\n")
	}

	m := newTestModel(sb.String())
	m = m.SetSize(20, 10)
	if vp := m.Engine().State().Viewport; vp.From != 0 || vp.To != 20 {
		t.Fatalf("viewport=%+v, want [0,20)", vp)
	}
	if _, ok := m.frame.headers[80]; ok {
		t.Fatalf("header of an off-screen region was decorated")
	}

	m.Buffer().SetCursor(buffer.Pos{Row: 79})
	m, _ = m.Update(struct{}{})
	if vp := m.Engine().State().Viewport; vp.From != 60 || vp.To != 90 {
		t.Fatalf("viewport=%+v, want [60,90)", vp)
	}
	if _, ok := m.frame.headers[80]; !ok {
		t.Fatalf("header of the visible region is missing")
	}
}
