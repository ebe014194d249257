package editor

import (
	"slices"
	"testing"

	"github.com/iw2rmb/codefence/buffer"
)

const wrapDoc = "```go wrap\naaaa bbbb cccc\n```\n" +
	"```go unwrap\naaaa bbbb cccc\n```\n" +
	"```go unwrap:inactive\naaaa bbbb cccc\n```"

func TestRender_WrapModesOfRegions(t *testing.T) {
	m := newTestModel(wrapDoc)
	m = m.SetSize(12, 30)

	got := contentLines(m)
	want := []string{
		"  ▼ go",
		"  ```go wrap",
		"1 aaaa bbbb ",
		"  cccc",
		"  ```",
		"  ▼ go",
		"  ```go unwrap",
		"1 aaaa bbbb ",
		"  ```",
		"  ▼ go",
		"  ```go unwrap:inactive",
		"1 aaaa bbbb ",
		"  ```",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("content:\n got: %q\nwant: %q", got, want)
	}

	// An inactive-unwrapped line wraps while the cursor is on it.
	m.Buffer().SetCursor(buffer.Pos{Row: 7})
	m, _ = m.Update(struct{}{})
	got = contentLines(m)
	if !slices.Equal(got[11:14], []string{"1 aaaa bbbb ", "  cccc", "  ```"}) {
		t.Fatalf("active line rows: %q", got[11:])
	}

	// An unwrapped line scrolls to keep the cursor visible.
	m.Buffer().SetCursor(buffer.Pos{Row: 4, Col: 13})
	m, _ = m.Update(struct{}{})
	got = contentLines(m)
	if got[7] != "1  bbbb cccc" {
		t.Fatalf("unwrapped cursor row=%q, want %q", got[7], "1  bbbb cccc")
	}
	if got[11] != "1 aaaa bbbb " || got[12] != "  ```" {
		t.Fatalf("inactive line did not unwrap again: %q", got[11:])
	}
}

func TestRender_WrapModeAppliesOutsideRegions(t *testing.T) {
	m := New(Config{Text: "abcdefghij", WrapMode: WrapGrapheme, Style: plainStyle()})
	m = m.SetSize(4, 2)

	if got, want := contentLines(m), []string{"abcd", "efgh", "ij"}; !slices.Equal(got, want) {
		t.Fatalf("content: got %q, want %q", got, want)
	}

	m.Buffer().SetCursor(buffer.Pos{Col: 9})
	m, _ = m.Update(struct{}{})
	if got := m.viewport.YOffset; got != 1 {
		t.Fatalf("yoffset with cursor on the third row: got %d, want 1", got)
	}

	p, header := m.screenToDocPos(1, 1)
	if header || p != (buffer.Pos{Col: 9}) {
		t.Fatalf("click on second visible row: got %v header=%v", p, header)
	}
}

func TestWrapCells_WordBreaksAfterSpaces(t *testing.T) {
	cells := layoutCells("ab cd efgh", 4)
	var got []string
	for _, sg := range wrapCells(cells, WrapWord, 6) {
		var s string
		for _, c := range cells[sg.from:sg.to] {
			s += c.Text
		}
		got = append(got, s)
	}
	if want := []string{"ab cd ", "efgh"}; !slices.Equal(got, want) {
		t.Fatalf("rows: got %q, want %q", got, want)
	}
}

func TestClipCells_FollowsColumn(t *testing.T) {
	cells := layoutCells("abcdefghij", 4)
	cases := []struct {
		col      int
		from, to int
	}{
		{-1, 0, 4},
		{2, 0, 4},
		{6, 3, 7},
		{10, 7, 10},
	}
	for _, tc := range cases {
		if got := clipCells(cells, 4, tc.col); got != (segment{tc.from, tc.to}) {
			t.Fatalf("col %d: got %+v, want [%d,%d)", tc.col, got, tc.from, tc.to)
		}
	}
}
