package buffer

import "testing"

func TestBuffer_InsertText_MultiLine(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	v := b.Version()

	b.InsertText("X\nY")
	if got, want := b.Text(), "aX\nYb"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
	if got, want := b.LineCount(), 2; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
}

func TestBuffer_InsertText_ReplacesSelection(t *testing.T) {
	b := New("hello", Options{})
	b.SetSelection(Range{Start: Pos{Col: 1}, End: Pos{Col: 4}}) // "ell"

	b.InsertText("i")
	if got, want := b.Text(), "hio"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}

func TestBuffer_InsertRune_Unicode(t *testing.T) {
	b := New("", Options{})
	b.InsertRune('π')
	b.InsertRune('テ')

	if got, want := b.Text(), "πテ"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	if got, want := b.Len(), 2; got != want {
		t.Fatalf("len=%d, want %d", got, want)
	}
}

func TestBuffer_DeleteBackward_JoinsLinesAtSOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Row: 1, Col: 0})

	b.DeleteBackward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_DeleteForward_JoinsLinesAtEOL(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Col: 2})

	b.DeleteForward()
	if got, want := b.Text(), "abcd"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_DeleteAtBounds_NoOp(t *testing.T) {
	b := New("ab", Options{})
	v := b.Version()

	b.DeleteBackward()
	b.SetCursor(Pos{Col: 2})
	v2 := b.Version()
	b.DeleteForward()

	if got, want := b.Text(), "ab"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if v2 != v+1 || b.Version() != v2 {
		t.Fatalf("versions=%d,%d,%d: deletes at bounds must not bump", v, v2, b.Version())
	}
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change")
	}
}

func TestBuffer_DeleteSelection_MultiLine(t *testing.T) {
	b := New("one\ntwo\nthree", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 2, Col: 2}})

	b.DeleteSelection()
	if got, want := b.Text(), "oree"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_LineAccess(t *testing.T) {
	b := New("a\n\nccc", Options{})

	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	for i, want := range []string{"a", "", "ccc", ""} {
		if got := b.Line(i); got != want {
			t.Fatalf("line %d=%q, want %q", i, got, want)
		}
	}
	if got := b.Line(-1); got != "" {
		t.Fatalf("line -1=%q, want empty", got)
	}
}

func TestBuffer_TextIn(t *testing.T) {
	b := New("héllo\nwörld", Options{})

	cases := []struct {
		r    Range
		want string
	}{
		{Range{Start: Pos{0, 1}, End: Pos{0, 4}}, "éll"},
		{Range{Start: Pos{1, 2}, End: Pos{0, 3}}, "lo\nwö"},
		{Range{Start: Pos{0, 5}, End: Pos{9, 9}}, "\nwörld"},
		{Range{Start: Pos{1, 1}, End: Pos{1, 1}}, ""},
	}
	for _, tc := range cases {
		if got := b.TextIn(tc.r); got != tc.want {
			t.Fatalf("TextIn(%v)=%q, want %q", tc.r, got, tc.want)
		}
	}
}
