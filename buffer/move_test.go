package buffer

import "testing"

func TestBuffer_Move_RuneWrapsLines(t *testing.T) {
	b := New("ab\ncd", Options{})
	b.SetCursor(Pos{Row: 1})

	b.Move(Move{Unit: MoveRune, Dir: DirLeft})
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	b.Move(Move{Unit: MoveRune, Dir: DirRight})
	if got, want := b.Cursor(), (Pos{Row: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_LineClampsColumn(t *testing.T) {
	b := New("long line\nab\nlong line", Options{})
	b.SetCursor(Pos{Col: 8})

	b.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
	b.Move(Move{Unit: MoveLine, Dir: DirEnd})
	b.Move(Move{Unit: MoveRune, Dir: DirDown})
	if got, want := b.Cursor(), (Pos{Row: 2, Col: 2}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Move_Word(t *testing.T) {
	b := New("foo  bar baz", Options{})

	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := b.Cursor().Col, 3; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := b.Cursor().Col, 8; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
	b.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got, want := b.Cursor().Col, 5; got != want {
		t.Fatalf("col=%d, want %d", got, want)
	}
}

func TestBuffer_Move_ExtendKeepsAnchor(t *testing.T) {
	b := New("abcd", Options{})
	b.SetCursor(Pos{Col: 1})

	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	b.Move(Move{Unit: MoveRune, Dir: DirRight, Extend: true})
	raw, ok := b.SelectionRaw()
	if !ok {
		t.Fatalf("expected selection")
	}
	if got, want := raw, (Range{Start: Pos{Col: 1}, End: Pos{Col: 3}}); got != want {
		t.Fatalf("selection=%v, want %v", got, want)
	}

	b.Move(Move{Unit: MoveDoc, Dir: DirHome})
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared by plain move")
	}
	if got, want := b.Cursor(), (Pos{}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_SelectionRawPreservesDirection(t *testing.T) {
	b := New("abcd", Options{})
	b.SetSelection(Range{Start: Pos{Col: 3}, End: Pos{Col: 1}})

	raw, _ := b.SelectionRaw()
	if got, want := raw.Start, (Pos{Col: 3}); got != want {
		t.Fatalf("anchor=%v, want %v", got, want)
	}
	norm, _ := b.Selection()
	if got, want := norm.Start, (Pos{Col: 1}); got != want {
		t.Fatalf("start=%v, want %v", got, want)
	}
}
