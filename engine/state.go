package engine

import (
	"sort"

	"github.com/iw2rmb/codefence/fence"
	"github.com/iw2rmb/codefence/rangeset"
	"github.com/iw2rmb/codefence/scan"
)

// Settings is the configuration the engine reacts to.
type Settings struct {
	// ExcludedLanguages is a comma-separated list of language patterns that
	// get no decoration; '*' matches one or more characters.
	ExcludedLanguages string
	// ProcessedCodeblocksWhitelist names languages that keep their
	// decorations even though a codeblock processor is registered for them.
	ProcessedCodeblocksWhitelist string
	Theme                        fence.Theme
}

// FoldInfo is the value stored with every fold interval.
type FoldInfo struct {
	Language string
}

// Selection is one selection range as document offsets. Anchor == Head is a
// plain cursor.
type Selection struct {
	Anchor int
	Head   int
}

// Cursor returns an empty selection at pos.
func Cursor(pos int) Selection { return Selection{Anchor: pos, Head: pos} }

// touches reports whether the selection's anchor or head lies inside the
// closed interval [from, to].
func (s Selection) touches(from, to int) bool {
	return (from <= s.Head && s.Head <= to) || (from <= s.Anchor && s.Anchor <= to)
}

// Viewport is the visible window as lines [From, To). The zero value shows
// the whole document.
type Viewport struct {
	From int
	To   int
}

func (v Viewport) all() bool { return v.From == 0 && v.To == 0 }

func (v Viewport) showsRegion(r scan.Region) bool {
	return v.all() || (r.StartLine < v.To && r.EndLine >= v.From)
}

// State is an immutable snapshot of the engine.
type State struct {
	Doc       scan.Document
	Settings  Settings
	Selection []Selection
	Viewport  Viewport

	// Folds holds collapsed regions. Hidden holds folds that are
	// temporarily shown because the selection is inside them; an interval is
	// never in both.
	Folds  rangeset.Set[FoldInfo]
	Hidden rangeset.Set[FoldInfo]

	// Regions is the result of the latest scan of Doc.
	Regions []scan.Region

	processors []string
	lineStarts []int
}

// LineStart returns the offset of line's first character.
func (s State) LineStart(line int) int {
	switch {
	case line <= 0 || len(s.lineStarts) == 0:
		return 0
	case line >= len(s.lineStarts):
		return s.Len()
	}
	return s.lineStarts[line]
}

// LineEnd returns the offset just past line's last character.
func (s State) LineEnd(line int) int {
	if line < 0 {
		return 0
	}
	if line+1 >= len(s.lineStarts) {
		return s.Len()
	}
	return s.lineStarts[line+1] - 1
}

// LineAt returns the line containing offset.
func (s State) LineAt(offset int) int {
	if len(s.lineStarts) == 0 {
		return 0
	}
	return sort.Search(len(s.lineStarts), func(i int) bool { return s.lineStarts[i] > offset }) - 1
}

// Len returns the document length in characters.
func (s State) Len() int {
	if s.Doc == nil || len(s.lineStarts) == 0 {
		return 0
	}
	last := len(s.lineStarts) - 1
	return s.lineStarts[last] + runeLen(s.Doc.Line(last))
}

// FoldRange returns the interval a fold of r covers: from the end of the
// opening line to the end of the closing line.
func (s State) FoldRange(r scan.Region) (from, to int) {
	return s.LineEnd(r.StartLine), s.LineEnd(r.EndLine)
}

// Excluded reports whether language gets no folds or decorations, either
// because it matches ExcludedLanguages or because a codeblock processor
// renders it.
func (s State) Excluded(language string) bool {
	if fence.IsLanguageMatched(language, s.Settings.ExcludedLanguages) {
		return true
	}
	return s.special(language)
}

func (s State) special(language string) bool {
	if language == "" || fence.IsLanguageMatched(language, s.Settings.ProcessedCodeblocksWhitelist) {
		return false
	}
	for _, p := range s.processors {
		if p == language {
			return true
		}
	}
	return false
}

// foldable reports whether r takes part in folding.
func (s State) foldable(r scan.Region) bool {
	return r.HasBody() && !r.Parameters.Ignore && !s.Excluded(r.Parameters.Language)
}

// IsFolded reports whether the fold for r is in either store.
func (s State) IsFolded(r scan.Region) bool {
	from, to := s.FoldRange(r)
	return len(s.Folds.Intersecting(from+1, to-1)) > 0 || len(s.Hidden.Intersecting(from+1, to-1)) > 0
}

// selectionTouches reports whether any selection range touches [from, to].
func (s State) selectionTouches(from, to int) bool {
	for _, sel := range s.Selection {
		if sel.touches(from, to) {
			return true
		}
	}
	return false
}

// RegionAt returns the region whose lines contain offset.
func (s State) RegionAt(offset int) (scan.Region, bool) {
	line := s.LineAt(offset)
	for _, r := range s.Regions {
		if r.ContainsLine(line) {
			return r, true
		}
	}
	return scan.Region{}, false
}

func lineStarts(doc scan.Document) []int {
	if doc == nil {
		return nil
	}
	n := doc.LineCount()
	out := make([]int, n)
	off := 0
	for i := 0; i < n; i++ {
		out[i] = off
		off += runeLen(doc.Line(i)) + 1
	}
	return out
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
