package engine

import (
	"sort"
	"strconv"

	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/codefence/rangeset"
	"github.com/iw2rmb/codefence/scan"
)

// Kind is the kind of a decoration. Decorations at the same offset are
// ordered by kind.
type Kind uint8

const (
	KindHeader Kind = iota
	KindLineClass
	KindLineNumber
	KindReplaceFold
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header-widget"
	case KindLineClass:
		return "line-class"
	case KindLineNumber:
		return "line-number-widget"
	case KindReplaceFold:
		return "replace-fold"
	default:
		return "unknown"
	}
}

// Decoration is one rendering instruction for the host.
type Decoration struct {
	From, To int
	Kind     Kind
	Payload  Payload
}

// Payload is one of Header, LineClass, LineNumber or Placeholder.
type Payload interface {
	payload()
}

// Header is the widget drawn on a fence's opening line.
type Header struct {
	Line      int
	Language  string
	Title     string
	Reference string
	// Folded is true while the region is collapsed.
	Folded bool
}

// LineClass styles one body line. Class is fence.ClassPlain,
// fence.ClassHighlighted or an alternative highlight class.
type LineClass struct {
	Line  int
	Class string
	// Unwrap keeps the line on one row. With ActiveWrap it wraps again
	// while the cursor is on it.
	Unwrap     bool
	ActiveWrap bool
}

// LineNumber is a gutter widget. Width is shared by every number of the
// region.
type LineNumber struct {
	Line   int
	Number int
	Width  int
}

// Placeholder replaces a folded range.
type Placeholder struct {
	Line     int
	Text     string
	Language string
}

func (Header) payload()      {}
func (LineClass) payload()   {}
func (LineNumber) payload()  {}
func (Placeholder) payload() {}

// LineDecoration is the value stored for one decorated line.
type LineDecoration struct {
	Header *Header
	Class  *LineClass
	Number *LineNumber
}

type lineStore = rangeset.Set[LineDecoration]

// rebuild derives the line decorations of the visible regions of s.
func rebuild(s State) lineStore {
	var ranges []rangeset.Range[LineDecoration]
	line := func(l int, d LineDecoration) {
		ranges = append(ranges, rangeset.Range[LineDecoration]{
			From:  s.LineStart(l),
			To:    s.LineEnd(l) + 1,
			Value: d,
		})
	}

	theme := s.Settings.Theme
	for _, r := range s.Regions {
		p := r.Parameters
		if !s.Viewport.showsRegion(r) || p.Ignore || s.Excluded(p.Language) {
			continue
		}
		line(r.StartLine, LineDecoration{Header: &Header{
			Line:      r.StartLine,
			Language:  p.Language,
			Title:     p.Title,
			Reference: p.Reference,
		}})

		unwrap, activeWrap := p.Unwrap(theme)
		numbers := p.ShowLineNumbers(theme)
		width := 0
		if numbers {
			width = gutterWidth(r)
		}
		for l := r.BodyFrom; l < r.BodyTo; l++ {
			display := p.DisplayLine(l - r.BodyFrom)
			d := LineDecoration{Class: &LineClass{
				Line:       l,
				Class:      p.Highlights.Class(display, s.Doc.Line(l), theme.AlternativeHighlights),
				Unwrap:     unwrap,
				ActiveWrap: activeWrap,
			}}
			if numbers {
				d.Number = &LineNumber{Line: l, Number: display, Width: width}
			}
			line(l, d)
		}
	}
	return rangeset.Of(ranges...)
}

// gutterWidth is the widest rendered line number of r.
func gutterWidth(r scan.Region) int {
	w := 0
	for i := 0; i < r.BodyTo-r.BodyFrom; i++ {
		w = max(w, runewidth.StringWidth(strconv.Itoa(r.Parameters.DisplayLine(i))))
	}
	return w
}

// flatten lists the decorations of lines and the folds of s.
func flatten(s State, lines lineStore) []Decoration {
	var out []Decoration
	for _, r := range lines.Ranges() {
		at := r.From
		d := r.Value
		if d.Header != nil {
			h := *d.Header
			if region, ok := s.RegionAt(at); ok {
				from, to := s.FoldRange(region)
				h.Folded = len(s.Folds.Intersecting(from+1, to-1)) > 0
			}
			out = append(out, Decoration{From: at, To: at, Kind: KindHeader, Payload: h})
		}
		if d.Class != nil {
			out = append(out, Decoration{From: at, To: at, Kind: KindLineClass, Payload: *d.Class})
		}
		if d.Number != nil {
			out = append(out, Decoration{From: at, To: at, Kind: KindLineNumber, Payload: *d.Number})
		}
	}

	for _, f := range s.Folds.Ranges() {
		ph := Placeholder{Line: s.LineAt(f.From), Language: f.Value.Language}
		if region, ok := s.RegionAt(f.From); ok {
			ph.Text = region.Parameters.Placeholder(s.Settings.Theme)
		}
		out = append(out, Decoration{From: f.From, To: f.To, Kind: KindReplaceFold, Payload: ph})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
