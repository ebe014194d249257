package scan

import "strings"

const commentMarker = "%%"

type span struct {
	start, end int
	delim      byte
	width      int
}

type lineScan struct {
	spans    []span
	comments []int
}

func scanLines(doc Document) lineScan {
	var out lineScan
	n := doc.LineCount()
	for i := 0; i < n; i++ {
		norm := NormalizeLine(doc.Line(i))

		if strings.HasPrefix(norm, commentMarker) {
			end, ok := commentEnd(doc, i, norm)
			if !ok {
				continue
			}
			for l := i; l <= end; l++ {
				out.comments = append(out.comments, l)
			}
			i = end
			continue
		}

		delim, width, ok := opens(norm)
		if !ok {
			continue
		}
		end := -1
		for j := i + 1; j < n; j++ {
			if closes(NormalizeLine(doc.Line(j)), delim, width) {
				end = j
				break
			}
		}
		if end < 0 {
			// Unterminated: the fence runs to the end of the document.
			break
		}
		out.spans = append(out.spans, span{start: i, end: end, delim: delim, width: width})
		i = end
	}
	return out
}

// commentEnd returns the last line of the comment block starting at line i.
// A block that is never closed is not a comment.
func commentEnd(doc Document, i int, norm string) (int, bool) {
	if strings.Contains(norm[len(commentMarker):], commentMarker) {
		return i, true
	}
	for j := i + 1; j < doc.LineCount(); j++ {
		if strings.Contains(doc.Line(j), commentMarker) {
			return j, true
		}
	}
	return 0, false
}

// Classify tags the lines of doc that belong to fences or comment blocks, in
// line order. Plain lines are omitted.
func Classify(doc Document) []Boundary {
	s := scanLines(doc)
	out := make([]Boundary, 0, len(s.comments)+len(s.spans)*3)
	ci := 0
	flushComments := func(before int) {
		for ci < len(s.comments) && s.comments[ci] < before {
			out = append(out, Boundary{Line: s.comments[ci], Kind: KindComment})
			ci++
		}
	}
	for _, sp := range s.spans {
		flushComments(sp.start)
		out = append(out, Boundary{Line: sp.start, Kind: KindStart})
		for l := sp.start + 1; l < sp.end; l++ {
			out = append(out, Boundary{Line: l, Kind: KindBody})
		}
		out = append(out, Boundary{Line: sp.end, Kind: KindEnd})
	}
	flushComments(doc.LineCount())
	return out
}

// Lines finds the fences of doc by their raw lines and parses each opening
// line with parse.
func Lines(doc Document, parse ParseFunc) []Region {
	s := scanLines(doc)
	out := make([]Region, 0, len(s.spans))
	for _, sp := range s.spans {
		out = append(out, newRegion(doc, sp, parse))
	}
	return out
}

func newRegion(doc Document, sp span, parse ParseFunc) Region {
	opening := strings.TrimRight(NormalizeLine(doc.Line(sp.start)), " \t\r")
	r := Region{
		StartLine: sp.start,
		BodyFrom:  sp.start + 1,
		BodyTo:    sp.end,
		EndLine:   sp.end,
		Delim:     sp.delim,
		Width:     sp.width,
		Opening:   opening,
	}
	if parse != nil {
		r.Parameters = parse(opening)
	}
	return r
}
