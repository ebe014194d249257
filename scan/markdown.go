package scan

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown finds the fences of doc from goldmark's block structure. Fences
// goldmark does not see (inside HTML blocks, say) are skipped, and so are
// fences in comment blocks.
func Markdown(doc Document, parse ParseFunc) []Region {
	n := doc.LineCount()
	starts := make([]int, n)
	var sb strings.Builder
	for i := 0; i < n; i++ {
		starts[i] = sb.Len()
		sb.WriteString(doc.Line(i))
		if i < n-1 {
			sb.WriteByte('\n')
		}
	}
	source := []byte(sb.String())
	lineOf := func(offset int) int {
		return sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	}

	comments := make(map[int]bool)
	for _, c := range scanLines(doc).comments {
		comments[c] = true
	}

	root := goldmark.New().Parser().Parse(text.NewReader(source))

	var out []Region
	next := 0
	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		start := -1
		lines := fcb.Lines()
		switch {
		case fcb.Info != nil:
			start = lineOf(fcb.Info.Segment.Start)
		case lines.Len() > 0:
			start = lineOf(lines.At(0).Start) - 1
		default:
			start = findOpening(doc, next)
		}
		if start < 0 || start >= n {
			return ast.WalkSkipChildren, nil
		}
		delim, width, ok := opens(NormalizeLine(doc.Line(start)))
		if !ok || comments[start] {
			return ast.WalkSkipChildren, nil
		}

		end := start + 1
		if lines.Len() > 0 {
			end = lineOf(lines.At(lines.Len()-1).Start) + 1
		}
		if end >= n || !closes(NormalizeLine(doc.Line(end)), delim, width) {
			return ast.WalkSkipChildren, nil
		}

		out = append(out, newRegion(doc, span{start: start, end: end, delim: delim, width: width}, parse))
		next = end + 1
		return ast.WalkSkipChildren, nil
	})
	return out
}

// findOpening returns the first line at or after from that opens a fence.
func findOpening(doc Document, from int) int {
	for i := from; i < doc.LineCount(); i++ {
		if _, _, ok := opens(NormalizeLine(doc.Line(i))); ok {
			return i
		}
	}
	return -1
}
