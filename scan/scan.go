// Package scan finds fenced code regions in a document.
//
// Two scanners are provided. Lines works on raw lines and is what the engine
// uses by default; Markdown asks goldmark for the document structure and pairs
// the result with the same closing rule. Both drop unterminated fences.
package scan

import (
	"strings"

	"github.com/iw2rmb/codefence/fence"
)

// Document is the read-only line view a scanner walks.
type Document interface {
	LineCount() int
	Line(i int) string
}

// TextDocument is a Document backed by a slice of lines.
type TextDocument []string

// NewTextDocument splits text on '\n'.
func NewTextDocument(text string) TextDocument {
	return TextDocument(strings.Split(text, "\n"))
}

func (d TextDocument) LineCount() int { return len(d) }

func (d TextDocument) Line(i int) string {
	if i < 0 || i >= len(d) {
		return ""
	}
	return d[i]
}

// Kind classifies a line that belongs to a fence or a comment block.
type Kind uint8

const (
	KindStart Kind = iota + 1
	KindBody
	KindEnd
	KindComment
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindBody:
		return "body"
	case KindEnd:
		return "end"
	case KindComment:
		return "comment"
	default:
		return "unknown"
	}
}

// Boundary tags one line.
type Boundary struct {
	Line int
	Kind Kind
}

// Region is one terminated fence. Body lines are [BodyFrom, BodyTo); BodyTo
// equals EndLine.
type Region struct {
	StartLine int
	BodyFrom  int
	BodyTo    int
	EndLine   int

	Delim byte
	Width int

	// Opening is the opening line with indentation and quote markers removed.
	Opening    string
	Parameters fence.Parameters
}

// HasBody reports whether the region has at least one body line.
func (r Region) HasBody() bool { return r.BodyTo > r.BodyFrom }

// ContainsLine reports whether line lies between the delimiters, inclusive.
func (r Region) ContainsLine(line int) bool {
	return line >= r.StartLine && line <= r.EndLine
}

// ParseFunc turns a normalized opening line into parameters.
type ParseFunc func(opening string) fence.Parameters

// NormalizeLine strips indentation and blockquote markers.
func NormalizeLine(line string) string {
	for {
		line = strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(line, ">") {
			return line
		}
		line = line[1:]
	}
}

// opens reports whether norm opens a fence: a run of fence characters that is
// not followed by another run of the same character at least as long.
func opens(norm string) (delim byte, width int, ok bool) {
	delim, width, ok = fence.Delimiter(norm)
	if !ok {
		return 0, 0, false
	}
	if longestRun(norm[width:], delim) >= width {
		return 0, 0, false
	}
	return delim, width, true
}

// closes reports whether norm closes a fence opened by width delim characters.
func closes(norm string, delim byte, width int) bool {
	n := 0
	for n < len(norm) && norm[n] == delim {
		n++
	}
	return n >= width && strings.TrimSpace(norm[n:]) == ""
}

func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] != c {
			cur = 0
			continue
		}
		cur++
		best = max(best, cur)
	}
	return best
}
