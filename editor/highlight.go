package editor

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// HighlightSpan styles part of one line.
type HighlightSpan struct {
	// StartCol and EndCol are rune indices in the line text, half-open
	// [StartCol, EndCol).
	StartCol int
	EndCol   int
	Style    lipgloss.Style
}

// LineContext is what a Highlighter sees of one body line.
type LineContext struct {
	Row  int
	Text string
	// Language of the code region the line belongs to.
	Language string
	// Class is the line class the engine assigned, if any.
	Class string
}

// Highlighter tokenizes one body line of a code region.
type Highlighter interface {
	HighlightLine(ctx LineContext) ([]HighlightSpan, error)
}

// ChromaHighlighter colors code with chroma lexers, looked up by the region
// language. Lines of unknown languages are left plain.
type ChromaHighlighter struct {
	style *chroma.Style

	mu     sync.Mutex
	lexers map[string]chroma.Lexer
}

// NewChromaHighlighter uses the named chroma style, falling back to chroma's
// default style.
func NewChromaHighlighter(styleName string) *ChromaHighlighter {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	return &ChromaHighlighter{style: style, lexers: map[string]chroma.Lexer{}}
}

func (h *ChromaHighlighter) lexer(language string) chroma.Lexer {
	h.mu.Lock()
	defer h.mu.Unlock()
	if l, ok := h.lexers[language]; ok {
		return l
	}
	l := lexers.Get(language)
	if l != nil {
		l = chroma.Coalesce(l)
	}
	h.lexers[language] = l
	return l
}

func (h *ChromaHighlighter) HighlightLine(ctx LineContext) ([]HighlightSpan, error) {
	if ctx.Language == "" || ctx.Text == "" {
		return nil, nil
	}
	l := h.lexer(ctx.Language)
	if l == nil {
		return nil, nil
	}
	it, err := l.Tokenise(nil, ctx.Text)
	if err != nil {
		return nil, err
	}

	var out []HighlightSpan
	col := 0
	for tok := it(); tok != chroma.EOF; tok = it() {
		value := strings.TrimRight(tok.Value, "\n")
		n := utf8.RuneCountInString(value)
		if n == 0 {
			continue
		}
		if st, ok := h.tokenStyle(tok.Type); ok {
			out = append(out, HighlightSpan{StartCol: col, EndCol: col + n, Style: st})
		}
		col += n
	}
	return out, nil
}

// tokenStyle keeps foreground and font attributes only; backgrounds come from
// line classes.
func (h *ChromaHighlighter) tokenStyle(t chroma.TokenType) (lipgloss.Style, bool) {
	entry := h.style.Get(t)
	st := lipgloss.NewStyle()
	set := false
	if entry.Colour.IsSet() {
		st = st.Foreground(lipgloss.Color(entry.Colour.String()))
		set = true
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		set = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		set = true
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
		set = true
	}
	return st, set
}

func normalizeHighlightSpans(spans []HighlightSpan, lineLen int) []HighlightSpan {
	if len(spans) == 0 {
		return nil
	}
	lineLen = max(lineLen, 0)

	out := make([]HighlightSpan, 0, len(spans))
	for _, sp := range spans {
		start := clampInt(sp.StartCol, 0, lineLen)
		end := clampInt(sp.EndCol, 0, lineLen)
		if end < start {
			start, end = end, start
		}
		if start == end {
			continue
		}
		out = append(out, HighlightSpan{StartCol: start, EndCol: end, Style: sp.Style})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartCol != out[j].StartCol {
			return out[i].StartCol < out[j].StartCol
		}
		return out[i].EndCol < out[j].EndCol
	})

	// Overlapping spans are dropped.
	merged := make([]HighlightSpan, 0, len(out))
	for _, sp := range out {
		if len(merged) > 0 && sp.StartCol < merged[len(merged)-1].EndCol {
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
