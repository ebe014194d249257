// Package grapheme splits text into grapheme clusters and measures them in
// terminal cells.
package grapheme

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len(text))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// CellWidth is the number of terminal cells cluster occupies when drawn at
// cell x. A tab advances to the next multiple of tabWidth.
func CellWidth(cluster string, x, tabWidth int) int {
	if cluster == "\t" {
		if tabWidth <= 0 {
			tabWidth = 4
		}
		return tabWidth - x%tabWidth
	}
	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}

// Width is the cell width of a single-line label; tabs count as one cell.
func Width(s string) int {
	w := 0
	for _, c := range Split(s) {
		w += CellWidth(c, w, 1)
	}
	return w
}

// Truncate cuts s to at most width cells, ending with an ellipsis when
// anything was cut. A non-positive width leaves s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || Width(s) <= width {
		return s
	}
	var sb strings.Builder
	w := 0
	for _, c := range Split(s) {
		cw := CellWidth(c, w, 1)
		if w+cw > width-1 {
			break
		}
		sb.WriteString(c)
		w += cw
	}
	sb.WriteString("…")
	return sb.String()
}
