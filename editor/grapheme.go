package editor

import (
	"strings"
	"unicode/utf8"

	graphemeutil "github.com/iw2rmb/codefence/internal/grapheme"
)

// cell is one grapheme cluster of a line laid out on screen.
type cell struct {
	Text string
	// Col is the rune column of the cluster's first rune; Runes its length.
	Col   int
	Runes int
	// X and Width are in terminal cells.
	X     int
	Width int
}

func (c cell) end() int { return c.Col + c.Runes }

// displayText replaces a tab with its spaces.
func (c cell) displayText() string {
	if c.Text == "\t" {
		return strings.Repeat(" ", c.Width)
	}
	return c.Text
}

// layoutCells splits text into clusters and assigns their screen cells.
func layoutCells(text string, tabWidth int) []cell {
	clusters := graphemeutil.Split(text)
	out := make([]cell, 0, len(clusters))
	col, x := 0, 0
	for _, c := range clusters {
		w := graphemeutil.CellWidth(c, x, tabWidth)
		n := utf8.RuneCountInString(c)
		out = append(out, cell{Text: c, Col: col, Runes: n, X: x, Width: w})
		col += n
		x += w
	}
	return out
}

// colAtX maps a screen cell to the rune column of the cluster under it, or
// the line end past the last cluster.
func colAtX(cells []cell, x int) int {
	for _, c := range cells {
		if x < c.X+c.Width {
			return c.Col
		}
	}
	if len(cells) == 0 {
		return 0
	}
	return cells[len(cells)-1].end()
}
