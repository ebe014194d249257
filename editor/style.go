package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/codefence/fence"
)

// Style controls the editor's rendering.
type Style struct {
	Gutter        lipgloss.Style
	LineNum       lipgloss.Style
	LineNumActive lipgloss.Style

	Text      lipgloss.Style
	Selection lipgloss.Style
	Cursor    lipgloss.Style

	Header      lipgloss.Style
	Placeholder lipgloss.Style

	// Classes styles body lines by line class ("highlighted",
	// "highlighted-<name>"). A Style with nil Classes is replaced by
	// DefaultStyle.
	Classes map[string]lipgloss.Style
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Gutter:        gutter,
		LineNum:       gutter,
		LineNumActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Text:          lipgloss.NewStyle(),
		Selection:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:        lipgloss.NewStyle().Reverse(true),
		Header:        lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true),
		Placeholder:   lipgloss.NewStyle().Foreground(lipgloss.Color("246")).Italic(true),
		Classes: map[string]lipgloss.Style{
			fence.ClassHighlighted: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		},
	}
}

// StyleFromColors derives a Style from a color table keyed by "header",
// "gutter", "placeholder", "placeholder-background" and line classes.
// Empty colors keep the default.
func StyleFromColors(colors map[string]string) Style {
	st := DefaultStyle()
	for name, c := range colors {
		if c == "" {
			continue
		}
		color := lipgloss.Color(c)
		switch name {
		case "header":
			st.Header = st.Header.Foreground(color)
		case "gutter":
			st.Gutter = st.Gutter.Foreground(color)
			st.LineNum = st.LineNum.Foreground(color)
		case "placeholder":
			st.Placeholder = st.Placeholder.Foreground(color)
		case "placeholder-background":
			st.Placeholder = st.Placeholder.Background(color)
		default:
			if name == fence.ClassHighlighted || strings.HasPrefix(name, fence.ClassHighlighted+"-") {
				st.Classes[name] = lipgloss.NewStyle().Background(color)
			}
		}
	}
	return st
}

func (s Style) isZero() bool { return s.Classes == nil }

// lineStyle is the base style of a body line with class.
func (s Style) lineStyle(class string) lipgloss.Style {
	if class == fence.ClassPlain {
		return s.Text
	}
	if cs, ok := s.Classes[class]; ok {
		return cs.Inherit(s.Text)
	}
	return s.Text
}
