// Package fence parses the opening line of a fenced code region into
// Parameters and evaluates the highlight rules those parameters carry.
//
// Parsing never fails: malformed parameter text degrades field by field to
// the defaults returned by DefaultParameters.
package fence

import (
	"regexp"
	"strings"
)

// Parameters is everything the opening line of a fence says about the region.
type Parameters struct {
	// Language is the lower-cased token right after the delimiter run.
	Language string

	Title string
	// Reference is a file path or URL the title links to; empty when none.
	Reference string

	Fold        Fold
	LineNumbers LineNumbers
	LineUnwrap  LineUnwrap
	Highlights  Highlights

	// Ignore disables every decoration for the region.
	Ignore bool
}

// Fold controls collapse-by-default.
type Fold struct {
	Enabled bool
	// Placeholder is shown while collapsed and no title is set.
	Placeholder string
}

// LineNumbers overrides the theme's line-number default.
//
// With both flags false the theme default applies.
type LineNumbers struct {
	AlwaysEnabled  bool
	AlwaysDisabled bool
	// Offset is added to the 1-based line index before display and matching.
	Offset int
}

// LineUnwrap overrides the theme's line-wrapping default.
type LineUnwrap struct {
	AlwaysEnabled  bool
	AlwaysDisabled bool
	// ActiveWrap wraps unwrapped lines only while they are active.
	ActiveWrap bool
}

// Highlights holds the default rule set (`hl:`) and one rule set per declared
// alternative highlight name.
type Highlights struct {
	Default     Rules
	Alternative map[string]Rules
}

// Rules is one highlight rule set.
type Rules struct {
	// LineNumbers is kept sorted and free of duplicates.
	LineNumbers []int
	PlainText   []string
	Expressions []*regexp.Regexp
}

// DefaultParameters returns the parameters of a fence with no opening-line
// metadata.
func DefaultParameters() Parameters {
	return Parameters{
		Highlights: Highlights{Alternative: map[string]Rules{}},
	}
}

// IsEmpty reports whether the rule set can never match.
func (r Rules) IsEmpty() bool {
	return len(r.LineNumbers) == 0 && len(r.PlainText) == 0 && len(r.Expressions) == 0
}

// Theme is the part of the host configuration the parser and the renderer
// depend on.
type Theme struct {
	// FoldPlaceholder is the fallback text of a collapsed region.
	FoldPlaceholder string
	// AlternativeHighlights lists the declared alternative highlight names in
	// priority order.
	AlternativeHighlights []string

	// Defaults used when a fence does not override them.
	LineNumbers bool
	UnwrapLines bool
	WrapActive  bool
}

// AlternativeName resolves name against the declared alternative highlight
// names, case-insensitively.
func (t Theme) AlternativeName(name string) (string, bool) {
	for _, declared := range t.AlternativeHighlights {
		if strings.EqualFold(declared, name) {
			return declared, true
		}
	}
	return "", false
}

// ShowLineNumbers resolves the line-number override against the theme.
func (p Parameters) ShowLineNumbers(t Theme) bool {
	if p.LineNumbers.AlwaysEnabled {
		return true
	}
	if p.LineNumbers.AlwaysDisabled {
		return false
	}
	return t.LineNumbers
}

// Unwrap resolves the unwrap override against the theme and reports whether
// unwrapped lines wrap again while active.
func (p Parameters) Unwrap(t Theme) (unwrap, activeWrap bool) {
	switch {
	case p.LineUnwrap.AlwaysEnabled:
		return true, p.LineUnwrap.ActiveWrap
	case p.LineUnwrap.AlwaysDisabled:
		return false, false
	default:
		return t.UnwrapLines, t.UnwrapLines && t.WrapActive
	}
}

// Placeholder returns the text shown for the region while it is folded.
func (p Parameters) Placeholder(t Theme) string {
	if p.Title != "" {
		return p.Title
	}
	if p.Fold.Placeholder != "" {
		return p.Fold.Placeholder
	}
	return t.FoldPlaceholder
}
