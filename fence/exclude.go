package fence

import (
	"strings"

	"github.com/gobwas/glob"
)

// Matcher tests languages against a comma-separated list of patterns in which
// `*` stands for one or more characters. Matching is anchored and
// case-insensitive.
type Matcher struct {
	patterns []glob.Glob
}

// NewMatcher compiles patterns. Empty entries and entries that fail to compile
// are skipped.
func NewMatcher(patterns string) Matcher {
	var m Matcher
	for _, raw := range strings.Split(patterns, ",") {
		p := strings.ToLower(strings.TrimSpace(raw))
		if p == "" {
			continue
		}
		parts := strings.Split(p, "*")
		for i := range parts {
			parts[i] = glob.QuoteMeta(parts[i])
		}
		g, err := glob.Compile(strings.Join(parts, "?*"))
		if err != nil {
			continue
		}
		m.patterns = append(m.patterns, g)
	}
	return m
}

// Match reports whether language matches any pattern.
func (m Matcher) Match(language string) bool {
	language = strings.ToLower(language)
	for _, g := range m.patterns {
		if g.Match(language) {
			return true
		}
	}
	return false
}

// IsLanguageMatched reports whether language matches one of the
// comma-separated patterns.
func IsLanguageMatched(language, patterns string) bool {
	return NewMatcher(patterns).Match(language)
}
