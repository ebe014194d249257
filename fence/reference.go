package fence

import (
	"regexp"
	"strings"
)

var (
	markdownLinkRE = regexp.MustCompile(`^\[([^\]]*)\]\(([^)\s]+)\)$`)
	wikiLinkRE     = regexp.MustCompile(`^\[\[([^\]|]+)(?:\|([^\]]*))?\]\]$`)
	bareURLRE      = regexp.MustCompile(`^(?:https?|file)://\S+$`)
)

// inferReference splits a title that is itself a link into display text and
// link target. Titles that are not links come back unchanged with an empty
// reference.
func inferReference(title string) (string, string) {
	t := strings.TrimSpace(title)
	if m := markdownLinkRE.FindStringSubmatch(t); m != nil {
		text := m[1]
		if text == "" {
			text = m[2]
		}
		return text, m[2]
	}
	if m := wikiLinkRE.FindStringSubmatch(t); m != nil {
		ref := strings.TrimSpace(m[1])
		text := strings.TrimSpace(m[2])
		if text == "" {
			text = ref
		}
		return text, ref
	}
	if bareURLRE.MatchString(t) {
		return t, t
	}
	return title, ""
}
