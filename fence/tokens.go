package fence

import "strings"

// splitTokens splits parameter text on whitespace. A token may contain quoted
// runs ("..." or '...') with embedded whitespace; quotes are kept in the token.
// A quote with no matching close is dropped and ends the current token.
func splitTokens(s string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			flush()
			i++
		case c == '"' || c == '\'':
			end := strings.IndexByte(s[i+1:], c)
			if end < 0 {
				flush()
				i++
				continue
			}
			cur.WriteString(s[i : i+end+2])
			i += end + 2
		default:
			cur.WriteByte(c)
			i++
		}
	}
	flush()
	return out
}

// unquote strips one layer of matching surrounding quotes.
func unquote(s string) string {
	if len(s) >= 2 {
		if q := s[0]; (q == '"' || q == '\'') && s[len(s)-1] == q {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// splitRules splits a rule list on commas that are neither quoted nor inside
// a /regex/ rule.
func splitRules(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case (c == '"' || c == '\'' || c == '/') && i == start:
			// A rule opened by a quote or slash runs to the matching close that
			// is followed by a comma or the end of the list.
			j := i + 1
			for ; j < len(s); j++ {
				if s[j] == c && (j+1 == len(s) || s[j+1] == ',') {
					break
				}
			}
			if j < len(s) {
				i = j
			}
		case c == ',':
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}
