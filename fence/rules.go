package fence

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// maxRangeSpan caps how many line numbers a single `a-b` rule expands to.
const maxRangeSpan = 10000

var lineRangeRE = regexp.MustCompile(`^(\d+)-(\d+)$`)

// ParseRules parses a comma-separated highlight rule list. Invalid rules are
// skipped; the rest still apply.
func ParseRules(list string) Rules {
	var r Rules
	for _, raw := range splitRules(list) {
		rule := strings.TrimSpace(raw)
		if rule == "" {
			continue
		}

		if m := lineRangeRE.FindStringSubmatch(rule); m != nil {
			from, errFrom := strconv.Atoi(m[1])
			to, errTo := strconv.Atoi(m[2])
			if errFrom != nil || errTo != nil || from > to {
				continue
			}
			if to-from > maxRangeSpan {
				to = from + maxRangeSpan
			}
			for n := from; n <= to; n++ {
				r.LineNumbers = append(r.LineNumbers, n)
			}
			continue
		}

		if len(rule) >= 2 && rule[0] == '/' && rule[len(rule)-1] == '/' {
			expr := rule[1 : len(rule)-1]
			if expr == "" {
				continue
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				continue
			}
			r.Expressions = append(r.Expressions, re)
			continue
		}

		if q := rule[0]; q == '"' || q == '\'' {
			if text := unquote(rule); text != rule && text != "" {
				r.PlainText = append(r.PlainText, text)
			}
			continue
		}

		if n, err := strconv.Atoi(rule); err == nil && isDigits(rule) {
			r.LineNumbers = append(r.LineNumbers, n)
			continue
		}

		r.PlainText = append(r.PlainText, rule)
	}
	return r.normalized()
}

// Merge returns the union of r and other.
func (r Rules) Merge(other Rules) Rules {
	out := Rules{
		LineNumbers: append(append([]int(nil), r.LineNumbers...), other.LineNumbers...),
		PlainText:   append(append([]string(nil), r.PlainText...), other.PlainText...),
		Expressions: append(append([]*regexp.Regexp(nil), r.Expressions...), other.Expressions...),
	}
	return out.normalized()
}

// Matches reports whether a line is highlighted by the rule set. line is the
// 1-based, offset-adjusted line number and text the line content.
func (r Rules) Matches(line int, text string) bool {
	i := sort.SearchInts(r.LineNumbers, line)
	if i < len(r.LineNumbers) && r.LineNumbers[i] == line {
		return true
	}
	for _, s := range r.PlainText {
		if strings.Contains(text, s) {
			return true
		}
	}
	for _, re := range r.Expressions {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func (r Rules) normalized() Rules {
	if len(r.LineNumbers) > 0 {
		sort.Ints(r.LineNumbers)
		uniq := r.LineNumbers[:1]
		for _, n := range r.LineNumbers[1:] {
			if n != uniq[len(uniq)-1] {
				uniq = append(uniq, n)
			}
		}
		r.LineNumbers = uniq
	}
	if len(r.PlainText) > 1 {
		seen := make(map[string]struct{}, len(r.PlainText))
		uniq := r.PlainText[:0]
		for _, s := range r.PlainText {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			uniq = append(uniq, s)
		}
		r.PlainText = uniq
	}
	if len(r.Expressions) > 1 {
		seen := make(map[string]struct{}, len(r.Expressions))
		uniq := r.Expressions[:0]
		for _, re := range r.Expressions {
			if _, ok := seen[re.String()]; ok {
				continue
			}
			seen[re.String()] = struct{}{}
			uniq = append(uniq, re)
		}
		r.Expressions = uniq
	}
	return r
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
