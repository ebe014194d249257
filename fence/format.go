package fence

import (
	"sort"
	"strconv"
	"strings"
)

// String renders p as a backtick fence opening line that parses back to the
// same language, modes and rule sets. Parameters other than the language are
// only rendered when the language is set.
func (p Parameters) String() string {
	var sb strings.Builder
	sb.WriteString("```")
	sb.WriteString(p.Language)

	var toks []string
	if p.Title != "" {
		toks = append(toks, "title:"+quote(p.Title))
	}
	if p.Reference != "" && p.Reference != p.Title {
		toks = append(toks, "ref:"+quote(p.Reference))
	}
	if p.Fold.Enabled {
		if p.Fold.Placeholder == "" {
			toks = append(toks, "fold")
		} else {
			toks = append(toks, "fold:"+quote(p.Fold.Placeholder))
		}
	}
	switch {
	case p.LineNumbers.AlwaysEnabled && p.LineNumbers.Offset != 0:
		toks = append(toks, "ln:"+strconv.Itoa(p.LineNumbers.Offset+1))
	case p.LineNumbers.AlwaysEnabled:
		toks = append(toks, "ln:true")
	case p.LineNumbers.AlwaysDisabled:
		toks = append(toks, "ln:false")
	}
	switch {
	case p.LineUnwrap.AlwaysEnabled && p.LineUnwrap.ActiveWrap:
		toks = append(toks, "unwrap:inactive")
	case p.LineUnwrap.AlwaysEnabled:
		toks = append(toks, "unwrap")
	case p.LineUnwrap.AlwaysDisabled:
		toks = append(toks, "wrap")
	}
	if p.Ignore {
		toks = append(toks, "ignore")
	}
	if !p.Highlights.Default.IsEmpty() {
		toks = append(toks, "hl:"+p.Highlights.Default.String())
	}
	names := make([]string, 0, len(p.Highlights.Alternative))
	for name, rules := range p.Highlights.Alternative {
		if !rules.IsEmpty() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		toks = append(toks, name+":"+p.Highlights.Alternative[name].String())
	}

	// Without a language the first token would be read as one.
	if len(toks) > 0 && p.Language != "" {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(toks, " "))
	}
	return sb.String()
}

// String renders the rule set in rule-list syntax, collapsing consecutive
// line numbers into ranges.
func (r Rules) String() string {
	var parts []string
	for i := 0; i < len(r.LineNumbers); {
		j := i
		for j+1 < len(r.LineNumbers) && r.LineNumbers[j+1] == r.LineNumbers[j]+1 {
			j++
		}
		if j == i {
			parts = append(parts, strconv.Itoa(r.LineNumbers[i]))
		} else {
			parts = append(parts, strconv.Itoa(r.LineNumbers[i])+"-"+strconv.Itoa(r.LineNumbers[j]))
		}
		i = j + 1
	}
	for _, s := range r.PlainText {
		parts = append(parts, quote(s))
	}
	for _, re := range r.Expressions {
		parts = append(parts, "/"+re.String()+"/")
	}
	return strings.Join(parts, ",")
}

func quote(s string) string {
	if strings.ContainsRune(s, '"') {
		return "'" + s + "'"
	}
	return `"` + s + `"`
}
