package fence

import (
	"strconv"
	"strings"
)

// MinDelimiterWidth is the shortest run of backticks or tildes that opens a
// fence.
const MinDelimiterWidth = 3

// Delimiter returns the fence character and run width at the start of line,
// after leading whitespace. ok is false when line does not start with a run
// of at least MinDelimiterWidth identical fence characters.
func Delimiter(line string) (delim byte, width int, ok bool) {
	line = strings.TrimLeft(line, " \t")
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0, false
	}
	delim = line[0]
	for width < len(line) && line[width] == delim {
		width++
	}
	if width < MinDelimiterWidth {
		return 0, 0, false
	}
	return delim, width, true
}

// Parse parses the opening line of a fence. It never fails: anything it does
// not understand is left at its default.
func Parse(line string, theme Theme) Parameters {
	p := DefaultParameters()

	_, width, ok := Delimiter(line)
	if !ok {
		return p
	}
	rest := strings.TrimLeft(strings.TrimLeft(line, " \t")[width:], " \t")
	rest = strings.TrimRight(rest, " \t\r")

	lang, params, hasParams := strings.Cut(rest, " ")
	p.Language = strings.ToLower(lang)
	if !hasParams {
		return p
	}

	explicitRef := false
	for _, tok := range splitTokens(params) {
		name, value, hasValue := strings.Cut(tok, ":")
		switch {
		case !hasValue:
			applyFlag(&p, tok)
		case name == "title":
			p.Title = unquote(value)
		case name == "ref" || name == "reference":
			p.Reference = unquote(value)
			explicitRef = p.Reference != ""
		case name == "fold":
			p.Fold = Fold{Enabled: true, Placeholder: unquote(value)}
		case name == "ln":
			applyLineNumbers(&p, value)
		case name == "unwrap":
			applyUnwrap(&p, value)
		case name == "hl":
			p.Highlights.Default = p.Highlights.Default.Merge(ParseRules(value))
		default:
			declared, ok := theme.AlternativeName(name)
			if !ok {
				continue
			}
			p.Highlights.Alternative[declared] = p.Highlights.Alternative[declared].Merge(ParseRules(value))
		}
	}

	if !explicitRef {
		p.Title, p.Reference = inferReference(p.Title)
	}
	return p
}

func applyFlag(p *Parameters, tok string) {
	switch tok {
	case "fold":
		p.Fold = Fold{Enabled: true}
	case "wrap":
		p.LineUnwrap = LineUnwrap{AlwaysDisabled: true}
	case "unwrap":
		p.LineUnwrap = LineUnwrap{AlwaysEnabled: true}
	case "ignore":
		p.Ignore = true
	}
}

func applyLineNumbers(p *Parameters, value string) {
	switch {
	case value == "true":
		p.LineNumbers = LineNumbers{AlwaysEnabled: true}
	case value == "false":
		p.LineNumbers = LineNumbers{AlwaysDisabled: true}
	case isDigits(value):
		n, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		p.LineNumbers = LineNumbers{AlwaysEnabled: true, Offset: n - 1}
	}
}

func applyUnwrap(p *Parameters, value string) {
	switch value {
	case "inactive":
		p.LineUnwrap = LineUnwrap{AlwaysEnabled: true, ActiveWrap: true}
	case "true":
		p.LineUnwrap = LineUnwrap{AlwaysEnabled: true}
	case "false":
		p.LineUnwrap = LineUnwrap{AlwaysDisabled: true}
	}
}
