package fence

// Line classes assigned to body lines.
const (
	ClassPlain       = ""
	ClassHighlighted = "highlighted"
)

// AlternativeClass returns the line class of an alternative highlight name.
func AlternativeClass(name string) string {
	return ClassHighlighted + "-" + name
}

// Class picks the line class of a body line. The default rule set wins over
// alternative sets, and alternative sets are tried in the given order.
func (h Highlights) Class(line int, text string, order []string) string {
	if h.Default.Matches(line, text) {
		return ClassHighlighted
	}
	for _, name := range order {
		rules, ok := h.Alternative[name]
		if !ok {
			continue
		}
		if rules.Matches(line, text) {
			return AlternativeClass(name)
		}
	}
	return ClassPlain
}

// DisplayLine converts a 0-based body line index into the number shown in the
// gutter and used for rule matching.
func (p Parameters) DisplayLine(index int) int {
	return index + 1 + p.LineNumbers.Offset
}
