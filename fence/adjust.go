package fence

// Adjuster post-processes parsed parameters, for example to rewrite the
// language or title of fences handled by another codeblock processor.
// Adjusters run after Parse and before the parameters are used.
type Adjuster interface {
	Adjust(p Parameters) Parameters
}

// AdjusterFunc adapts a function to Adjuster.
type AdjusterFunc func(p Parameters) Parameters

func (f AdjusterFunc) Adjust(p Parameters) Parameters { return f(p) }

// ParseAdjusted parses line and runs the adjusters over the result in order.
func ParseAdjusted(line string, theme Theme, adjusters ...Adjuster) Parameters {
	p := Parse(line, theme)
	for _, a := range adjusters {
		if a == nil {
			continue
		}
		p = a.Adjust(p)
	}
	if p.Highlights.Alternative == nil {
		p.Highlights.Alternative = map[string]Rules{}
	}
	return p
}
