package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/codefence/fence"
)

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse LINE...",
		Short: "Print the parameters of fence opening lines",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			adjusters, closeAll, err := a.adjusters()
			if err != nil {
				return err
			}
			defer closeAll()

			theme := a.cfg.Settings().Theme
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for i, line := range args {
				if i > 0 {
					fmt.Fprintln(w)
				}
				writeParameters(w, fence.ParseAdjusted(line, theme, adjusters...), theme)
			}
			return w.Flush()
		},
	}
}

func writeParameters(w *tabwriter.Writer, p fence.Parameters, theme fence.Theme) {
	unwrap, activeWrap := p.Unwrap(theme)
	fmt.Fprintf(w, "normalized\t%s\n", p.String())
	fmt.Fprintf(w, "language\t%s\n", p.Language)
	fmt.Fprintf(w, "title\t%s\n", p.Title)
	fmt.Fprintf(w, "reference\t%s\n", p.Reference)
	fmt.Fprintf(w, "fold\t%t\n", p.Fold.Enabled)
	if p.Fold.Enabled {
		fmt.Fprintf(w, "placeholder\t%s\n", p.Placeholder(theme))
	}
	fmt.Fprintf(w, "line numbers\t%t (first %d)\n", p.ShowLineNumbers(theme), p.DisplayLine(0))
	fmt.Fprintf(w, "unwrap\t%t (active wrap %t)\n", unwrap, activeWrap)
	fmt.Fprintf(w, "ignore\t%t\n", p.Ignore)
	if !p.Highlights.Default.IsEmpty() {
		fmt.Fprintf(w, "hl\t%s\n", p.Highlights.Default.String())
	}
	names := make([]string, 0, len(p.Highlights.Alternative))
	for name := range p.Highlights.Alternative {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%s\n", name, p.Highlights.Alternative[name].String())
	}
}
