package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/codefence/engine"
	"github.com/iw2rmb/codefence/scan"
)

func newScanCmd(a *app) *cobra.Command {
	var decorations bool
	cmd := &cobra.Command{
		Use:   "scan FILE",
		Short: "List the fenced code regions of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readDocument(args[0])
			if err != nil {
				return err
			}
			adjusters, closeAll, err := a.adjusters()
			if err != nil {
				return err
			}
			defer closeAll()

			eng := engine.New(scan.NewTextDocument(text), a.cfg.Settings(), a.engineConfig(adjusters))
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if decorations {
				fmt.Fprintln(w, "FROM\tTO\tKIND\tPAYLOAD")
				for _, d := range eng.Decorations() {
					fmt.Fprintf(w, "%d\t%d\t%s\t%+v\n", d.From, d.To, d.Kind, d.Payload)
				}
				return w.Flush()
			}

			st := eng.State()
			fmt.Fprintln(w, "LINES\tLANGUAGE\tSTATE\tPARAMETERS")
			for _, r := range eng.Regions() {
				fmt.Fprintf(w, "%d-%d\t%s\t%s\t%s\n", r.StartLine+1, r.EndLine+1, r.Parameters.Language, regionState(st, r), r.Parameters.String())
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&decorations, "decorations", "d", false, "Print the decorations instead of the regions")
	return cmd
}

func regionState(st engine.State, r scan.Region) string {
	switch {
	case r.Parameters.Ignore:
		return "ignored"
	case st.Excluded(r.Parameters.Language):
		return "excluded"
	case st.IsFolded(r):
		return "folded"
	default:
		return "shown"
	}
}
