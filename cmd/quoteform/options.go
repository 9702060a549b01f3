package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"freightquote/internal/domain/quote"
)

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the codes accepted by the enumerated fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printOptions(cmd.OutOrStdout(), quote.DefaultCatalog())
		},
	}
}

func printOptions(w io.Writer, c quote.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tCODE\tNAME")
	groups := []struct {
		field string
		opts  []quote.Option
	}{
		{"importExport", c.ImportExport},
		{"incoterms", c.Incoterms},
		{"salesPerson", c.SalesPerson},
		{"unit", c.Unit},
	}
	for _, g := range groups {
		for _, o := range g.opts {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", g.field, o.Code, o.Name)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Terms and conditions:")
	for i, term := range quote.Terms() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, term)
	}
	return nil
}
