package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "quoteform",
		Short:        "Build freight quotes and turn them into PDFs",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newSubmitCmd(), newOptionsCmd())
	return root
}
