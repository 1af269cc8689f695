package main

import (
	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/document"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <in.text>",
		Short: "Parse a text document without writing anything",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := document.ParseFile(args[0])

			return err
		},
	}
}
