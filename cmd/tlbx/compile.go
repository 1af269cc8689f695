package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/binary"
	"go.jacobcolvin.com/tlbx/document"
)

func newCompileCmd() *cobra.Command {
	var (
		out        string
		noCompress bool
	)

	cmd := &cobra.Command{
		Use:   "compile <in.text>",
		Short: "Compile a text document to its binary form",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if out == "" {
				return usageErrorf("compile: -o output path is required")
			}

			in := args[0]

			status.Infof("compiling %s -> %s", in, out)

			doc, err := document.ParseFile(in)
			if err != nil {
				return err
			}

			opts := binary.DefaultEncodeOptions
			opts.Compress = !noCompress

			if err := doc.Compile(out, opts); err != nil {
				return err
			}

			info, err := os.Stat(out)
			if err == nil {
				status.Infof("wrote %d bytes", info.Size())
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "binary output path")
	cmd.Flags().BoolVar(&noCompress, "no-compress", false, "write every section uncompressed")

	return cmd
}
