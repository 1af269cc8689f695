package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/document"
	"go.jacobcolvin.com/tlbx/textemit"
)

func newDecompileCmd() *cobra.Command {
	var (
		out           string
		compact       bool
		compactFloats bool
		mmap          bool
	)

	cmd := &cobra.Command{
		Use:   "decompile <in.bin>",
		Short: "Decompile a binary document to its text form",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if out == "" {
				return usageErrorf("decompile: -o output path is required")
			}

			in := args[0]

			status.Infof("decompiling %s -> %s", in, out)

			load := document.Load
			if mmap {
				load = document.LoadMmap
			}

			doc, err := load(in)
			if err != nil {
				return err
			}

			opts := textemit.Pretty
			opts.Compact = compact
			opts.CompactFloats = compactFloats

			text := doc.EmitText(opts)

			return os.WriteFile(out, []byte(text), 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "text output path")
	cmd.Flags().BoolVar(&compact, "compact", false, "remove insignificant whitespace")
	cmd.Flags().BoolVar(&compactFloats, "compact-floats", false, "render whole-number floats without a trailing .0")
	cmd.Flags().BoolVar(&mmap, "mmap", false, "memory-map the input instead of reading it whole")

	return cmd
}
