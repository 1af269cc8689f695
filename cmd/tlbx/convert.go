package main

import (
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/binary"
	"go.jacobcolvin.com/tlbx/document"
	"go.jacobcolvin.com/tlbx/jsonbridge"
	"go.jacobcolvin.com/tlbx/textemit"
)

// writeOutput writes data to path, or to stdout when path is empty — to-json
// and bin-to-json pipe to stdout when -o is omitted.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)

		return err
	}

	return os.WriteFile(path, data, 0o644)
}

func newToJSONCmd() *cobra.Command {
	var (
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "to-json <in.text>",
		Short: "Convert a text document to JSON",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := document.ParseFile(args[0])
			if err != nil {
				return err
			}

			data, err := doc.EmitJSON(jsonbridge.Options{Pretty: pretty})
			if err != nil {
				return err
			}

			return writeOutput(out, data)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "JSON output path (default stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	return cmd
}

func newFromJSONCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "from-json <in.json>",
		Short: "Convert JSON to a text document, inferring struct schemas from uniform object arrays",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if out == "" {
				return usageErrorf("from-json: -o output path is required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := document.FromJSON(data)
			if err != nil {
				return err
			}

			return os.WriteFile(out, []byte(doc.EmitText(textemit.WithSchemas)), 0o644)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "text output path")

	return cmd
}

func newBinToJSONCmd() *cobra.Command {
	var (
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "bin-to-json <in.bin>",
		Short: "Convert a binary document to JSON",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			doc, err := document.Load(args[0])
			if err != nil {
				return err
			}

			data, err := doc.EmitJSON(jsonbridge.Options{Pretty: pretty})
			if err != nil {
				return err
			}

			return writeOutput(out, data)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "JSON output path (default stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")

	return cmd
}

func newJSONToBinCmd() *cobra.Command {
	var (
		out        string
		noCompress bool
	)

	cmd := &cobra.Command{
		Use:   "json-to-bin <in.json>",
		Short: "Convert JSON to a binary document, inferring struct schemas from uniform object arrays",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if out == "" {
				return usageErrorf("json-to-bin: -o output path is required")
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			doc, err := document.FromJSON(data)
			if err != nil {
				return err
			}

			opts := binary.DefaultEncodeOptions
			opts.Compress = !noCompress

			return doc.Compile(out, opts)
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "binary output path")
	cmd.Flags().BoolVar(&noCompress, "no-compress", false, "write every section uncompressed")

	return cmd
}
