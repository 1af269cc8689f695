// Command tlbx is the CLI front end for the document engine: compile text
// to binary, decompile binary to text, convert to and from JSON, inspect a
// file's top-level shape, and validate text without writing anything.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/internal/enginelog"
	"go.jacobcolvin.com/tlbx/internal/profiler"
	"go.jacobcolvin.com/tlbx/internal/version"
)

// exitUsage and exitFailure are the two non-zero exit codes the CLI uses;
// 0 (success) needs no name.
const (
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks an error that should exit 2 rather than the default 1 —
// bad arguments and flag combinations, as opposed to a valid invocation that
// failed while doing its work.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// exactArgs wraps [cobra.ExactArgs] so a wrong argument count exits 2
// (usage error) rather than 1 — cobra's own validator error carries no
// marker distinguishing it from a RunE failure otherwise.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return &usageError{err: err}
		}

		return nil
	}
}

func main() {
	os.Exit(run())
}

func run() int {
	logCfg := enginelog.NewConfig()
	prof := profiler.New()

	root := &cobra.Command{
		Use:           "tlbx",
		Short:         "Compile, decompile, convert, and inspect tlbx documents",
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			handler, err := logCfg.NewHandler(os.Stderr)
			if err != nil {
				return &usageError{err: err}
			}

			slog.SetDefault(slog.New(handler))

			return prof.Start()
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Stop()
		},
	}

	logCfg.RegisterFlags(root.PersistentFlags())
	prof.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		newCompileCmd(),
		newDecompileCmd(),
		newInfoCmd(),
		newValidateCmd(),
		newToJSONCmd(),
		newFromJSONCmd(),
		newBinToJSONCmd(),
		newJSONToBinCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		var ue *usageError

		if errors.As(err, &ue) {
			return exitUsage
		}

		return exitFailure
	}

	return 0
}
