package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/tlbx/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := version.Version
			if v == "" {
				v = "dev"
			}

			fmt.Fprintf(cmd.OutOrStdout(), "tlbx %s (%s)\n", v, version.Revision)
			fmt.Fprintf(cmd.OutOrStdout(), "  go:       %s\n", version.GoVersion)
			fmt.Fprintf(cmd.OutOrStdout(), "  platform: %s/%s\n", version.GoOS, version.GoArch)

			if version.Branch != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  branch:   %s\n", version.Branch)
			}

			if version.BuildDate != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s by %s\n", version.BuildDate, version.BuildUser)
			}

			return nil
		},
	}
}
