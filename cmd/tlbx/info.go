package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"go.jacobcolvin.com/tlbx/binary"
	"go.jacobcolvin.com/tlbx/document"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print a top-level summary of a text or binary document",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]

			doc, err := loadEither(path)
			if err != nil {
				return err
			}

			printInfo(path, doc)

			return nil
		},
	}
}

// loadEither sniffs the file's magic bytes to decide between text parsing
// and binary loading, so `info` works on either form without a flag.
func loadEither(path string) (*document.Document, error) {
	head := make([]byte, len(binary.Magic))

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	n, readErr := f.Read(head)

	closeErr := f.Close()
	if closeErr != nil {
		return nil, closeErr
	}

	if readErr == nil && n == len(head) && string(head) == binary.Magic {
		return document.Load(path)
	}

	return document.ParseFile(path)
}

func printInfo(path string, doc *document.Document) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	heading := lipgloss.NewStyle()
	label := lipgloss.NewStyle()

	if styled {
		heading = heading.Bold(true).Foreground(lipgloss.Color("39"))
		label = label.Foreground(lipgloss.Color("244"))
	}

	fmt.Println(heading.Render(path))
	fmt.Printf("%s %t\n", label.Render("root array:"), doc.RootArray())
	fmt.Printf("%s %d\n", label.Render("sections:"), len(doc.Keys()))

	for _, key := range doc.Keys() {
		v, _ := doc.Section(key)
		fmt.Printf("  %-20s %s\n", key, v.Kind().String())
	}

	if names := doc.SchemaNames(); len(names) > 0 {
		fmt.Printf("%s %v\n", label.Render("structs:"), names)
	}

	if names := doc.UnionNames(); len(names) > 0 {
		fmt.Printf("%s %v\n", label.Render("unions:"), names)
	}
}
