package parser

import "strings"

// dedentMultiline implements the multiline-string post-processing the
// lexer leaves to the parser: drop the newline immediately after the
// opening `"""` and the one immediately before the closing `"""`, then
// strip the minimum common indentation of the non-blank content lines
// from every line.
func dedentMultiline(raw string) string {
	s := strings.TrimPrefix(raw, "\n")
	s = strings.TrimSuffix(s, "\n")

	if s == "" {
		return s
	}

	lines := strings.Split(s, "\n")

	minIndent := -1

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if minIndent == -1 || indent < minIndent {
			minIndent = indent
		}
	}

	if minIndent <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= minIndent {
			lines[i] = line[minIndent:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}

	return strings.Join(lines, "\n")
}
