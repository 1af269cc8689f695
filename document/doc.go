// Package document is the external facade over the engine: parse and load
// operations at the top, convert/compile/emit operations to move between
// the text, binary, and JSON forms, and lookup operations for section
// values, structs, and unions. External collaborators — the CLI included —
// depend only on this package, [binary.Reader], and [jsonbridge], per the
// collaborator boundary in §2.
package document
