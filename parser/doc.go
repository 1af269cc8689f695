// Package parser turns a [lexer.Token] stream into a [value.Document]: a
// recursive-descent parser for the directive/pair/reference/value grammar.
//
// # Top-level grammar
//
// A document's top level intermixes four kinds of item, freely and in any
// order: `@`-directives (`@struct`, `@union`, `@include`, `@root-array`),
// `key: value` pairs, `!name: value` reference definitions, and comments
// (already discarded by the lexer).
//
// # The tuple/struct binding rule
//
// A bare parenthesized tuple in value position is an ordinary Array. A
// tuple becomes schema-bound — turned into an Object keyed by field name
// — only when it appears as a row of an `@table` array, or as the value
// of a struct-typed field inside such a row (recursively, through nested
// struct and `[]struct` fields). Binding carries special placeholder
// semantics for `~` and explicit `null` at a field slot, documented on
// [Parser.parseBoundTuple].
//
// # Includes
//
// [ParseFile] enables `@include "path"` resolution relative to the
// including file's directory, with cycle detection across the include
// stack. [ParseString] has no file-system context, so any `@include`
// encountered while parsing from a string fails with [errs.Io].
package parser
