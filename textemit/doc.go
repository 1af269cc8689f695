// Package textemit re-serializes a [value.Document] to the text form the
// parser and lexer packages consume: the inverse of `parser.ParseString`.
//
// [Emit] is deterministic — identical input produces identical bytes — and
// supports the four variants the format requires via [Options]: schema
// emission before data (struct/union definitions sorted alphabetically
// within their kind, matching [value.Document.SchemaNames] /
// [value.Document.UnionNames]), compact whitespace, and the lossy
// compact-floats optimization that drops the `.0` suffix from whole-number
// floats (documented as changing Float to Int on re-parse).
//
// # Table re-emission
//
// The Value model keeps no record of whether a given Array-of-Objects
// section was originally written as `@table Schema [...]` or as a plain
// array of object literals — both parse to the identical Document shape.
// [Emit] re-synthesizes the `@table` form whenever a section is a non-empty
// Array whose elements are all Objects sharing an identical key set that
// matches, in order, some registered schema's field names; every other
// Array-of-Objects is emitted as a plain array of object literals. Both
// forms re-parse to the same Document, so this satisfies the round-trip
// property (§8) without needing extra per-section state.
package textemit
