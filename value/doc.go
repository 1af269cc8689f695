// Package value defines the runtime value model shared by every stage of
// the engine: the lexer and parser produce [Value]s, the text emitter and
// binary encoder consume them, and the JSON bridge converts to and from
// them.
//
// [Value] is a closed tagged union (choice (a) of the two polymorphism
// strategies available to an implementer: exhaustive pattern matching per
// operation, rather than a dispatch table keyed by type code). Every
// accessor on [Value] is total: it returns the natural zero result when
// the variant does not match rather than panicking, so callers can probe
// a Value's shape without a type switch.
//
// [Object] and [Document] preserve insertion order for their keys while
// still offering O(1) lookup, backed by [github.com/wk8/go-ordered-map/v2].
// This matters end-to-end: the parser's pair order, the binary encoder's
// section order, and the text emitter's re-serialized order are all the
// same order.
//
// [Schema], [Field], [Union], and [Variant] describe the `@struct` and
// `@union` directives recognized by the parser; they are also the shape
// consumed by the binary schema table and by JSON schema inference.
package value
