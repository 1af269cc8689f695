package textemit

// Options selects one of the text emitter's variants.
type Options struct {
	// IncludeSchemas emits all registered structs, then all registered
	// unions (each sorted alphabetically by name), before any data section.
	IncludeSchemas bool

	// Compact removes insignificant whitespace: no spaces after `:` or
	// `,`, no trailing newline between top-level items.
	Compact bool

	// CompactFloats renders a whole-number Float with at most 15
	// significant digits without a trailing ".0", same spelling as an
	// Int literal. This is lossy: re-parsing the emitted text yields an
	// Int Value, not a Float one, for that position.
	CompactFloats bool
}

// Pretty is the default, human-reviewable variant: no schemas, full
// whitespace, floats spelled with an explicit fractional part.
var Pretty = Options{}

// Compact removes insignificant whitespace only.
var Compact = Options{Compact: true}

// WithSchemas emits struct/union definitions ahead of data, otherwise
// pretty-printed.
var WithSchemas = Options{IncludeSchemas: true}
