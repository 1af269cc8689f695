package errs

// Message format constants used by the lexer and parser. Listed here,
// rather than inlined at each call site, so that the message text for a
// given failure is defined exactly once and is easy to audit for the
// stability the error-handling design promises.
const (
	MsgUnknownEscape               = "unknown escape sequence '\\%c'"
	MsgTruncatedUnicodeEscape      = "truncated \\u escape, expected 4 hex digits"
	MsgInvalidUnicodeEscape        = "invalid hex digit %q in \\u escape"
	MsgLoneSurrogate               = "lone surrogate \\u%04X in string escape"
	MsgUnterminatedString          = "unterminated string literal"
	MsgUnterminatedMultilineString = "unterminated triple-quoted string"
	MsgInvalidUtf8InSource         = "invalid UTF-8 byte sequence in source"

	MsgIntegerOverflow = "integer literal %q out of i64/u64 range"
	MsgInvalidNumber   = "invalid numeric literal %q"
	MsgOddHexDigits    = "bytes literal %q has an odd number of hex digits"
	MsgInvalidHexDigit = "invalid hex digit in bytes literal %q"
	MsgInvalidName     = "invalid identifier %q"

	MsgUnexpectedChar = "unexpected character %q"

	MsgUnexpectedToken    = "unexpected token %s, expected %s"
	MsgUnexpectedEof      = "unexpected end of input, expected %s"
	MsgUnknownStruct      = "undefined struct %q referenced by @table"
	MsgArityMismatch      = "tuple has %d element(s), schema %q expects %d"
	MsgUnknownFieldType   = "field %q has unknown type %q"
	MsgDuplicateSchema    = "struct %q is already defined"
	MsgDuplicateUnion     = "union %q is already defined"
	MsgIncludeCycle       = "include cycle detected: %q already on the include stack"
	MsgIncludeNotFound    = "included file %q could not be read: %v"
	MsgInvalidMapKey      = "map keys must be string, int, or uint, got %s"
	MsgValueOutOfRange    = "value %v exceeds range of declared type %q for field %q"
	MsgDuplicateTopLevel  = "duplicate top-level key %q, overwriting previous value"
	MsgDuplicateObjectKey = "duplicate key %q in object, overwriting previous value"
)
