package errs

import "errors"

// Code names one category of the error taxonomy.
type Code string

const (
	Io              Code = "io"
	InvalidMagic    Code = "invalid_magic"
	InvalidVersion  Code = "invalid_version"
	InvalidType     Code = "invalid_type"
	InvalidUtf8     Code = "invalid_utf8"
	ParseError      Code = "parse_error"
	UnexpectedToken Code = "unexpected_token"
	UnexpectedEof   Code = "unexpected_eof"
	UnknownStruct   Code = "unknown_struct"
	MissingField    Code = "missing_field"
	ValueOutOfRange Code = "value_out_of_range"
)

// Sentinel errors, one per [Code]. Use [errors.Is] against these to test
// the category of an error returned by the engine, whether or not it
// carries a position.
var (
	ErrIo              = errors.New(string(Io))
	ErrInvalidMagic    = errors.New(string(InvalidMagic))
	ErrInvalidVersion  = errors.New(string(InvalidVersion))
	ErrInvalidType     = errors.New(string(InvalidType))
	ErrInvalidUtf8     = errors.New(string(InvalidUtf8))
	ErrParseError      = errors.New(string(ParseError))
	ErrUnexpectedToken = errors.New(string(UnexpectedToken))
	ErrUnexpectedEof   = errors.New(string(UnexpectedEof))
	ErrUnknownStruct   = errors.New(string(UnknownStruct))
	ErrMissingField    = errors.New(string(MissingField))
	ErrValueOutOfRange = errors.New(string(ValueOutOfRange))
)

var sentinels = map[Code]error{
	Io:              ErrIo,
	InvalidMagic:    ErrInvalidMagic,
	InvalidVersion:  ErrInvalidVersion,
	InvalidType:     ErrInvalidType,
	InvalidUtf8:     ErrInvalidUtf8,
	ParseError:      ErrParseError,
	UnexpectedToken: ErrUnexpectedToken,
	UnexpectedEof:   ErrUnexpectedEof,
	UnknownStruct:   ErrUnknownStruct,
	MissingField:    ErrMissingField,
	ValueOutOfRange: ErrValueOutOfRange,
}

// Sentinel returns the bare sentinel error for code.
func Sentinel(code Code) error {
	if err, ok := sentinels[code]; ok {
		return err
	}

	return errors.New(string(code))
}
