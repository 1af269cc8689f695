package errs

import "fmt"

// Position locates an error inside source text. Line and Column are
// 1-based; Offset is the 0-based byte offset from the start of the input.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String renders "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// PositionedError is a lexical or grammatical failure carrying the
// [Position] at which it was detected and a stable, public-contract
// message.
type PositionedError struct {
	Code    Code
	Message string
	Pos     Position
}

// New constructs a [PositionedError] with a pre-formatted message.
func New(code Code, pos Position, message string) *PositionedError {
	return &PositionedError{Code: code, Message: message, Pos: pos}
}

// Newf constructs a [PositionedError] with a formatted message.
func Newf(code Code, pos Position, format string, args ...any) *PositionedError {
	return &PositionedError{Code: code, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func (e *PositionedError) Error() string {
	return fmt.Sprintf("%s: %s (at %s)", e.Code, e.Message, e.Pos)
}

// Unwrap returns the bare sentinel for e.Code (see [Sentinel]), so
// errors.Is(err, errs.ErrParseError) matches independent of message text
// or position.
func (e *PositionedError) Unwrap() error {
	return Sentinel(e.Code)
}
