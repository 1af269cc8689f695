// Package errs defines the error taxonomy shared by every stage of the
// engine, and the sentinel values every caller should match against with
// [errors.Is].
//
// Two shapes participate:
//
//   - A bare sentinel error for a [Code] (e.g. [ErrIo], [ErrInvalidMagic])
//     for failures with no useful source position — binary header
//     rejection, file I/O.
//   - A [PositionedError] for failures that occur while reading text —
//     lexing and parsing — which always carry a [Position] alongside the
//     [Code].
//
// [PositionedError.Unwrap] returns the bare sentinel for its Code, so
// `errors.Is(err, errs.ErrParseError)` matches regardless of which specific
// positioned message was produced. Error message text is part of the
// public contract described in the error-handling design: once published,
// a message changes only with a version bump, so every message used by
// the lexer and parser is built from the format constants in this package
// rather than being composed ad hoc at the call site.
package errs
