// Package lexer turns UTF-8 source text into a stream of [Token]s carrying
// (line, column) spans, for consumption by the parser.
//
// The lexer is pull-based: construct one with [New] and call [Lexer.Next]
// repeatedly until it returns a Token of [EOF]. Numeric and string literals
// are fully decoded during lexing — an integer literal that overflows
// i64/u64, or a string escape that is malformed, fails immediately with a
// [*errs.PositionedError] rather than being deferred to the parser. The one
// exception is multiline-string dedenting, which the parser performs after
// tokenization per its own indentation rule.
package lexer
