package lexer

import "go.jacobcolvin.com/tlbx/errs"

// Kind identifies the lexical category of a [Token].
type Kind int

const (
	EOF Kind = iota

	Ident // name

	String          // "quoted"
	MultilineString // """triple quoted"""
	Int
	UInt
	Float
	Hex
	Binary
	Bytes // b"deadbeef"
	Timestamp

	KeywordTrue
	KeywordFalse
	KeywordNull
	KeywordNaN
	KeywordInf
	KeywordNegInf

	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	LParen   // (
	RParen   // )
	Comma    // ,
	Colon    // :
	Question // ?
	Backtick // `

	At    // @
	Bang  // !
	Tilde // ~
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "identifier"
	case String:
		return "string"
	case MultilineString:
		return "multiline string"
	case Int:
		return "integer"
	case UInt:
		return "unsigned integer"
	case Float:
		return "float"
	case Hex:
		return "hex literal"
	case Binary:
		return "binary literal"
	case Bytes:
		return "bytes literal"
	case Timestamp:
		return "timestamp"
	case KeywordTrue:
		return "'true'"
	case KeywordFalse:
		return "'false'"
	case KeywordNull:
		return "'null'"
	case KeywordNaN:
		return "'NaN'"
	case KeywordInf:
		return "'inf'"
	case KeywordNegInf:
		return "'-inf'"
	case LBrace:
		return "'{'"
	case RBrace:
		return "'}'"
	case LBracket:
		return "'['"
	case RBracket:
		return "']'"
	case LParen:
		return "'('"
	case RParen:
		return "')'"
	case Comma:
		return "','"
	case Colon:
		return "':'"
	case Question:
		return "'?'"
	case Backtick:
		return "'`'"
	case At:
		return "'@'"
	case Bang:
		return "'!'"
	case Tilde:
		return "'~'"
	default:
		return "unknown token"
	}
}

// Token is one lexical unit of source text.
//
// Text holds the decoded value for literals (the unescaped string, the
// raw hex digits of a [Bytes] literal, the source spelling of a numeric
// or timestamp literal) and the raw
// spelling for identifiers, keywords, and punctuation. The decoded numeric
// or byte value, when applicable, is carried in the Int/UInt/Float/Bytes/
// TimestampMillis/TimestampOffset fields instead of being re-parsed by the
// caller.
type Token struct {
	Kind Kind
	Text string
	Pos  errs.Position

	// Unsigned distinguishes Int from UInt for any numeric Kind (Int, UInt,
	// Hex, Binary): when true, UIntVal holds the value; otherwise IntVal
	// does. Hex and Binary literals decode straight to Int or UInt exactly
	// like decimal ones — Kind retains the literal's lexical notation for
	// diagnostics, but no downstream stage treats base-16/2 literals
	// differently from base-10 ones once lexed.
	Unsigned bool
	IntVal   int64
	UIntVal  uint64
	FloatVal float64
	BytesVal []byte

	TimestampMillis int64
	TimestampOffset int16
}
