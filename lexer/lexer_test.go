package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/lexer"
)

func lexAll(t *testing.T, src string) []lexer.Token {
	t.Helper()

	l := lexer.New(src)

	var toks []lexer.Token

	for {
		tok, err := l.Next()
		require.NoError(t, err)

		toks = append(toks, tok)

		if tok.Kind == lexer.EOF {
			return toks
		}
	}
}

func TestLexer_Punctuation(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `{}[](),:?`+"`"+`@!~`)

	wantKinds := []lexer.Kind{
		lexer.LBrace, lexer.RBrace, lexer.LBracket, lexer.RBracket,
		lexer.LParen, lexer.RParen, lexer.Comma, lexer.Colon, lexer.Question,
		lexer.Backtick, lexer.At, lexer.Bang, lexer.Tilde, lexer.EOF,
	}

	require.Len(t, toks, len(wantKinds))

	for i, want := range wantKinds {
		assert.Equal(t, want, toks[i].Kind, "token %d", i)
	}
}

func TestLexer_Keywords(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "true false null NaN inf -inf")
	kinds := make([]lexer.Kind, 0, len(toks))

	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}

	assert.Equal(t, []lexer.Kind{
		lexer.KeywordTrue, lexer.KeywordFalse, lexer.KeywordNull,
		lexer.KeywordNaN, lexer.KeywordInf, lexer.KeywordNegInf, lexer.EOF,
	}, kinds)
}

func TestLexer_Identifiers(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "name_1 kebab-case dotted.name _leading")
	for i := range 4 {
		assert.Equal(t, lexer.Ident, toks[i].Kind)
	}

	assert.Equal(t, "name_1", toks[0].Text)
	assert.Equal(t, "kebab-case", toks[1].Text)
	assert.Equal(t, "dotted.name", toks[2].Text)
	assert.Equal(t, "_leading", toks[3].Text)
}

func TestLexer_IntegerLiterals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src      string
		wantKind lexer.Kind
		wantInt  int64
		wantUint uint64
	}{
		"positive":    {"42", lexer.Int, 42, 0},
		"negative":    {"-42", lexer.Int, -42, 0},
		"i64 max":     {"9223372036854775807", lexer.Int, 9223372036854775807, 0},
		"i64 min":     {"-9223372036854775808", lexer.Int, -9223372036854775808, 0},
		"u64 max":     {"18446744073709551615", lexer.UInt, 0, 18446744073709551615},
		"hex":         {"0x1F", lexer.Hex, 31, 0},
		"hex negated": {"-0x1F", lexer.Hex, -31, 0},
		"binary":      {"0b101", lexer.Binary, 5, 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			toks := lexAll(t, tc.src)
			require.Len(t, toks, 2)
			assert.Equal(t, tc.wantKind, toks[0].Kind)

			if toks[0].Unsigned {
				assert.Equal(t, tc.wantUint, toks[0].UIntVal)
			} else {
				assert.Equal(t, tc.wantInt, toks[0].IntVal)
			}
		})
	}
}

func TestLexer_IntegerOverflowFails(t *testing.T) {
	t.Parallel()

	l := lexer.New("18446744073709551616") // one beyond u64::MAX

	_, err := l.Next()
	require.Error(t, err)

	var pe *errs.PositionedError

	require.ErrorAs(t, err, &pe)
	assert.Equal(t, errs.ParseError, pe.Code)
}

func TestLexer_FloatLiterals(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src  string
		want float64
	}{
		"fraction":          {"3.14", 3.14},
		"negative fraction": {"-0.5", -0.5},
		"exponent":          {"1e10", 1e10},
		"signed exponent":   {"1.5e-3", 1.5e-3},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			toks := lexAll(t, tc.src)
			require.Len(t, toks, 2)
			assert.Equal(t, lexer.Float, toks[0].Kind)
			assert.InDelta(t, tc.want, toks[0].FloatVal, 1e-9)
		})
	}
}

func TestLexer_BytesLiteral(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `b"deadBEEF"`)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.Bytes, toks[0].Kind)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, toks[0].BytesVal)
}

func TestLexer_BytesLiteralOddDigitsFails(t *testing.T) {
	t.Parallel()

	l := lexer.New(`b"abc"`)
	_, err := l.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParseError)
}

func TestLexer_QuotedString(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `"hello\nworld A \"quoted\""`)
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.String, toks[0].Kind)
	assert.Equal(t, "hello\nworld A \"quoted\"", toks[0].Text)
}

func TestLexer_StringEscapeFailures(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"unknown escape":      `"\q"`,
		"truncated unicode":   `"\u12"`,
		"non-hex unicode":     `"\uZZZZ"`,
		"lone high surrogate": `"\uD800"`,
		"lone low surrogate":  `"\uDC00"`,
	}

	for name, src := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := lexer.New(src)
			_, err := l.Next()
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrParseError)
		})
	}
}

func TestLexer_SurrogatePairDecodes(t *testing.T) {
	t.Parallel()

	// U+1F600 GRINNING FACE as a surrogate pair.
	toks := lexAll(t, `"\`+`uD83D\`+`uDE00"`)
	require.Len(t, toks, 2)
	assert.Equal(t, "\U0001F600", toks[0].Text)
}

func TestLexer_UnterminatedStringFails(t *testing.T) {
	t.Parallel()

	l := lexer.New(`"no closing quote`)
	_, err := l.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParseError)
}

func TestLexer_MultilineString(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "\"\"\"\n  line one\n  line two\n\"\"\"")
	require.Len(t, toks, 2)
	assert.Equal(t, lexer.MultilineString, toks[0].Kind)
	assert.Equal(t, "\n  line one\n  line two\n", toks[0].Text)
}

func TestLexer_UnterminatedMultilineStringFails(t *testing.T) {
	t.Parallel()

	l := lexer.New(`"""no terminator`)
	_, err := l.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrParseError)
}

func TestLexer_Timestamp(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src        string
		wantMillis int64
		wantOffset int16
	}{
		"utc with Z":      {"2024-01-15T10:30:00Z", 1705314600000, 0},
		"positive offset": {"2024-01-15T10:30:00+02:00", 1705307400000, 120},
		"negative offset": {"2024-01-15T10:30:00-05:00", 1705332600000, -300},
		"epoch":           {"1970-01-01T00:00:00Z", 0, 0},
		"date only":       {"2024-01-15", 1705276800000, 0},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			toks := lexAll(t, tc.src)
			require.Len(t, toks, 2)
			require.Equal(t, lexer.Timestamp, toks[0].Kind)
			assert.Equal(t, tc.wantMillis, toks[0].TimestampMillis)
			assert.Equal(t, tc.wantOffset, toks[0].TimestampOffset)
		})
	}
}

func TestLexer_CommentsAreDiscarded(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "a # this is a comment\nb")
	require.Len(t, toks, 3)
	assert.Equal(t, "a", toks[0].Text)
	assert.Equal(t, "b", toks[1].Text)
}

func TestLexer_LineAndColumnTracking(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, "a\nb")
	require.Len(t, toks, 3)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 1, toks[1].Pos.Column)
}

func TestLexer_FourByteUtf8AndCombiningSequences(t *testing.T) {
	t.Parallel()

	toks := lexAll(t, `"😀 é 👨‍👩‍👧"`)
	require.Len(t, toks, 2)
	assert.Contains(t, toks[0].Text, "😀")
	assert.Contains(t, toks[0].Text, "é")
}
