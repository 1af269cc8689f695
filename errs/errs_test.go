package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/tlbx/errs"
)

func TestPositionedError_UnwrapMatchesSentinel(t *testing.T) {
	t.Parallel()

	err := errs.Newf(errs.ParseError, errs.Position{Line: 3, Column: 5, Offset: 40}, "boom")

	require.ErrorIs(t, err, errs.ErrParseError)
	assert.NotErrorIs(t, err, errs.ErrUnexpectedEof)
}

func TestPositionedError_ErrorStringIncludesPosition(t *testing.T) {
	t.Parallel()

	err := errs.New(errs.UnexpectedEof, errs.Position{Line: 1, Column: 1}, "expected value")

	assert.Contains(t, err.Error(), "1:1")
	assert.Contains(t, err.Error(), "expected value")
	assert.Contains(t, err.Error(), string(errs.UnexpectedEof))
}

func TestSentinel_KnownCodes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		code errs.Code
		want error
	}{
		"io":               {errs.Io, errs.ErrIo},
		"invalid_magic":    {errs.InvalidMagic, errs.ErrInvalidMagic},
		"invalid_version":  {errs.InvalidVersion, errs.ErrInvalidVersion},
		"invalid_type":     {errs.InvalidType, errs.ErrInvalidType},
		"invalid_utf8":     {errs.InvalidUtf8, errs.ErrInvalidUtf8},
		"parse_error":      {errs.ParseError, errs.ErrParseError},
		"unexpected_token": {errs.UnexpectedToken, errs.ErrUnexpectedToken},
		"unexpected_eof":   {errs.UnexpectedEof, errs.ErrUnexpectedEof},
		"unknown_struct":   {errs.UnknownStruct, errs.ErrUnknownStruct},
		"missing_field":    {errs.MissingField, errs.ErrMissingField},
		"value_out_of_range": {
			errs.ValueOutOfRange, errs.ErrValueOutOfRange,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Same(t, tc.want, errs.Sentinel(tc.code))
		})
	}
}

func TestSentinel_UnknownCodeStillReturnsUsableError(t *testing.T) {
	t.Parallel()

	err := errs.Sentinel(errs.Code("made_up"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, err))
}

// TestMessageCatalog_Stability pins the exact rendering of each message
// format against one representative argument set. A change here is a
// breaking change to the error-message contract and must be deliberate.
func TestMessageCatalog_Stability(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format string
		args   []any
		want   string
	}{
		"unknown escape": {
			errs.MsgUnknownEscape, []any{'q'}, `unknown escape sequence '\q'`,
		},
		"truncated unicode escape": {
			errs.MsgTruncatedUnicodeEscape, nil, `truncated \u escape, expected 4 hex digits`,
		},
		"lone surrogate": {
			errs.MsgLoneSurrogate, []any{0xD800}, `lone surrogate \uD800 in string escape`,
		},
		"integer overflow": {
			errs.MsgIntegerOverflow, []any{"99999999999999999999"},
			`integer literal "99999999999999999999" out of i64/u64 range`,
		},
		"odd hex digits": {
			errs.MsgOddHexDigits, []any{"abc"}, `bytes literal "abc" has an odd number of hex digits`,
		},
		"unknown struct": {
			errs.MsgUnknownStruct, []any{"Widget"}, `undefined struct "Widget" referenced by @table`,
		},
		"arity mismatch": {
			errs.MsgArityMismatch, []any{2, "Point", 3}, `tuple has 2 element(s), schema "Point" expects 3`,
		},
		"include cycle": {
			errs.MsgIncludeCycle, []any{"b.tl"}, `include cycle detected: "b.tl" already on the include stack`,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, fmt.Sprintf(tc.format, tc.args...))
		})
	}
}
