package lexer

import (
	"strconv"
	"strings"

	"go.jacobcolvin.com/tlbx/errs"
)

// decodeEscapes resolves backslash escapes in raw (the bytes between the
// opening and closing quotes, exclusive) and returns the decoded string.
// pos is the position of the opening quote, used to anchor error
// locations approximately (escape errors within very long strings do not
// track a separate column per escape; this matches the lexer's
// single-pass design).
func decodeEscapes(raw string, pos errs.Position) (string, error) {
	if !strings.ContainsRune(raw, '\\') {
		return raw, nil
	}

	var b strings.Builder

	b.Grow(len(raw))

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' {
			b.WriteRune(r)

			continue
		}

		i++
		if i >= len(runes) {
			return "", errs.New(errs.ParseError, pos, errs.MsgUnterminatedString)
		}

		switch runes[i] {
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'u':
			consumed, decoded, err := decodeUnicodeEscape(runes, i+1, pos)
			if err != nil {
				return "", err
			}

			b.WriteRune(decoded)
			i += consumed

		default:
			return "", errs.Newf(errs.ParseError, pos, errs.MsgUnknownEscape, runes[i])
		}
	}

	return b.String(), nil
}

// decodeUnicodeEscape decodes one \uXXXX escape (or a surrogate pair of
// two) starting at runes[start]. It returns how many runes beyond the "u"
// were consumed and the decoded code point.
func decodeUnicodeEscape(runes []rune, start int, pos errs.Position) (int, rune, error) {
	first, err := readHex4(runes, start, pos)
	if err != nil {
		return 0, 0, err
	}

	const (
		highSurrogateLo = 0xD800
		highSurrogateHi = 0xDBFF
		lowSurrogateLo  = 0xDC00
		lowSurrogateHi  = 0xDFFF
	)

	switch {
	case first >= highSurrogateLo && first <= highSurrogateHi:
		// Need a following \uXXXX low surrogate to complete the pair.
		if start+4+2 > len(runes) || runes[start+4] != '\\' || runes[start+4+1] != 'u' {
			return 0, 0, errs.Newf(errs.ParseError, pos, errs.MsgLoneSurrogate, first)
		}

		second, err := readHex4(runes, start+4+2, pos)
		if err != nil {
			return 0, 0, err
		}

		if second < lowSurrogateLo || second > lowSurrogateHi {
			return 0, 0, errs.Newf(errs.ParseError, pos, errs.MsgLoneSurrogate, first)
		}

		r := rune(0x10000 + (first-highSurrogateLo)*0x400 + (second - lowSurrogateLo))

		return 4 + 2 + 4, r, nil

	case first >= lowSurrogateLo && first <= lowSurrogateHi:
		return 0, 0, errs.Newf(errs.ParseError, pos, errs.MsgLoneSurrogate, first)

	default:
		return 4, first, nil
	}
}

func readHex4(runes []rune, start int, pos errs.Position) (rune, error) {
	if start+4 > len(runes) {
		return 0, errs.New(errs.ParseError, pos, errs.MsgTruncatedUnicodeEscape)
	}

	digits := string(runes[start : start+4])

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, errs.Newf(errs.ParseError, pos, errs.MsgInvalidUnicodeEscape, digits)
	}

	return rune(v), nil
}
