package textemit

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// keywords collides with a bare name if written unquoted, since the lexer
// would tokenize it as a keyword instead of an identifier.
var keywords = map[string]bool{
	"true": true, "false": true, "null": true, "NaN": true, "inf": true,
}

func isNameStart(r byte) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isNameContinue(r byte) bool {
	return isNameStart(r) || (r >= '0' && r <= '9') || r == '-' || r == '.'
}

// canBeBareName reports whether s can be written as an unquoted key: it
// must match the lexer's identifier grammar exactly and not collide with a
// keyword.
func canBeBareName(s string) bool {
	if s == "" || keywords[s] {
		return false
	}

	if !isNameStart(s[0]) {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !isNameContinue(s[i]) {
			return false
		}
	}

	return true
}

// emitName writes s as a bare identifier when possible, else as a quoted
// string.
func emitName(b *strings.Builder, s string) {
	if canBeBareName(s) {
		b.WriteString(s)

		return
	}

	emitQuotedString(b, s)
}

// emitQuotedString writes s as a double-quoted string literal with the
// lexer's recognized escapes.
func emitQuotedString(b *strings.Builder, s string) {
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('"')
}

// emitBytesLiteral writes b"<lowercase-hex>".
func emitBytesLiteral(b *strings.Builder, raw []byte) {
	b.WriteString(`b"`)
	b.WriteString(strings.ToLower(hexEncode(raw)))
	b.WriteByte('"')
}

func hexEncode(raw []byte) string {
	const hexDigits = "0123456789abcdef"

	out := make([]byte, len(raw)*2)

	for i, c := range raw {
		out[2*i] = hexDigits[c>>4]
		out[2*i+1] = hexDigits[c&0x0F]
	}

	return string(out)
}

// emitFloat renders f as a float literal, or — under [Options.CompactFloats]
// — as a bare integer when f is a whole number representable with at most
// 15 significant digits.
func emitFloat(b *strings.Builder, f float64, compact bool) {
	if compact && isCompactibleWholeFloat(f) {
		b.WriteString(strconv.FormatFloat(f, 'f', 0, 64))

		return
	}

	b.WriteString(formatFloatCanonical(f))
}

func isCompactibleWholeFloat(f float64) bool {
	if math.IsNaN(f) || f > 1e15 || f < -1e15 { // NaN, ±Inf, or out of 15-significant-digit range
		return false
	}

	return f == float64(int64(f))
}

// formatFloatCanonical renders NaN/±Inf as the lexer's keyword spellings
// and every other value with 'g' formatting, guaranteeing at least one
// fractional digit so the literal re-lexes as Float rather than Int.
func formatFloatCanonical(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}

	return s
}

// formatTimestamp renders millis/offsetMinutes in canonical ISO-8601 with
// milliseconds when non-zero, in the document's stored offset (not UTC).
func formatTimestamp(millis int64, offsetMinutes int16) string {
	loc := time.FixedZone("", int(offsetMinutes)*60)
	t := time.UnixMilli(millis).In(loc)

	base := fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())

	if ms := t.Nanosecond() / int(time.Millisecond); ms != 0 {
		base += fmt.Sprintf(".%03d", ms)
	}

	if offsetMinutes == 0 {
		return base + "Z"
	}

	sign := "+"

	abs := offsetMinutes
	if abs < 0 {
		sign = "-"
		abs = -abs
	}

	return fmt.Sprintf("%s%s%02d:%02d", base, sign, abs/60, abs%60)
}
