package lexer

import (
	"math"
	"strconv"

	"go.jacobcolvin.com/tlbx/errs"
)

// parsedNumber is the decoded result of a numeric literal scan, before it
// is packed into a [Token].
type parsedNumber struct {
	kind     Kind
	intVal   int64
	uintVal  uint64
	floatVal float64
}

// parseDecimal parses the digits of a base-10 literal (text, which may
// carry a leading '-', a '.', and/or an exponent) into a [parsedNumber].
// isFloat must be true iff a '.' or exponent was observed during scanning.
func parseDecimal(text string, isFloat bool, pos errs.Position) (parsedNumber, error) {
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return parsedNumber{}, errs.Newf(errs.ParseError, pos, errs.MsgInvalidNumber, text)
		}

		return parsedNumber{kind: Float, floatVal: f}, nil
	}

	if text[0] == '-' {
		i, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return parsedNumber{}, errs.Newf(errs.ParseError, pos, errs.MsgIntegerOverflow, text)
		}

		return parsedNumber{kind: Int, intVal: i}, nil
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return parsedNumber{kind: Int, intVal: i}, nil
	}

	u, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return parsedNumber{}, errs.Newf(errs.ParseError, pos, errs.MsgIntegerOverflow, text)
	}

	return parsedNumber{kind: UInt, uintVal: u}, nil
}

// parseRadix parses the digits (without the "0x"/"0b" prefix) of a hex or
// binary literal, applying the optional sign separately since Go's
// strconv does not accept a sign on unsigned parses.
func parseRadix(digits string, base int, negative bool, pos errs.Position) (parsedNumber, error) {
	mag, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return parsedNumber{}, errs.Newf(errs.ParseError, pos, errs.MsgIntegerOverflow, digits)
	}

	if !negative {
		if mag > math.MaxInt64 {
			return parsedNumber{kind: UInt, uintVal: mag}, nil
		}

		return parsedNumber{kind: Int, intVal: int64(mag)}, nil
	}

	// math.MinInt64's magnitude (2^63) is the one negative value one past
	// math.MaxInt64; everything larger overflows a negated int64.
	if mag > uint64(math.MaxInt64)+1 {
		return parsedNumber{}, errs.Newf(errs.ParseError, pos, errs.MsgIntegerOverflow, digits)
	}

	return parsedNumber{kind: Int, intVal: -int64(mag)}, nil
}
