package lexer

import (
	"regexp"
	"strconv"
	"time"

	"go.jacobcolvin.com/tlbx/errs"
)

// isoTimestampPattern matches the ISO-8601 shapes the lexer reconstitutes
// as Timestamp values: a date, optionally followed by a time-of-day and
// an optional 'Z' or +/-HH:MM offset.
var isoTimestampPattern = regexp.MustCompile(
	`^(\d{4})-(\d{2})-(\d{2})` +
		`(?:T(\d{2}):(\d{2}):(\d{2})(?:\.(\d+))?(Z|[+-]\d{2}:\d{2})?)?`,
)

// matchTimestamp attempts to match an ISO-8601 timestamp at the start of
// remaining. On success it returns the number of bytes consumed and the
// decoded Unix-millisecond instant plus timezone offset in minutes.
func matchTimestamp(remaining string, pos errs.Position) (consumed int, millis int64, offsetMinutes int16, ok bool, err error) {
	m := isoTimestampPattern.FindStringSubmatchIndex(remaining)
	if m == nil {
		return 0, 0, 0, false, nil
	}

	matched := remaining[m[0]:m[1]]

	group := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}

		return remaining[m[2*i]:m[2*i+1]]
	}

	year, _ := strconv.Atoi(group(1))
	month, _ := strconv.Atoi(group(2))
	day, _ := strconv.Atoi(group(3))

	hour, minute, sec, nsec := 0, 0, 0, 0

	if group(4) != "" {
		hour, _ = strconv.Atoi(group(4))
		minute, _ = strconv.Atoi(group(5))
		sec, _ = strconv.Atoi(group(6))

		if frac := group(7); frac != "" {
			nsec, err = fractionToNanos(frac, pos)
			if err != nil {
				return 0, 0, 0, false, err
			}
		}
	}

	offsetMinutes = 0

	if offsetStr := group(8); offsetStr != "" && offsetStr != "Z" {
		offsetMinutes, err = parseOffset(offsetStr, pos)
		if err != nil {
			return 0, 0, 0, false, err
		}
	}

	wallUTC := time.Date(year, time.Month(month), day, hour, minute, sec, nsec, time.UTC)
	millis = wallUTC.UnixMilli() - int64(offsetMinutes)*60*1000

	return len(matched), millis, offsetMinutes, true, nil
}

func fractionToNanos(frac string, pos errs.Position) (int, error) {
	// Pad or truncate to 9 digits (nanosecond precision).
	for len(frac) < 9 {
		frac += "0"
	}

	frac = frac[:9]

	v, err := strconv.Atoi(frac)
	if err != nil {
		return 0, errs.Newf(errs.ParseError, pos, errs.MsgInvalidNumber, frac)
	}

	return v, nil
}

func parseOffset(s string, pos errs.Position) (int16, error) {
	// s is "+HH:MM" or "-HH:MM".
	sign := int16(1)
	if s[0] == '-' {
		sign = -1
	}

	hh, err1 := strconv.Atoi(s[1:3])
	mm, err2 := strconv.Atoi(s[4:6])

	if err1 != nil || err2 != nil {
		return 0, errs.Newf(errs.ParseError, pos, errs.MsgInvalidNumber, s)
	}

	return sign * int16(hh*60+mm), nil
}
