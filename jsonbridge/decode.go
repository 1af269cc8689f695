package jsonbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/value"
)

// FromJSON parses data as JSON and returns the resulting Document. A root
// object's members become top-level sections in source order; a root array
// is wrapped into sections keyed "0", "1", … with the root-array flag set.
//
// Object key order is read token-by-token rather than through a
// map[string]interface{} decode, since Go's encoding/json does not
// preserve object key order through that shape and §5 requires it end to
// end.
func FromJSON(data []byte) (*value.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}

	doc := value.NewDocument()

	switch root.Kind() {
	case value.KindObject:
		root.Object().Range(func(key string, v value.Value) bool {
			doc.SetSection(key, v)

			return true
		})
	case value.KindArray:
		doc.SetRootArray(true)

		for i, item := range root.Array() {
			doc.SetSection(strconv.Itoa(i), item)
		}
	default:
		return nil, fmt.Errorf("jsonbridge: root must be an object or array: %w", errs.ErrInvalidType)
	}

	return doc, nil
}

// decodeValue reads one JSON value from dec using token-based descent so
// object key order survives the round trip.
func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return value.Null, fmt.Errorf("jsonbridge: reading token: %w", errs.ErrIo)
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case nil:
		return value.Null, nil
	case bool:
		return value.NewBool(t), nil
	case string:
		return value.NewString(t), nil
	case json.Number:
		return numberToValue(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return value.Null, fmt.Errorf("jsonbridge: unexpected delimiter %q: %w", t, errs.ErrInvalidType)
		}
	default:
		return value.Null, fmt.Errorf("jsonbridge: unsupported token %T: %w", tok, errs.ErrInvalidType)
	}
}

func decodeObject(dec *json.Decoder) (value.Value, error) {
	obj := value.NewObject()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return value.Null, fmt.Errorf("jsonbridge: reading object key: %w", errs.ErrIo)
		}

		key, ok := keyTok.(string)
		if !ok {
			return value.Null, fmt.Errorf("jsonbridge: object key is not a string: %w", errs.ErrInvalidType)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return value.Null, err
		}

		obj.Set(key, v)
	}

	if _, err := dec.Token(); err != nil { // consume closing '}'
		return value.Null, fmt.Errorf("jsonbridge: reading object close: %w", errs.ErrIo)
	}

	return value.NewObject(obj), nil
}

func decodeArray(dec *json.Decoder) (value.Value, error) {
	var items []value.Value

	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return value.Null, err
		}

		items = append(items, v)
	}

	if _, err := dec.Token(); err != nil { // consume closing ']'
		return value.Null, fmt.Errorf("jsonbridge: reading array close: %w", errs.ErrIo)
	}

	return value.NewArray(items), nil
}

// numberToValue classifies a JSON number literal per §4.8: integers within
// i64 range become Int, positive integers beyond it but within u64 range
// become UInt, literals whose canonical decimal re-serialization matches
// the source digits exactly become Float, and everything else (trailing
// zeros, exponent forms, or anything that would lose precision as a
// float64) is preserved verbatim as JsonNumber.
//
// The canonical-form check has to be a string comparison, not a numeric
// one: "2.0" and "2" parse to the identical float64, but re-emitting a
// Float always writes the shortest round-trip form ("2"), so accepting
// "2.0" here would silently change the literal on the way back out to
// JSON.
func numberToValue(num json.Number) value.Value {
	digits := string(num)

	if i, err := strconv.ParseInt(digits, 10, 64); err == nil {
		return value.NewInt(i)
	}

	if u, err := strconv.ParseUint(digits, 10, 64); err == nil {
		return value.NewUInt(u)
	}

	f, err := strconv.ParseFloat(digits, 64)
	if err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		if strconv.FormatFloat(f, 'g', -1, 64) == digits {
			return value.NewFloat(f)
		}
	}

	return value.NewJsonNumber(digits)
}
