package jsonbridge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.jacobcolvin.com/tlbx/value"
)

// Options controls [ToJSON].
type Options struct {
	// Pretty indents nested structures two spaces per level. Compact
	// (the zero value) writes no insignificant whitespace.
	Pretty bool
}

// ToJSON renders doc's top-level sections as a JSON object, or — when
// doc.RootArray() is set — as a JSON array in key order ("0", "1", …).
func ToJSON(doc *value.Document, opts Options) ([]byte, error) {
	w := &jsonWriter{opts: opts}

	if doc.RootArray() {
		keys := doc.Keys()
		items := make([]value.Value, len(keys))

		for i, k := range keys {
			v, _ := doc.Section(k)
			items[i] = v
		}

		w.writeArray(items)
	} else {
		w.writeByte('{')
		w.indent(1)

		for i, key := range doc.Keys() {
			if i > 0 {
				w.writeByte(',')
			}

			w.newlineIndent(1)

			v, _ := doc.Section(key)
			w.writeJSONString(key)
			w.writeByte(':')
			w.writeSpace()
			w.writeValue(v)
		}

		w.indent(-1)
		w.newlineIndent(0)
		w.writeByte('}')
	}

	if w.err != nil {
		return nil, w.err
	}

	return w.buf.Bytes(), nil
}

type jsonWriter struct {
	buf   bytes.Buffer
	opts  Options
	depth int
	err   error
}

func (w *jsonWriter) writeByte(b byte) { w.buf.WriteByte(b) }

func (w *jsonWriter) writeSpace() {
	if w.opts.Pretty {
		w.buf.WriteByte(' ')
	}
}

func (w *jsonWriter) indent(delta int) { w.depth += delta }

func (w *jsonWriter) newlineIndent(depth int) {
	if !w.opts.Pretty {
		return
	}

	w.buf.WriteByte('\n')

	for i := 0; i < depth; i++ {
		w.buf.WriteString("  ")
	}
}

func (w *jsonWriter) writeJSONString(s string) {
	b, err := json.Marshal(s)
	if err != nil {
		w.err = fmt.Errorf("jsonbridge: encoding string: %w", err)

		return
	}

	w.buf.Write(b)
}

// writeValue dispatches on Kind, implementing the §4.8 Value→JSON mapping:
// primitives map natively, NaN/±Inf collapse to null, Bytes become a
// "0x"-prefixed lowercase hex string, Timestamp becomes an ISO-8601 UTC
// string with milliseconds, Map becomes an array of [key, value] pairs,
// Ref becomes {"$ref": name}, and Tagged becomes {"$tag": name, "$value": v}.
func (w *jsonWriter) writeValue(v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		w.buf.WriteString("null")
	case value.KindBool:
		if v.Bool() {
			w.buf.WriteString("true")
		} else {
			w.buf.WriteString("false")
		}
	case value.KindInt:
		w.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case value.KindUInt:
		w.buf.WriteString(strconv.FormatUint(v.UInt(), 10))
	case value.KindFloat:
		w.writeFloat(v.Float())
	case value.KindJsonNumber:
		w.buf.WriteString(v.JsonNumber())
	case value.KindString:
		w.writeJSONString(v.Str())
	case value.KindBytes:
		w.writeJSONString("0x" + fmt.Sprintf("%x", v.Bytes()))
	case value.KindTimestamp:
		w.writeJSONString(formatTimestampUTC(v.Timestamp()))
	case value.KindArray:
		w.writeArray(v.Array())
	case value.KindObject:
		w.writeObject(v.Object())
	case value.KindMap:
		w.writeMap(v.Map())
	case value.KindRef:
		w.writeByte('{')
		w.writeJSONString("$ref")
		w.writeByte(':')
		w.writeSpace()
		w.writeJSONString(v.RefName())
		w.writeByte('}')
	case value.KindTagged:
		tag, inner := v.Tagged()

		w.writeByte('{')
		w.writeJSONString("$tag")
		w.writeByte(':')
		w.writeSpace()
		w.writeJSONString(tag)
		w.writeByte(',')
		w.writeSpace()
		w.writeJSONString("$value")
		w.writeByte(':')
		w.writeSpace()
		w.writeValue(inner)
		w.writeByte('}')
	default:
		w.buf.WriteString("null")
	}
}

func (w *jsonWriter) writeFloat(f float64) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		w.buf.WriteString("null")

		return
	}

	w.buf.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
}

func (w *jsonWriter) writeArray(items []value.Value) {
	w.writeByte('[')
	w.indent(1)

	for i, item := range items {
		if i > 0 {
			w.writeByte(',')
		}

		w.newlineIndent(w.depth)
		w.writeValue(item)
	}

	w.indent(-1)

	if len(items) > 0 {
		w.newlineIndent(w.depth)
	}

	w.writeByte(']')
}

func (w *jsonWriter) writeObject(o *value.Object) {
	w.writeByte('{')
	w.indent(1)

	i := 0

	o.Range(func(key string, v value.Value) bool {
		if i > 0 {
			w.writeByte(',')
		}

		w.newlineIndent(w.depth)
		w.writeJSONString(key)
		w.writeByte(':')
		w.writeSpace()
		w.writeValue(v)
		i++

		return true
	})

	w.indent(-1)

	if o.Len() > 0 {
		w.newlineIndent(w.depth)
	}

	w.writeByte('}')
}

func (w *jsonWriter) writeMap(entries []value.MapEntry) {
	pairs := make([]value.Value, len(entries))
	for i, e := range entries {
		pairs[i] = value.NewArray([]value.Value{e.Key, e.Value})
	}

	w.writeArray(pairs)
}

func formatTimestampUTC(millis int64, _ int16) string {
	return time.UnixMilli(millis).UTC().Format("2006-01-02T15:04:05.000Z")
}
