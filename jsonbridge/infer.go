package jsonbridge

import (
	"sort"
	"strings"

	"go.jacobcolvin.com/tlbx/value"
)

// InferSchemas walks every top-level array section of doc and, where its
// elements are uniform JSON objects, registers a synthesized Schema for
// them per §4.8 — the array itself is left untouched (still an Array of
// Objects); registering the Schema is what lets the text emitter and
// binary encoder recognize it as a table downstream. Arrays that don't
// qualify (non-uniform key sets, an un-widenable mix of scalar and object
// elements) are left as plain Arrays of Objects, matching the spec's
// "inference failures ... fall back to a plain Array of Objects" rule.
func InferSchemas(doc *value.Document) {
	for _, key := range doc.Keys() {
		v, _ := doc.Section(key)
		if v.Kind() != value.KindArray {
			continue
		}

		inferArraySchema(doc, key, v.Array())
	}
}

func inferArraySchema(doc *value.Document, parentKey string, items []value.Value) (string, bool) {
	objs := make([]*value.Object, 0, len(items))

	for _, item := range items {
		if item.Kind() != value.KindObject {
			return "", false
		}

		objs = append(objs, item.Object())
	}

	if len(objs) == 0 {
		return "", false
	}

	keys, ok := uniformKeys(objs)
	if !ok {
		return "", false
	}

	name := singularize(parentKey)

	fields := make([]value.Field, 0, len(keys))

	for _, key := range keys {
		field, ok := inferField(doc, key, objs)
		if !ok {
			return "", false
		}

		fields = append(fields, field)
	}

	if _, exists := doc.Schema(name); exists {
		return name, true
	}

	doc.AddSchema(&value.Schema{Name: name, Fields: fields})

	return name, true
}

// uniformKeys returns the sorted key set shared by every object, or
// ok=false if any object's key set differs.
func uniformKeys(objs []*value.Object) ([]string, bool) {
	first := sortedKeys(objs[0])

	for _, o := range objs[1:] {
		if !sameKeys(first, sortedKeys(o)) {
			return nil, false
		}
	}

	return first, true
}

func sortedKeys(o *value.Object) []string {
	keys := append([]string(nil), o.Keys()...)
	sort.Strings(keys)

	return keys
}

func sameKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// inferField determines one field's declared type and nullability across
// every object carrying key, widening scalar type mismatches the way
// mergeSchemas/widenType do (int + float -> float), recursing into nested
// object/array-of-object values to synthesize their own referenced
// Schemas.
func inferField(doc *value.Document, key string, objs []*value.Object) (value.Field, bool) {
	nullable := false

	var (
		widened  value.Kind
		sawKind  bool
		objElems []value.Value
		arrElems [][]value.Value
		nScalar  int
	)

	for _, o := range objs {
		v, _ := o.Get(key)

		if v.IsNull() {
			nullable = true

			continue
		}

		switch v.Kind() {
		case value.KindObject:
			objElems = append(objElems, v)
		case value.KindArray:
			arrElems = append(arrElems, v.Array())
		default:
			nScalar++

			if !sawKind {
				widened = v.Kind()
				sawKind = true
			} else {
				w, ok := widenScalarKind(widened, v.Kind())
				if !ok {
					return value.Field{}, false
				}

				widened = w
			}
		}
	}

	kinds := 0
	for _, n := range []int{len(objElems), len(arrElems), nScalar} {
		if n > 0 {
			kinds++
		}
	}

	switch {
	case kinds > 1:
		// Mixed scalar/object/array across elements: no single shape to bind.
		return value.Field{}, false
	case len(objElems) > 0:
		name, ok := inferArraySchema(doc, key, objElems)
		if !ok {
			return value.Field{}, false
		}

		return value.Field{Name: key, Type: name, Nullable: nullable}, true
	case len(arrElems) > 0:
		return inferArrayField(doc, key, arrElems, nullable)
	case sawKind:
		return value.Field{Name: key, Type: scalarTypeName(widened), Nullable: nullable}, true
	default:
		// Every element was null; the field carries no type information.
		return value.Field{Name: key, Type: "object", Nullable: true}, true
	}
}

func inferArrayField(doc *value.Document, key string, arrs [][]value.Value, nullable bool) (value.Field, bool) {
	var flat []value.Value
	for _, a := range arrs {
		flat = append(flat, a...)
	}

	if len(flat) == 0 {
		return value.Field{Name: key, Type: "object", IsArray: true, Nullable: nullable}, true
	}

	allObjects := true

	for _, v := range flat {
		if v.Kind() != value.KindObject {
			allObjects = false

			break
		}
	}

	if allObjects {
		name, ok := inferArraySchema(doc, key, flat)
		if !ok {
			return value.Field{}, false
		}

		return value.Field{Name: key, Type: name, IsArray: true, Nullable: nullable}, true
	}

	widened := flat[0].Kind()

	for _, v := range flat[1:] {
		w, ok := widenScalarKind(widened, v.Kind())
		if !ok {
			return value.Field{}, false
		}

		widened = w
	}

	return value.Field{Name: key, Type: scalarTypeName(widened), IsArray: true, Nullable: nullable}, true
}

// widenScalarKind mirrors the teacher's widenType for the two cases that
// recur in real JSON data: identical kinds pass through, and Int widens
// with Float to Float. Null is handled by the caller before this is
// reached (it only ever sets nullable, never participates in widening).
// Every other combination is rejected rather than silently picking a side.
func widenScalarKind(a, b value.Kind) (value.Kind, bool) {
	if a == b {
		return a, true
	}

	if (a == value.KindInt && b == value.KindFloat) || (a == value.KindFloat && b == value.KindInt) {
		return value.KindFloat, true
	}

	return 0, false
}

func scalarTypeName(k value.Kind) string {
	switch k {
	case value.KindBool:
		return "bool"
	case value.KindInt:
		return "int"
	case value.KindUInt:
		return "uint"
	case value.KindFloat:
		return "float"
	case value.KindString:
		return "string"
	default:
		return "object"
	}
}

// singularize drops a single trailing "s" from the parent key, falling
// back to the parent key unchanged when it doesn't end in one.
func singularize(key string) string {
	if strings.HasSuffix(key, "s") && len(key) > 1 {
		return key[:len(key)-1]
	}

	return key
}
