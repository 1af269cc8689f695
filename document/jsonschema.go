package document

import (
	"fmt"
	"sort"

	"github.com/google/jsonschema-go/jsonschema"

	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/value"
)

// SchemaKind selects which of a Document's two catalogs [Document.ExportJSONSchema] reads from.
type SchemaKind uint8

const (
	SchemaKindStruct SchemaKind = iota
	SchemaKindUnion
)

// ExportJSONSchema converts one registered struct or union into a Draft-7
// JSON Schema: nullable fields widen to a two-element Types union with
// "null", "[]T" fields become an Items schema, and struct/union-typed
// fields are inlined as nested sub-schemas rather than emitted as $ref —
// there's exactly one document's worth of definitions in play, so a
// separate $defs section would only add indirection.
func (d *Document) ExportJSONSchema(kind SchemaKind, name string) (*jsonschema.Schema, error) {
	switch kind {
	case SchemaKindStruct:
		s, ok := d.v.Schema(name)
		if !ok {
			return nil, fmt.Errorf("document: no struct named %q: %w", name, errs.ErrUnknownStruct)
		}

		return d.structJSONSchema(s), nil
	case SchemaKindUnion:
		u, ok := d.v.Union(name)
		if !ok {
			return nil, fmt.Errorf("document: no union named %q: %w", name, errs.ErrUnknownStruct)
		}

		return d.unionJSONSchema(u), nil
	default:
		return nil, fmt.Errorf("document: unknown schema kind %d: %w", kind, errs.ErrInvalidType)
	}
}

func (d *Document) structJSONSchema(s *value.Schema) *jsonschema.Schema {
	props := make(map[string]*jsonschema.Schema, len(s.Fields))

	var required []string

	for _, f := range s.Fields {
		props[f.Name] = d.fieldJSONSchema(f)

		if !f.Nullable {
			required = append(required, f.Name)
		}
	}

	sort.Strings(required)

	return &jsonschema.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: falseJSONSchema(),
	}
}

func (d *Document) unionJSONSchema(u *value.Union) *jsonschema.Schema {
	variants := make([]*jsonschema.Schema, 0, len(u.Variants))

	for _, va := range u.Variants {
		variants = append(variants, d.structJSONSchema(&value.Schema{Name: va.Name, Fields: va.Fields}))
	}

	return &jsonschema.Schema{OneOf: variants}
}

func (d *Document) fieldJSONSchema(f value.Field) *jsonschema.Schema {
	base := d.baseFieldJSONSchema(f)

	if f.IsArray {
		base = &jsonschema.Schema{Type: "array", Items: base}
	}

	if f.Nullable {
		t := scalarType(base)
		if t != "" {
			base.Type = ""
			base.Types = []string{t, "null"}
		}
	}

	return base
}

func (d *Document) baseFieldJSONSchema(f value.Field) *jsonschema.Schema {
	switch f.Type {
	case "string", "bytes", "timestamp":
		return &jsonschema.Schema{Type: "string"}
	case "int", "uint":
		return &jsonschema.Schema{Type: "integer"}
	case "float":
		return &jsonschema.Schema{Type: "number"}
	case "bool":
		return &jsonschema.Schema{Type: "boolean"}
	case "object":
		return trueJSONSchema()
	default:
		if s, ok := d.v.Schema(f.Type); ok {
			return d.structJSONSchema(s)
		}

		if u, ok := d.v.Union(f.Type); ok {
			return d.unionJSONSchema(u)
		}

		return trueJSONSchema()
	}
}

// scalarType returns s.Type (set by [Document.baseFieldJSONSchema] for
// every primitive field, and "object"/"array" for struct and array
// sub-schemas) so nullability can widen it into a Types union. Union and
// untyped sub-schemas have an empty Type and are left as they are.
func scalarType(s *jsonschema.Schema) string {
	return s.Type
}

func trueJSONSchema() *jsonschema.Schema  { return &jsonschema.Schema{} }
func falseJSONSchema() *jsonschema.Schema { return &jsonschema.Schema{Not: &jsonschema.Schema{}} }
