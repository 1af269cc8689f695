package parser

import (
	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/lexer"
	"go.jacobcolvin.com/tlbx/value"
)

// parseBoundTuple parses a parenthesized tuple and binds it to the schema
// named schemaName, producing an Object keyed by field name.
//
// Binding is positional: the tuple's Nth element fills the schema's Nth
// field. A `~` at a field slot is dropped from the result when the field is
// nullable (the field ends up absent, matching an omitted JSON key) and
// preserved as Null when the field is not nullable; an explicit `null`
// keyword is always preserved as Null. This placeholder distinction is what
// lets `{"email": null}` round-trip differently from a missing `email` key
// through the binary form.
//
// When a field's declared type is a user struct, or `[]` of one, the
// corresponding tuple element is itself bound recursively to that struct's
// schema (see [Parser.parseFieldValue]) — binding is not limited to the
// outermost row of an `@table`.
func (p *Parser) parseBoundTuple(schemaName string) (value.Value, error) {
	schema, ok := p.doc.Schema(schemaName)
	if !ok {
		return value.Null, errs.Newf(errs.UnknownStruct, p.cur.Pos, errs.MsgUnknownStruct, schemaName)
	}

	if _, err := p.expect(lexer.LParen); err != nil {
		return value.Null, err
	}

	o := value.NewObjectWithCapacity(schema.FieldCount())

	idx := 0

	for p.cur.Kind != lexer.RParen {
		if idx >= schema.FieldCount() {
			return value.Null, errs.Newf(errs.MissingField, p.cur.Pos, errs.MsgArityMismatch, idx+1, schemaName, schema.FieldCount())
		}

		field := schema.Fields[idx]

		switch {
		case p.cur.Kind == lexer.Tilde:
			if err := p.advance(); err != nil {
				return value.Null, err
			}

			if !field.Nullable {
				o.Set(field.Name, value.Null)
			}
		default:
			v, err := p.parseFieldValue(field)
			if err != nil {
				return value.Null, err
			}

			o.Set(field.Name, v)
		}

		idx++

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RParen); err != nil {
		return value.Null, err
	}

	if idx != schema.FieldCount() {
		return value.Null, errs.Newf(errs.MissingField, p.cur.Pos, errs.MsgArityMismatch, idx, schemaName, schema.FieldCount())
	}

	return value.NewObject(o), nil
}

// parseFieldValue parses the value occupying one positional slot of a
// schema-bound tuple, recursing into schema binding when field names a
// user struct (directly, or as `[]Struct`).
func (p *Parser) parseFieldValue(field value.Field) (value.Value, error) {
	if field.ExtraRef == "" {
		return p.parseValue()
	}

	if field.IsArray {
		if p.cur.Kind != lexer.LBracket {
			return p.parseValue()
		}

		return p.parseBoundTupleArray(field.ExtraRef)
	}

	if p.cur.Kind != lexer.LParen {
		return p.parseValue()
	}

	return p.parseBoundTuple(field.ExtraRef)
}

// parseBoundTupleArray parses `[ tuple, tuple, … ]` where every element is
// a tuple bound to schemaName. Used for `@table` sections and for
// `[]Struct`-typed fields within an already-bound tuple.
func (p *Parser) parseBoundTupleArray(schemaName string) (value.Value, error) {
	if _, err := p.expect(lexer.LBracket); err != nil {
		return value.Null, err
	}

	var items []value.Value

	for p.cur.Kind != lexer.RBracket {
		v, err := p.parseBoundTuple(schemaName)
		if err != nil {
			return value.Null, err
		}

		items = append(items, v)

		if err := p.skipComma(); err != nil {
			return value.Null, err
		}
	}

	if _, err := p.expect(lexer.RBracket); err != nil {
		return value.Null, err
	}

	return value.NewArray(items), nil
}
