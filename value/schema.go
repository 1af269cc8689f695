package value

// PrimitiveTypeNames lists the base-type names a Field's Type may name
// directly (as opposed to referencing a user struct by name).
var PrimitiveTypeNames = []string{"string", "int", "uint", "float", "bool", "bytes", "timestamp"}

// IsPrimitiveType reports whether name is one of [PrimitiveTypeNames].
func IsPrimitiveType(name string) bool {
	for _, p := range PrimitiveTypeNames {
		if p == name {
			return true
		}
	}

	return false
}

// Field describes one positional member of a [Schema] or [Variant]. Type
// names are either a primitive base type ("string", "int", "uint",
// "float", "bool", "bytes", "timestamp"), the untyped "object", the name
// of a user struct, or that name wrapped as an array (IsArray true).
type Field struct {
	Name string
	Type string

	// Nullable marks whether the field tolerates an explicit null distinct
	// from an absent field. See the `~` vs `null` tuple-binding rule.
	Nullable bool

	// IsArray marks a "[]Type" field.
	IsArray bool

	// ExtraRef names the referenced struct (for Type == a struct name) or
	// the referenced union (for tagged fields). Empty when the field's
	// type needs no cross-reference.
	ExtraRef string
}

// Schema is a named, ordered list of [Field]s registered by an `@struct`
// directive. Positional tuples bound to a Schema become Objects keyed by
// field name.
type Schema struct {
	Name   string
	Fields []Field
}

// FieldCount returns len(s.Fields), or 0 for a nil Schema.
func (s *Schema) FieldCount() int {
	if s == nil {
		return 0
	}

	return len(s.Fields)
}

// FieldByName returns the field named name and whether it was found.
func (s *Schema) FieldByName(name string) (Field, bool) {
	if s == nil {
		return Field{}, false
	}

	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}

	return Field{}, false
}

// Variant is one named alternative of a [Union], carrying its own field
// list using the same shape as a Schema's fields.
type Variant struct {
	Name   string
	Fields []Field
}

// Union is a named, ordered list of [Variant]s registered by an `@union`
// directive.
type Union struct {
	Name     string
	Variants []Variant
}

// VariantByName returns the variant named name and whether it was found.
func (u *Union) VariantByName(name string) (Variant, bool) {
	if u == nil {
		return Variant{}, false
	}

	for _, va := range u.Variants {
		if va.Name == name {
			return va, true
		}
	}

	return Variant{}, false
}
