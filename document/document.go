package document

import (
	"fmt"
	"os"

	"go.jacobcolvin.com/tlbx/binary"
	"go.jacobcolvin.com/tlbx/errs"
	"go.jacobcolvin.com/tlbx/jsonbridge"
	"go.jacobcolvin.com/tlbx/parser"
	"go.jacobcolvin.com/tlbx/textemit"
	"go.jacobcolvin.com/tlbx/value"
)

// Document wraps a [value.Document] with the operations an external
// collaborator needs — parse, load, convert, compile, emit, and lookup —
// so nothing outside this package has to import the lexer, parser, binary
// codec, or JSON bridge directly.
type Document struct {
	v *value.Document
}

func wrap(v *value.Document) *Document { return &Document{v: v} }

// ParseString parses src as text.
func ParseString(src string) (*Document, error) {
	v, err := parser.ParseString(src)
	if err != nil {
		return nil, err
	}

	return wrap(v), nil
}

// ParseFile parses the text file at path. @include directives resolve
// relative to path's directory.
func ParseFile(path string) (*Document, error) {
	v, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}

	return wrap(v), nil
}

// FromJSON converts JSON text to a Document, synthesizing struct schemas
// from uniform JSON object arrays per the §4.8 inference rule.
func FromJSON(data []byte) (*Document, error) {
	v, err := jsonbridge.FromJSON(data)
	if err != nil {
		return nil, err
	}

	jsonbridge.InferSchemas(v)

	return wrap(v), nil
}

// Load opens a binary document at path and decodes every section eagerly,
// returning a Document with the same lookup surface as one built by
// ParseString/ParseFile/FromJSON. Callers who only need a handful of
// sections from a large file should use [binary.Open] directly instead —
// Load exists for the common case of wanting one uniform type regardless
// of which form the document arrived in.
func Load(path string) (*Document, error) {
	r, err := binary.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return fromReader(r)
}

// LoadMmap is [Load] over a memory-mapped file; see [binary.OpenMmap].
func LoadMmap(path string) (*Document, error) {
	r, err := binary.OpenMmap(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return fromReader(r)
}

func fromReader(r *binary.Reader) (*Document, error) {
	v := value.NewDocument()
	v.SetRootArray(r.RootArray())

	for _, name := range r.SchemaNames() {
		s, _ := r.Schema(name)
		v.AddSchema(s)
	}

	for _, name := range r.UnionNames() {
		u, _ := r.Union(name)
		v.AddUnion(u)
	}

	for _, key := range r.Keys() {
		sv, _, err := r.Section(key)
		if err != nil {
			return nil, err
		}

		v.SetSection(key, sv)
	}

	return wrap(v), nil
}

// Compile renders d to its binary form and writes it to path.
func (d *Document) Compile(path string, opts binary.EncodeOptions) error {
	out, err := binary.Encode(d.v, opts)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("document: writing %s: %w", path, errs.ErrIo)
	}

	return nil
}

// EmitText renders d to its text form under opts.
func (d *Document) EmitText(opts textemit.Options) string {
	return textemit.Emit(d.v, opts)
}

// EmitJSON renders d to JSON under opts.
func (d *Document) EmitJSON(opts jsonbridge.Options) ([]byte, error) {
	return jsonbridge.ToJSON(d.v, opts)
}

// Section looks up a top-level value by key.
func (d *Document) Section(key string) (value.Value, bool) {
	return d.v.Section(key)
}

// Schema looks up a registered struct by name.
func (d *Document) Schema(name string) (*value.Schema, bool) {
	return d.v.Schema(name)
}

// SchemaNames returns all registered struct names in alphabetical order.
func (d *Document) SchemaNames() []string {
	return d.v.SchemaNames()
}

// Union looks up a registered union by name.
func (d *Document) Union(name string) (*value.Union, bool) {
	return d.v.Union(name)
}

// UnionNames returns all registered union names in alphabetical order.
func (d *Document) UnionNames() []string {
	return d.v.UnionNames()
}

// Keys enumerates top-level section names in declaration order.
func (d *Document) Keys() []string {
	return d.v.Keys()
}

// RootArray reports whether d represents a JSON-style root array.
func (d *Document) RootArray() bool {
	return d.v.RootArray()
}

// Value exposes the underlying value.Document for collaborators that need
// access beyond this facade's surface.
func (d *Document) Value() *value.Document {
	return d.v
}
