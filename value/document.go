package value

import (
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Document is the top-level container produced by the parser or the JSON
// bridge: an insertion-ordered map of section name to [Value], a registry
// of schemas and unions by name, a root-array flag, and a single-namespace
// table of reference definitions.
//
// A Document exclusively owns the Values, Schemas, Unions, and references
// reachable from it; there is no shared-mutable state across Documents.
type Document struct {
	sections  *orderedmap.OrderedMap[string, Value]
	schemas   map[string]*Schema
	unions    map[string]*Union
	refs      map[string]Value
	rootArray bool
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{
		sections: orderedmap.New[string, Value](),
		schemas:  make(map[string]*Schema),
		unions:   make(map[string]*Union),
		refs:     make(map[string]Value),
	}
}

// SetSection inserts or overwrites the top-level section named key. Per
// the duplicate-key policy, a later call for the same key overwrites the
// earlier value without disturbing its position in iteration order.
func (d *Document) SetSection(key string, v Value) {
	d.sections.Set(key, v)
}

// Section returns the section named key and whether it was present.
func (d *Document) Section(key string) (Value, bool) {
	return d.sections.Get(key)
}

// DeleteSection removes the section named key, reporting whether it was
// present.
func (d *Document) DeleteSection(key string) bool {
	_, present := d.sections.Delete(key)

	return present
}

// Keys returns the top-level section names in insertion order.
func (d *Document) Keys() []string {
	keys := make([]string, 0, d.sections.Len())
	for pair := d.sections.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Len returns the number of top-level sections.
func (d *Document) Len() int {
	return d.sections.Len()
}

// RangeSections calls fn for each section in insertion order, stopping
// early if fn returns false.
func (d *Document) RangeSections(fn func(key string, v Value) bool) {
	for pair := d.sections.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// AddSchema registers s under s.Name, overwriting any existing schema of
// the same name (struct and union names live in separate namespaces, so a
// schema and a union may share a name).
func (d *Document) AddSchema(s *Schema) {
	d.schemas[s.Name] = s
}

// Schema returns the schema named name and whether it was found.
func (d *Document) Schema(name string) (*Schema, bool) {
	s, ok := d.schemas[name]

	return s, ok
}

// SchemaNames returns all registered schema names in stable alphabetical
// order, matching the order the text emitter uses for the "with schemas"
// variant.
func (d *Document) SchemaNames() []string {
	names := make([]string, 0, len(d.schemas))
	for name := range d.schemas {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// AddUnion registers u under u.Name, overwriting any existing union of the
// same name.
func (d *Document) AddUnion(u *Union) {
	d.unions[u.Name] = u
}

// Union returns the union named name and whether it was found.
func (d *Document) Union(name string) (*Union, bool) {
	u, ok := d.unions[name]

	return u, ok
}

// UnionNames returns all registered union names in stable alphabetical
// order.
func (d *Document) UnionNames() []string {
	names := make([]string, 0, len(d.unions))
	for name := range d.unions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// SetRootArray sets the root-array flag: the document represents a
// JSON array whose elements are keyed "0", "1", ... internally.
func (d *Document) SetRootArray(v bool) { d.rootArray = v }

// RootArray reports the root-array flag.
func (d *Document) RootArray() bool { return d.rootArray }

// SetRef records a reference definition. References share a single
// namespace within a Document; redefinition overwrites.
func (d *Document) SetRef(name string, v Value) {
	d.refs[name] = v
}

// Ref returns the reference named name and whether it was defined.
func (d *Document) Ref(name string) (Value, bool) {
	v, ok := d.refs[name]

	return v, ok
}

// RefNames returns all defined reference names in no particular order.
func (d *Document) RefNames() []string {
	names := make([]string, 0, len(d.refs))
	for name := range d.refs {
		names = append(names, name)
	}

	return names
}
