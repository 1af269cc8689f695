package value

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an insertion-ordered mapping from string keys to [Value]s with
// O(1) lookup by key, backed by [orderedmap.OrderedMap]. Keys are unique;
// [Object.Set] on an existing key overwrites the value in place without
// moving it to the end.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// NewObjectWithCapacity returns an empty Object pre-sized for n entries.
func NewObjectWithCapacity(n int) *Object {
	return &Object{m: orderedmap.New[string, Value](orderedmap.WithCapacity[string, Value](n))}
}

// Set inserts or overwrites key. New keys are appended to the end of the
// iteration order; existing keys keep their position.
func (o *Object) Set(key string, v Value) {
	o.m.Set(key, v)
}

// Get returns the value for key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	return o.m.Get(key)
}

// Delete removes key, reporting whether it was present.
func (o *Object) Delete(key string) bool {
	_, present := o.m.Delete(key)

	return present
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.m.Get(key)

	return ok
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil || o.m == nil {
		return 0
	}

	return o.m.Len()
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	if o.Len() == 0 {
		return nil
	}

	keys := make([]string, 0, o.m.Len())
	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (o *Object) Range(fn func(key string, v Value) bool) {
	if o == nil || o.m == nil {
		return
	}

	for pair := o.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a shallow copy preserving key order.
func (o *Object) Clone() *Object {
	dup := NewObjectWithCapacity(o.Len())
	o.Range(func(key string, v Value) bool {
		dup.Set(key, v)

		return true
	})

	return dup
}
