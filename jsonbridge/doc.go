// Package jsonbridge converts between [value.Document]/[value.Value] and
// JSON text. The conversion is one-way: importing the JSON this package
// emits does not reconstruct Bytes, Timestamp, Map, Ref, or Tagged values —
// those come back as plain Objects, Arrays, or Strings, per §4.8.
package jsonbridge
