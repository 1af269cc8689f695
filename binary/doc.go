// Package binary implements the compact on-disk representation of a
// [value.Document]: a 64-byte header, an interned string table, a schema
// table, a section index, and per-section data laid out back to back,
// all little-endian. [Encode] produces a self-contained file; [Open] and
// [OpenMmap] decode one, the latter reading section payloads directly
// from a read-only mapping instead of a copy of the file.
//
// Layout mirrors the encoder's four phases in order: intern every string
// reachable from the document once, write the schema/union definitions
// that reference those strings by index, compress each section
// independently (see the compress package), then lay down a fixed-size
// index entry per section so random access never requires scanning.
// Decoding reverses each phase lazily: the string and schema tables are
// parsed once at open time (they're needed to resolve any field or key
// name), but a section's payload is only read and decoded the first time
// a caller asks for it by key.
package binary
