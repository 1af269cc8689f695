package binary

// Magic is the 4-byte file signature every encoded document begins with.
const Magic = "TLBX"

// VersionMajor/VersionMinor are the format version this package writes.
// A reader rejects any file whose major version differs; an unknown
// minor version is accepted (forward-compatible additions only append
// fields, never change the meaning of existing ones).
const (
	VersionMajor uint16 = 2
	VersionMinor uint16 = 0
)

// HeaderSize is the fixed size, in bytes, of the file header.
const HeaderSize = 64

// Header flag bits.
const (
	flagCompressedAdvisory uint32 = 1 << 0
	flagRootArray          uint32 = 1 << 1
)

// Section index entry flag bits.
const (
	sectionFlagCompressed uint8 = 1 << 0
	sectionFlagIsArray    uint8 = 1 << 1
)

// noSchema marks a section index entry or field extra slot as not
// referencing a schema/union.
const noSchema uint16 = 0xFFFF

// typeCode identifies the runtime shape of an encoded value or field.
type typeCode uint8

const (
	tcNull       typeCode = 0x00
	tcBool       typeCode = 0x01
	tcInt8       typeCode = 0x02
	tcInt16      typeCode = 0x03
	tcInt32      typeCode = 0x04
	tcInt64      typeCode = 0x05
	tcUInt8      typeCode = 0x06
	tcUInt16     typeCode = 0x07
	tcUInt32     typeCode = 0x08
	tcUInt64     typeCode = 0x09
	tcFloat32    typeCode = 0x0A
	tcFloat64    typeCode = 0x0B
	tcString     typeCode = 0x10
	tcBytes      typeCode = 0x11
	tcJsonNumber typeCode = 0x12
	tcArray      typeCode = 0x20
	tcObject     typeCode = 0x21
	tcStruct     typeCode = 0x22
	tcMap        typeCode = 0x23
	tcTuple      typeCode = 0x24 // reserved, never emitted
	tcRef        typeCode = 0x30
	tcTagged     typeCode = 0x31
	tcTimestamp  typeCode = 0x32

	// tcHeterogeneousArraySentinel marks a top-level array section that
	// did not qualify for the homogeneous Int32 or String fast paths.
	tcHeterogeneousArraySentinel typeCode = 0xFF
)

// sectionIndexEntrySize is the fixed size, in bytes, of one section
// index entry.
const sectionIndexEntrySize = 32

// fieldEntrySize is the fixed size, in bytes, of one schema/variant
// field definition.
const fieldEntrySize = 8

// Field flag bits, reused for struct fields and union variant fields.
const (
	fieldFlagNullable uint8 = 1 << 0
	fieldFlagIsArray  uint8 = 1 << 1
)
