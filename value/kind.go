package value

// Kind discriminates the variant held by a [Value].
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUInt
	KindFloat
	KindString
	KindBytes
	KindTimestamp
	KindJsonNumber
	KindArray
	KindObject
	KindMap
	KindRef
	KindTagged
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUInt:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindTimestamp:
		return "timestamp"
	case KindJsonNumber:
		return "json_number"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	case KindTagged:
		return "tagged"
	default:
		return "unknown"
	}
}
