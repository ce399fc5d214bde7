package matrix

// Element is the compile-time constraint for supported element types.
// Matrix is a numeric container; boolean participates as a numeric tag
// (storage, access, and structural transforms) but not in arithmetic.
type Element interface {
	~int32 | ~uint32 | ~float32 | ~float64 | ~bool
}

// ElemKind is the runtime tag identifying a matrix's element type.
// It is fixed at construction and checked for consistency on every
// binary operation.
type ElemKind int

// Supported element kinds.
const (
	Int32 ElemKind = iota
	Uint32
	Float32
	Double64
	Boolean
)

// Size returns the byte size of one element of the kind.
func (k ElemKind) Size() int {
	switch k {
	case Int32, Uint32, Float32:
		return 4
	case Double64:
		return 8
	case Boolean:
		return 1
	default:
		panic("unknown element kind")
	}
}

// String returns the construction-time label of the kind.
func (k ElemKind) String() string {
	switch k {
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	case Double64:
		return "double64"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// IsFloat reports whether the kind is a floating-point kind.
func (k ElemKind) IsFloat() bool {
	return k == Float32 || k == Double64
}

// KindOf resolves the ElemKind for a generic element type.
func KindOf[T Element]() ElemKind {
	var zero T
	switch any(zero).(type) {
	case int32:
		return Int32
	case uint32:
		return Uint32
	case float32:
		return Float32
	case float64:
		return Double64
	case bool:
		return Boolean
	default:
		panic("unsupported element type")
	}
}
