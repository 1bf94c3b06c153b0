package unirender

// DataValue is a typed, polymorphic literal held in a socket (§3). Two
// DataValues are equal iff their types match and their payloads alias the
// same underlying storage — identity equality, deliberately, mirroring the
// source's shared_ptr-pointer comparison rather than deep value comparison.
type DataValue struct {
	Type    SocketType
	payload *any
}

// NewDataValue wraps value as a DataValue of the given type. The caller is
// responsible for value's Go type agreeing with Type's storage family
// (bool, float32, int32, uint32, Vector3, Vector2, string, Transform,
// []float32, []Vector3); NodeManager factories and the conversion helpers
// below are the only code that should call this directly.
func NewDataValue(t SocketType, value any) DataValue {
	v := value
	return DataValue{Type: t, payload: &v}
}

// Valid reports whether d carries a payload (the zero DataValue is not
// Valid).
func (d DataValue) Valid() bool { return d.payload != nil }

// Raw returns the underlying Go value and whether one is present.
func (d DataValue) Raw() (any, bool) {
	if d.payload == nil {
		return nil, false
	}
	return *d.payload, true
}

// Equal implements the spec's deliberate identity equality: same type, same
// backing payload pointer.
func (d DataValue) Equal(o DataValue) bool {
	return d.Type == o.Type && d.payload == o.payload
}

// Default constructs the zero-value DataValue for a SocketType, used when
// a NodeDesc template populates its socket defaults and when group
// resolution propagates an unconnected input's default (§4.3 step 3).
func Default(t SocketType) DataValue {
	switch t {
	case Bool:
		return NewDataValue(t, false)
	case Float:
		return NewDataValue(t, float32(0))
	case Int:
		return NewDataValue(t, int32(0))
	case UInt:
		return NewDataValue(t, uint32(0))
	case Enum:
		return NewDataValue(t, int32(0))
	case Color, Vector, Point, Normal:
		return NewDataValue(t, Vector3{})
	case Point2:
		return NewDataValue(t, Vector2{})
	case String:
		return NewDataValue(t, "")
	case Transform_:
		return NewDataValue(t, Identity())
	case FloatArray:
		return NewDataValue(t, []float32(nil))
	case ColorArray:
		return NewDataValue(t, []Vector3(nil))
	default:
		// Closure/Node: link-only, no payload.
		return DataValue{Type: t}
	}
}

// Convert performs the runtime cast described by §4.1: src and dst must be
// IsConvertibleTo, and the concrete Go representation is mapped across the
// numeric or Vector3 family. Returns (zero, false) if the conversion isn't
// supported or src's payload doesn't match its declared type.
func Convert(v DataValue, dst SocketType) (DataValue, bool) {
	if !IsConvertibleTo(v.Type, dst) {
		return DataValue{}, false
	}
	if v.Type == dst {
		return v, true
	}
	raw, ok := v.Raw()
	if !ok {
		return DataValue{}, false
	}
	if IsNumeric(v.Type) && IsNumeric(dst) {
		f := toFloat64(raw)
		return NewDataValue(dst, fromFloat64(dst, f)), true
	}
	if IsVectorType(v.Type) && IsVectorType(dst) {
		vec, ok := raw.(Vector3)
		if !ok {
			return DataValue{}, false
		}
		return NewDataValue(dst, vec), true
	}
	return DataValue{}, false
}

func toFloat64(raw any) float64 {
	switch x := raw.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case float32:
		return float64(x)
	case int32:
		return float64(x)
	case uint32:
		return float64(x)
	default:
		return 0
	}
}

func fromFloat64(dst SocketType, f float64) any {
	switch dst {
	case Bool:
		return f != 0
	case Float:
		return float32(f)
	case Int, Enum:
		return int32(f)
	case UInt:
		if f < 0 {
			f = 0
		}
		return uint32(f)
	default:
		return float32(f)
	}
}
