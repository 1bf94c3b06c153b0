package unirender

// SocketType is the closed set of semantic types a shader-graph socket can
// carry (§3). Vector/Point/Normal/Color share the Vector3 storage layout
// but are distinct types for conversion purposes; Closure and Node are
// link-only and hold no runtime value.
type SocketType uint8

const (
	Bool SocketType = iota
	Float
	Int
	UInt
	Color
	Vector
	Point
	Normal
	Point2
	Closure
	String
	Enum
	Transform_
	NodeRef
	FloatArray
	ColorArray
	socketTypeCount

	// Invalid marks a socket that has not been assigned a type.
	Invalid SocketType = 0xFF
)

func (t SocketType) String() string {
	switch t {
	case Bool:
		return "Bool"
	case Float:
		return "Float"
	case Int:
		return "Int"
	case UInt:
		return "UInt"
	case Color:
		return "Color"
	case Vector:
		return "Vector"
	case Point:
		return "Point"
	case Normal:
		return "Normal"
	case Point2:
		return "Point2"
	case Closure:
		return "Closure"
	case String:
		return "String"
	case Enum:
		return "Enum"
	case Transform_:
		return "Transform"
	case NodeRef:
		return "Node"
	case FloatArray:
		return "FloatArray"
	case ColorArray:
		return "ColorArray"
	default:
		return "Invalid"
	}
}

// IsNumeric reports whether t holds a scalar numeric value.
func IsNumeric(t SocketType) bool {
	switch t {
	case Bool, Float, Int, UInt, Enum:
		return true
	default:
		return false
	}
}

// IsVectorType reports whether t shares the Vector3 storage family.
func IsVectorType(t SocketType) bool {
	switch t {
	case Color, Vector, Point, Normal:
		return true
	default:
		return false
	}
}

// IsVector2Type reports whether t is the Point2 (Vector2) family.
func IsVector2Type(t SocketType) bool { return t == Point2 }

// IsArrayType reports whether t is one of the array families.
func IsArrayType(t SocketType) bool {
	switch t {
	case FloatArray, ColorArray:
		return true
	default:
		return false
	}
}

// IsLinkOnly reports whether t never carries a runtime value (Closure,
// Node): sockets of this type cannot be Concrete.
func IsLinkOnly(t SocketType) bool { return t == Closure || t == NodeRef }

// conversionTable[src][dst] is synthesized once at init from element-type
// compatibility (§4.1): numeric family inter-converts, the Vector3 family
// (Color/Vector/Point/Normal) inter-converts, String/Transform/arrays only
// convert to themselves. Closure/Node convert only to themselves.
var conversionTable [socketTypeCount][socketTypeCount]bool

func init() {
	numeric := []SocketType{Bool, Float, Int, UInt, Enum}
	vec3 := []SocketType{Color, Vector, Point, Normal}
	for _, a := range numeric {
		for _, b := range numeric {
			conversionTable[a][b] = true
		}
	}
	for _, a := range vec3 {
		for _, b := range vec3 {
			conversionTable[a][b] = true
		}
	}
	selfOnly := []SocketType{Point2, String, Transform_, FloatArray, ColorArray}
	for _, a := range selfOnly {
		conversionTable[a][a] = true
	}
	// Every type converts to itself (reflexivity, §8 property 1).
	for t := SocketType(0); t < socketTypeCount; t++ {
		conversionTable[t][t] = true
	}
}

// IsConvertibleTo reports whether a value of src can be converted to dst
// (§4.1). Reflexive for every SocketType including Closure/Node (§8
// property 1); cross-type conversion involving Closure/Node is never
// allowed since neither carries a runtime value.
func IsConvertibleTo(src, dst SocketType) bool {
	if src >= socketTypeCount || dst >= socketTypeCount {
		return false
	}
	if src != dst && (IsLinkOnly(src) || IsLinkOnly(dst)) {
		return false
	}
	return conversionTable[src][dst]
}
