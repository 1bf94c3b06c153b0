package unirender

import "github.com/chewxy/math32"

// Vector3 is the shared underlying representation for Color, Vector, Point
// and Normal socket types (§3): three distinct semantic domains, one
// storage layout.
type Vector3 struct {
	X, Y, Z float32
}

// NewVector3 builds a Vector3 from three components.
func NewVector3(x, y, z float32) Vector3 { return Vector3{X: x, Y: y, Z: z} }

// Add returns the component-wise sum.
func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns the component-wise difference.
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul returns the component-wise product.
func (v Vector3) Mul(o Vector3) Vector3 { return Vector3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

// Div returns the component-wise quotient.
func (v Vector3) Div(o Vector3) Vector3 { return Vector3{v.X / o.X, v.Y / o.Y, v.Z / o.Z} }

// Scale returns v scaled uniformly by s.
func (v Vector3) Scale(s float32) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and o.
func (v Vector3) Dot(o Vector3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Cross returns the cross product of v and o.
func (v Vector3) Cross(o Vector3) Vector3 {
	return Vector3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// Length returns the Euclidean length of v.
func (v Vector3) Length() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalized returns v scaled to unit length. Returns v unchanged if its
// length is zero.
func (v Vector3) Normalized() Vector3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Equal reports exact (bitwise, via ==) component equality.
func (v Vector3) Equal(o Vector3) bool { return v == o }

// Vector2 backs the Point2 socket type.
type Vector2 struct {
	X, Y float32
}

// NewVector2 builds a Vector2 from two components.
func NewVector2(x, y float32) Vector2 { return Vector2{X: x, Y: y} }

// Vector4 is a homogeneous point/tangent representation: mesh tangents
// carry a w sign component alongside the 3D direction (§3, §4.5).
type Vector4 struct {
	X, Y, Z, W float32
}

// NewVector4 builds a Vector4 from four components.
func NewVector4(x, y, z, w float32) Vector4 { return Vector4{X: x, Y: y, Z: z, W: w} }

// XYZ returns the Vector3 formed by the first three components.
func (v Vector4) XYZ() Vector3 { return Vector3{v.X, v.Y, v.Z} }
