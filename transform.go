package unirender

import "github.com/chewxy/math32"

// Transform is a 4x3 affine transform (rotation+scale in the upper 3x3,
// translation in the last column) backing the Transform socket type.
type Transform struct {
	// M is row-major: M[row][col], rows 0..2, cols 0..3 (col 3 = translation).
	M [3][4]float32
}

// Identity returns the identity transform.
func Identity() Transform {
	var t Transform
	t.M[0][0], t.M[1][1], t.M[2][2] = 1, 1, 1
	return t
}

// Translation builds a pure-translation transform.
func Translation(v Vector3) Transform {
	t := Identity()
	t.M[0][3], t.M[1][3], t.M[2][3] = v.X, v.Y, v.Z
	return t
}

// TransformPoint applies t to a point (translation included).
func (t Transform) TransformPoint(p Vector3) Vector3 {
	return Vector3{
		X: t.M[0][0]*p.X + t.M[0][1]*p.Y + t.M[0][2]*p.Z + t.M[0][3],
		Y: t.M[1][0]*p.X + t.M[1][1]*p.Y + t.M[1][2]*p.Z + t.M[1][3],
		Z: t.M[2][0]*p.X + t.M[2][1]*p.Y + t.M[2][2]*p.Z + t.M[2][3],
	}
}

// TransformDirection applies t to a direction (translation excluded), used
// for normals and tangents.
func (t Transform) TransformDirection(v Vector3) Vector3 {
	return Vector3{
		X: t.M[0][0]*v.X + t.M[0][1]*v.Y + t.M[0][2]*v.Z,
		Y: t.M[1][0]*v.X + t.M[1][1]*v.Y + t.M[1][2]*v.Z,
		Z: t.M[2][0]*v.X + t.M[2][1]*v.Y + t.M[2][2]*v.Z,
	}
}

// Multiply returns t composed with o: applying the result equals applying
// o then t.
func (t Transform) Multiply(o Transform) Transform {
	var r Transform
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			var sum float32
			for k := 0; k < 3; k++ {
				sum += t.M[row][k] * o.M[k][col]
			}
			r.M[row][col] = sum
		}
		r.M[row][3] = t.M[row][0]*o.M[0][3] + t.M[row][1]*o.M[1][3] + t.M[row][2]*o.M[2][3] + t.M[row][3]
	}
	return r
}

// ScaledTransform is a Transform plus an explicit uniform/non-uniform
// scale, matching the source's separation of pose rotation+translation from
// mesh/object scale (Object.pose, §3).
type ScaledTransform struct {
	Transform Transform
	Scale     Vector3
}

// IdentityScaled returns an identity pose with unit scale.
func IdentityScaled() ScaledTransform {
	return ScaledTransform{Transform: Identity(), Scale: Vector3{X: 1, Y: 1, Z: 1}}
}

// RollingShutterType enumerates the rolling-shutter readout direction
// (spec §3 [ADD], Design Note (b) — backend-advisory only).
type RollingShutterType uint8

const (
	RollingShutterNone RollingShutterType = iota
	RollingShutterTop
	RollingShutterBottom
	RollingShutterCenter
)

// quarterTurn is a rotation of π/2 radians; kept here since math32 has no
// constant for it.
var quarterTurn = math32.Pi / 2
