package unirender

import "testing"

func TestVector3Arithmetic(t *testing.T) {
	a := NewVector3(1, 2, 3)
	b := NewVector3(4, 5, 6)

	if got := a.Add(b); got != (Vector3{5, 7, 9}) {
		t.Errorf("Add = %v, want {5 7 9}", got)
	}
	if got := b.Sub(a); got != (Vector3{3, 3, 3}) {
		t.Errorf("Sub = %v, want {3 3 3}", got)
	}
	if got := a.Scale(2); got != (Vector3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVector3CrossProduct(t *testing.T) {
	x := NewVector3(1, 0, 0)
	y := NewVector3(0, 1, 0)
	if got := x.Cross(y); got != (Vector3{0, 0, 1}) {
		t.Errorf("Cross(x,y) = %v, want {0 0 1}", got)
	}
}

func TestVector3NormalizedZeroLength(t *testing.T) {
	zero := Vector3{}
	if got := zero.Normalized(); got != zero {
		t.Errorf("Normalized() of the zero vector = %v, want unchanged zero", got)
	}
}

func TestVector3NormalizedUnitLength(t *testing.T) {
	v := NewVector3(3, 4, 0)
	n := v.Normalized()
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("Normalized().Length() = %v, want ~1", l)
	}
}

func TestVector4XYZ(t *testing.T) {
	v := NewVector4(1, 2, 3, 4)
	if got := v.XYZ(); got != (Vector3{1, 2, 3}) {
		t.Errorf("XYZ() = %v, want {1 2 3}", got)
	}
}
