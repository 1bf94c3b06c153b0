package unirender

import "testing"

func buildTriangle(name string) *Mesh {
	m := NewMesh(name, 3, 1, MeshFlagNone)
	m.AddVertex(NewVector3(0, 0, 0), NewVector3(0, 1, 0), NewVector4(1, 0, 0, 1), NewVector2(0, 0))
	m.AddVertex(NewVector3(1, 0, 0), NewVector3(0, 1, 0), NewVector4(1, 0, 0, 1), NewVector2(1, 0))
	m.AddVertex(NewVector3(0, 1, 0), NewVector3(0, 1, 0), NewVector4(1, 0, 0, 1), NewVector2(0, 1))
	m.AddTriangle(0, 1, 2, 0)
	return m
}

func TestMeshAddVertexRejectsBeyondCapacity(t *testing.T) {
	m := NewMesh("m", 1, 1, MeshFlagNone)
	if ok := m.AddVertex(Vector3{}, Vector3{}, Vector4{}, Vector2{}); !ok {
		t.Fatal("first AddVertex within capacity should succeed")
	}
	if ok := m.AddVertex(Vector3{}, Vector3{}, Vector4{}, Vector2{}); ok {
		t.Error("AddVertex beyond NumVerts should return false")
	}
}

func TestMeshAddTriangleInvertsWinding(t *testing.T) {
	m := buildTriangle("tri")
	if len(m.Triangles) != 3 {
		t.Fatalf("Triangles len = %d, want 3", len(m.Triangles))
	}
	// AddTriangle(0, 1, 2, ...) swaps i1/i2, so the stored winding is 0,2,1.
	want := []int32{0, 2, 1}
	for i, w := range want {
		if m.Triangles[i] != w {
			t.Errorf("Triangles[%d] = %d, want %d", i, m.Triangles[i], w)
		}
	}
}

func TestMeshValidateCatchesOutOfRangeIndex(t *testing.T) {
	m := buildTriangle("tri")
	m.Triangles[0] = 99
	if err := m.Validate(); err == nil {
		t.Error("Validate() should reject an out-of-range triangle index")
	}
}

func TestMeshValidateAcceptsWellFormedMesh(t *testing.T) {
	m := buildTriangle("tri")
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestMeshMergeOffsetsIndices(t *testing.T) {
	a := buildTriangle("a")
	b := buildTriangle("b")

	a.Merge(b)
	if a.NumVerts != 6 || a.NumTris != 2 {
		t.Fatalf("merged mesh dims = %d verts / %d tris, want 6/2", a.NumVerts, a.NumTris)
	}
	// b's triangle indices must be offset by a's original vertex count (3).
	want := []int32{3, 5, 4}
	got := a.Triangles[3:6]
	for i, w := range want {
		if got[i] != w {
			t.Errorf("merged Triangles[%d] = %d, want %d", i+3, got[i], w)
		}
	}
	if err := a.Validate(); err != nil {
		t.Errorf("merged mesh failed Validate(): %v", err)
	}
}

func TestNewObjectUsesMeshName(t *testing.T) {
	m := buildTriangle("my-mesh")
	obj := NewObject(m)
	if obj.Name != "my-mesh" {
		t.Errorf("Object.Name = %q, want %q", obj.Name, "my-mesh")
	}
	if obj.Mesh != m {
		t.Error("Object.Mesh should reference the mesh it was built from")
	}
}
