package modelcache

import (
	"testing"

	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/udm"
)

func TestShaderCacheAddAndLookup(t *testing.T) {
	sc := NewShaderCache()
	s1 := unirender.NewShader("shader1")
	s2 := unirender.NewShader("shader2")

	if idx := sc.AddShader(s1); idx != 0 {
		t.Errorf("first AddShader index = %d, want 0", idx)
	}
	if idx := sc.AddShader(s2); idx != 1 {
		t.Errorf("second AddShader index = %d, want 1", idx)
	}
	if got := sc.Shader(1); got != s2 {
		t.Error("Shader(1) did not return the second shader")
	}
	if got := sc.Shader(5); got != nil {
		t.Error("Shader(out-of-range) should return nil")
	}
}

func TestShaderCacheMergeAppendsInOrder(t *testing.T) {
	a := NewShaderCache()
	a.AddShader(unirender.NewShader("a"))
	b := NewShaderCache()
	b.AddShader(unirender.NewShader("b1"))
	b.AddShader(unirender.NewShader("b2"))

	a.Merge(b)
	if len(a.Shaders) != 3 {
		t.Fatalf("merged Shaders len = %d, want 3", len(a.Shaders))
	}
	if a.Shaders[0].Name != "a" || a.Shaders[1].Name != "b1" || a.Shaders[2].Name != "b2" {
		t.Error("Merge did not preserve append order")
	}
}

func TestModelCacheChunkBakeStampsHashAndRoundTrips(t *testing.T) {
	sc := NewShaderCache()
	shader := unirender.NewShader("mat")
	sc.AddShader(shader)

	chunk := NewModelCacheChunk(sc)
	mesh := unirender.NewMesh("mesh", 3, 1, 0)
	mesh.AddSubMeshShader(shader)
	chunk.AddMesh(mesh)

	obj := unirender.NewObject(mesh)
	chunk.AddObject(obj)

	if chunk.HasBakedData() {
		t.Fatal("a freshly built chunk should not report HasBakedData before Bake")
	}
	if mesh.Hash != 0 {
		t.Fatal("mesh Hash should be zero before Bake")
	}

	chunk.Bake()
	if !chunk.HasBakedData() {
		t.Fatal("HasBakedData() after Bake = false, want true")
	}
	if mesh.Hash == 0 {
		t.Error("Bake should stamp a non-zero content hash onto the mesh")
	}
	if obj.Hash == 0 {
		t.Error("Bake should stamp a non-zero content hash onto the object")
	}

	// Round-trip through Encode/Decode and regenerate the live graph.
	enc := udm.NewEncoder()
	chunk.Encode(enc)

	dec := udm.NewDecoder(enc.Bytes())
	decoded := DecodeModelCacheChunk(dec)
	if !decoded.HasBakedData() {
		t.Fatal("decoded chunk should start in the baked state")
	}
	decoded.GenerateUnbakedData(true)
	if len(decoded.Meshes) != 1 || len(decoded.Objects) != 1 {
		t.Fatalf("decoded chunk has %d meshes / %d objects, want 1/1", len(decoded.Meshes), len(decoded.Objects))
	}
	if decoded.Meshes[0].Hash != mesh.Hash {
		t.Errorf("decoded mesh Hash = %d, want %d", decoded.Meshes[0].Hash, mesh.Hash)
	}
}

func TestModelCacheChunkAddMeshInvalidatesBake(t *testing.T) {
	sc := NewShaderCache()
	chunk := NewModelCacheChunk(sc)
	chunk.AddMesh(unirender.NewMesh("m1", 3, 1, 0))
	chunk.Bake()
	if !chunk.HasBakedData() {
		t.Fatal("expected HasBakedData after Bake")
	}

	chunk.AddMesh(unirender.NewMesh("m2", 3, 1, 0))
	if chunk.HasBakedData() {
		t.Error("AddMesh after Bake should invalidate the cached baked blobs")
	}
}

func TestModelCacheMergePreservesChunkOrder(t *testing.T) {
	a := NewModelCache()
	a0 := a.AddChunk(NewShaderCache())
	b := NewModelCache()
	b0 := b.AddChunk(NewShaderCache())
	b1 := b.AddChunk(NewShaderCache())

	a.Merge(b)
	if len(a.Chunks) != 3 {
		t.Fatalf("merged Chunks len = %d, want 3", len(a.Chunks))
	}
	if a.Chunks[0] != a0 || a.Chunks[1] != b0 || a.Chunks[2] != b1 {
		t.Error("merged Chunks are not in order a0, b0, b1")
	}
}

func TestModelCacheEncodeDecodeRoundTrip(t *testing.T) {
	mc := NewModelCache()
	mc.SetUnique(true)
	chunk := mc.AddChunk(NewShaderCache())
	chunk.AddMesh(unirender.NewMesh("m", 3, 1, 0))

	enc := udm.NewEncoder()
	mc.Encode(enc)

	dec := udm.NewDecoder(enc.Bytes())
	decoded := DecodeModelCache(dec)
	if len(decoded.Chunks) != 1 {
		t.Fatalf("decoded Chunks len = %d, want 1", len(decoded.Chunks))
	}
	if !decoded.Chunks[0].HasBakedData() {
		t.Error("decoded chunk should be in the baked state")
	}
}
