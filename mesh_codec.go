package unirender

import "github.com/SlawekNowy/UniRender-sub000/udm"

// Mesh serialization, grounded on original_source/src/mesh.cpp's
// Mesh::Serialize/Deserialize: every SoA array is written length-prefixed
// in a fixed order, sub-mesh shader references are written as indices
// into the owning ModelCacheChunk's ShaderCache (resolved by the caller via
// shaderIndexOf/shaderAt) rather than embedding the shader itself.
func (m *Mesh) Encode(enc *udm.Encoder, shaderIndexOf func(*Shader) (uint32, bool)) {
	enc.WriteString(m.Name)
	enc.WriteUint32(uint32(m.Flags))
	enc.WriteUint64(m.NumVerts)
	enc.WriteUint64(m.NumTris)

	encodeVector3Slice(enc, m.Vertices)
	encodeVector3Slice(enc, m.VertexNormals)
	encodeVector2Slice(enc, m.UVs)
	encodeVector3Slice(enc, m.UVTangents)
	encodeFloat32Slice(enc, m.UVTangentSigns)

	enc.WriteBool(m.Alphas != nil)
	if m.Alphas != nil {
		encodeFloat32Slice(enc, m.Alphas)
	}

	enc.WriteUint32(uint32(len(m.Triangles)))
	for _, idx := range m.Triangles {
		enc.WriteInt32(idx)
	}
	enc.WriteUint32(uint32(len(m.Smooth)))
	for _, s := range m.Smooth {
		enc.WriteBool(s)
	}
	enc.WriteUint32(uint32(len(m.Shader)))
	for _, s := range m.Shader {
		enc.WriteInt32(s)
	}

	encodeVector2Slice(enc, m.perVertexUVs)
	encodeVector4Slice(enc, m.perVertexTangents)
	encodeFloat32Slice(enc, m.perVertexAlphas)
	encodeVector2Slice(enc, m.LightmapUVs)

	enc.WriteUint32(uint32(len(m.SubMeshShaders)))
	for _, sh := range m.SubMeshShaders {
		idx, ok := shaderIndexOf(sh)
		enc.WriteBool(ok)
		if ok {
			enc.WriteUint32(idx)
		}
	}

	enc.WriteUint32(uint32(len(m.HairStrandSets)))
	for _, set := range m.HairStrandSets {
		enc.WriteUint32(set.ShaderIndex)
		enc.WriteUint32(uint32(set.StrandCount))
	}
}

// DecodeMesh reconstructs a Mesh previously written by Mesh.Encode followed
// by the uint64 content hash ModelCacheChunk.Bake appends. shaderAt resolves a sub-mesh shader index back into the ShaderCache
// entry it was resolved against during Encode.
func DecodeMesh(dec *udm.Decoder, shaderAt func(uint32) *Shader) *Mesh {
	m := &Mesh{
		BaseObject: BaseObject{Name: dec.ReadString()},
		Flags:      MeshFlags(dec.ReadUint32()),
		NumVerts:   dec.ReadUint64(),
		NumTris:    dec.ReadUint64(),
	}

	m.Vertices = decodeVector3Slice(dec)
	m.VertexNormals = decodeVector3Slice(dec)
	m.UVs = decodeVector2Slice(dec)
	m.UVTangents = decodeVector3Slice(dec)
	m.UVTangentSigns = decodeFloat32Slice(dec)

	if dec.ReadBool() {
		m.Alphas = decodeFloat32Slice(dec)
	}

	n := dec.ReadUint32()
	m.Triangles = make([]int32, n)
	for i := range m.Triangles {
		m.Triangles[i] = dec.ReadInt32()
	}
	n = dec.ReadUint32()
	m.Smooth = make([]bool, n)
	for i := range m.Smooth {
		m.Smooth[i] = dec.ReadBool()
	}
	n = dec.ReadUint32()
	m.Shader = make([]int32, n)
	for i := range m.Shader {
		m.Shader[i] = dec.ReadInt32()
	}

	m.perVertexUVs = decodeVector2Slice(dec)
	m.perVertexTangents = decodeVector4Slice(dec)
	m.perVertexAlphas = decodeFloat32Slice(dec)
	m.LightmapUVs = decodeVector2Slice(dec)

	n = dec.ReadUint32()
	m.SubMeshShaders = make([]*Shader, n)
	for i := range m.SubMeshShaders {
		if dec.ReadBool() {
			m.SubMeshShaders[i] = shaderAt(dec.ReadUint32())
		}
	}

	n = dec.ReadUint32()
	m.HairStrandSets = make([]HairStrandDataSet, n)
	for i := range m.HairStrandSets {
		m.HairStrandSets[i] = HairStrandDataSet{
			ShaderIndex: dec.ReadUint32(),
			StrandCount: int(dec.ReadUint32()),
		}
	}

	// ModelCacheChunk.Bake appends the content hash as a trailing field
	// after serializing everything above; restore it here so a baked
	// chunk round-trips Hash the same way it round-trips geometry.
	m.Hash = dec.ReadUint64()

	return m
}

func encodeFloat32Slice(enc *udm.Encoder, s []float32) {
	enc.WriteUint32(uint32(len(s)))
	for _, f := range s {
		enc.WriteFloat32(f)
	}
}

func decodeFloat32Slice(dec *udm.Decoder) []float32 {
	n := dec.ReadUint32()
	s := make([]float32, n)
	for i := range s {
		s[i] = dec.ReadFloat32()
	}
	return s
}

func encodeVector2Slice(enc *udm.Encoder, s []Vector2) {
	enc.WriteUint32(uint32(len(s)))
	for _, v := range s {
		enc.WriteFloat32(v.X)
		enc.WriteFloat32(v.Y)
	}
}

func decodeVector2Slice(dec *udm.Decoder) []Vector2 {
	n := dec.ReadUint32()
	s := make([]Vector2, n)
	for i := range s {
		s[i] = Vector2{X: dec.ReadFloat32(), Y: dec.ReadFloat32()}
	}
	return s
}

func encodeVector3Slice(enc *udm.Encoder, s []Vector3) {
	enc.WriteUint32(uint32(len(s)))
	for _, v := range s {
		encodeVector3(enc, v)
	}
}

func decodeVector3Slice(dec *udm.Decoder) []Vector3 {
	n := dec.ReadUint32()
	s := make([]Vector3, n)
	for i := range s {
		s[i] = decodeVector3(dec)
	}
	return s
}

func encodeVector4Slice(enc *udm.Encoder, s []Vector4) {
	enc.WriteUint32(uint32(len(s)))
	for _, v := range s {
		enc.WriteFloat32(v.X)
		enc.WriteFloat32(v.Y)
		enc.WriteFloat32(v.Z)
		enc.WriteFloat32(v.W)
	}
}

func decodeVector4Slice(dec *udm.Decoder) []Vector4 {
	n := dec.ReadUint32()
	s := make([]Vector4, n)
	for i := range s {
		s[i] = Vector4{X: dec.ReadFloat32(), Y: dec.ReadFloat32(), Z: dec.ReadFloat32(), W: dec.ReadFloat32()}
	}
	return s
}
