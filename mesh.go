package unirender

import "strconv"

// MeshFlags is a bitmask of per-vertex auxiliary channels a Mesh carries
// (§3).
type MeshFlags uint8

const (
	MeshFlagNone       MeshFlags = 0
	MeshFlagHasAlphas  MeshFlags = 1 << 0
	MeshFlagHasWrinkles MeshFlags = 1 << 1
)

// HairStrandDataSet pairs a shader index with the strand data authored for
// it — the part of §3's hair-strand support that lives on the mesh rather
// than on the Shader's HairConfig.
type HairStrandDataSet struct {
	ShaderIndex uint32
	StrandCount int
}

// Mesh is a structure-of-arrays triangle mesh (§3, §4.5). Per-vertex arrays
// are indexed by vertex index and sized to NumVerts; per-corner arrays are
// indexed by `3*triangle + corner` and sized to `3*NumTris`; per-triangle
// arrays are indexed by triangle index and sized to NumTris.
type Mesh struct {
	BaseObject

	NumVerts uint64
	NumTris  uint64
	Flags    MeshFlags

	Vertices      []Vector3
	VertexNormals []Vector3
	Triangles     []int32
	UVs           []Vector2
	UVTangents    []Vector3
	UVTangentSigns []float32
	Alphas        []float32 // nil unless HasAlphas or HasWrinkles
	Smooth        []bool
	Shader        []int32

	perVertexUVs      []Vector2
	perVertexTangents []Vector4
	perVertexAlphas   []float32

	LightmapUVs     []Vector2
	SubMeshShaders  []*Shader
	HairStrandSets  []HairStrandDataSet
}

// NewMesh preallocates a Mesh sized for numVerts vertices and numTris
// triangles, mirroring the source's Mesh::Create reservations.
func NewMesh(name string, numVerts, numTris uint64, flags MeshFlags) *Mesh {
	m := &Mesh{
		BaseObject:    BaseObject{Name: name},
		NumVerts:      numVerts,
		NumTris:       numTris,
		Flags:         flags,
		VertexNormals: make([]Vector3, numVerts),
		UVs:           make([]Vector2, numTris*3),
		UVTangents:    make([]Vector3, numTris*3),
		UVTangentSigns: make([]float32, numTris*3),

		Vertices: make([]Vector3, 0, numVerts),
		Triangles: make([]int32, 0, numTris*3),
		Shader:    make([]int32, 0, numTris),
		Smooth:    make([]bool, 0, numTris),

		perVertexUVs:      make([]Vector2, 0, numVerts),
		perVertexTangents: make([]Vector4, 0, numVerts),
		perVertexAlphas:   make([]float32, 0, numVerts),
	}
	if flags&(MeshFlagHasAlphas|MeshFlagHasWrinkles) != 0 {
		m.Alphas = make([]float32, numVerts)
	}
	return m
}

// HasAlphas reports whether the mesh carries a per-vertex alpha channel.
func (m *Mesh) HasAlphas() bool { return m.Flags&MeshFlagHasAlphas != 0 }

// HasWrinkles reports whether the mesh's alpha channel is wrinkle-map
// blend factors rather than alpha-blend alphas (they share storage, §3).
func (m *Mesh) HasWrinkles() bool { return m.Flags&MeshFlagHasWrinkles != 0 }

// VertexCount and TriangleCount return the mesh's declared (not yet
// necessarily filled) capacity.
func (m *Mesh) VertexCount() uint64   { return m.NumVerts }
func (m *Mesh) TriangleCount() uint64 { return m.NumTris }

// VertexOffset returns the number of vertices actually added so far —
// the index the next AddVertex call will use.
func (m *Mesh) VertexOffset() uint32 { return uint32(len(m.Vertices)) }

// AddVertex appends one vertex's position, normal, tangent (xyz + sign in
// w) and UV. Returns false once NumVerts vertices have already been added.
func (m *Mesh) AddVertex(pos, n Vector3, t Vector4, uv Vector2) bool {
	idx := uint64(len(m.Vertices))
	if idx >= m.NumVerts {
		return false
	}
	m.VertexNormals[idx] = n
	m.Vertices = append(m.Vertices, pos)
	m.perVertexUVs = append(m.perVertexUVs, uv)
	m.perVertexTangents = append(m.perVertexTangents, t)
	return true
}

// AddAlpha appends a per-vertex alpha value; only valid when HasAlphas.
func (m *Mesh) AddAlpha(alpha float32) bool {
	if !m.HasAlphas() {
		return false
	}
	m.Alphas[len(m.perVertexAlphas)] = alpha
	m.perVertexAlphas = append(m.perVertexAlphas, alpha)
	return true
}

// AddWrinkleFactor appends a per-vertex wrinkle blend factor; only valid
// when HasWrinkles. Shares the Alphas backing array with AddAlpha (§3).
func (m *Mesh) AddWrinkleFactor(factor float32) bool {
	if !m.HasWrinkles() {
		return false
	}
	m.Alphas[len(m.perVertexAlphas)] = factor
	m.perVertexAlphas = append(m.perVertexAlphas, factor)
	return true
}

// AddTriangle appends one triangle. i1 and i2 are swapped to invert
// winding order for the target renderer's convention (§4.5); the three
// per-vertex UV/tangent entries already recorded via AddVertex are
// materialized into the per-corner arrays at this triangle's offset.
// Returns false beyond NumTris triangles or if any index lacks a
// corresponding AddVertex call.
func (m *Mesh) AddTriangle(i0, i1, i2 uint32, shaderIndex uint32) bool {
	i1, i2 = i2, i1

	numCurIndices := len(m.Triangles)
	idx := uint64(numCurIndices) / 3
	if idx >= m.NumTris {
		return false
	}
	m.Triangles = append(m.Triangles, int32(i0), int32(i1), int32(i2))
	m.Shader = append(m.Shader, int32(shaderIndex))
	m.Smooth = append(m.Smooth, true)

	if int(i0) >= len(m.perVertexUVs) || int(i1) >= len(m.perVertexUVs) || int(i2) >= len(m.perVertexUVs) {
		return false
	}
	offset := numCurIndices
	m.UVs[offset] = m.perVertexUVs[i0]
	m.UVs[offset+1] = m.perVertexUVs[i1]
	m.UVs[offset+2] = m.perVertexUVs[i2]

	t0, t1, t2 := m.perVertexTangents[i0], m.perVertexTangents[i1], m.perVertexTangents[i2]
	m.UVTangents[offset] = t0.XYZ()
	m.UVTangents[offset+1] = t1.XYZ()
	m.UVTangents[offset+2] = t2.XYZ()
	m.UVTangentSigns[offset] = t0.W
	m.UVTangentSigns[offset+1] = t1.W
	m.UVTangentSigns[offset+2] = t2.W
	return true
}

// AddSubMeshShader registers shader as a sub-mesh shader and returns its
// index, used by AddTriangle's shaderIndex argument.
func (m *Mesh) AddSubMeshShader(shader *Shader) uint32 {
	m.SubMeshShaders = append(m.SubMeshShaders, shader)
	return uint32(len(m.SubMeshShaders) - 1)
}

// SetLightmapUVs installs a precomputed lightmap UV set.
func (m *Mesh) SetLightmapUVs(uvs []Vector2) { m.LightmapUVs = uvs }

// AddHairStrandData records a hair strand data set for shaderIdx.
func (m *Mesh) AddHairStrandData(set HairStrandDataSet, shaderIdx uint32) {
	set.ShaderIndex = shaderIdx
	m.HairStrandSets = append(m.HairStrandSets, set)
}

// Validate checks every triangle index against the vertex count (§4.5).
func (m *Mesh) Validate() error {
	for i, idx := range m.Triangles {
		if idx < 0 || uint64(idx) >= uint64(len(m.Vertices)) {
			return NewError(StateInvariant, "Validate",
				"triangle corner "+strconv.Itoa(i)+" references out-of-range vertex index "+strconv.Itoa(int(idx)))
		}
	}
	return nil
}

// Merge appends other's contents after m's, offsetting vertex indices and
// sub-mesh shader indices so the combined mesh stays internally
// consistent (§4.5).
func (m *Mesh) Merge(other *Mesh) {
	vertexOffset := int32(m.NumVerts)
	subMeshShaderOffset := int32(len(m.SubMeshShaders))

	m.NumVerts += other.NumVerts
	m.NumTris += other.NumTris

	m.Vertices = append(m.Vertices, other.Vertices...)
	m.VertexNormals = append(m.VertexNormals, other.VertexNormals...)
	m.UVs = append(m.UVs, other.UVs...)
	m.UVTangents = append(m.UVTangents, other.UVTangents...)
	m.UVTangentSigns = append(m.UVTangentSigns, other.UVTangentSigns...)

	triOffset := len(m.Triangles)
	m.Triangles = append(m.Triangles, other.Triangles...)
	for i := triOffset; i < len(m.Triangles); i++ {
		m.Triangles[i] += vertexOffset
	}

	m.perVertexUVs = append(m.perVertexUVs, other.perVertexUVs...)
	m.perVertexTangents = append(m.perVertexTangents, other.perVertexTangents...)
	m.perVertexAlphas = append(m.perVertexAlphas, other.perVertexAlphas...)
	m.LightmapUVs = append(m.LightmapUVs, other.LightmapUVs...)
	m.SubMeshShaders = append(m.SubMeshShaders, other.SubMeshShaders...)

	m.Smooth = append(m.Smooth, other.Smooth...)

	shaderOffset := len(m.Shader)
	m.Shader = append(m.Shader, other.Shader...)
	for i := shaderOffset; i < len(m.Shader); i++ {
		m.Shader[i] += subMeshShaderOffset
	}
}
