package modelcache

import (
	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/udm"
	"github.com/spaolacci/murmur3"
)

// murmurSeed is the content-hash seed stamped onto every baked
// object/mesh, grounded on ModelCacheChunk::MURMUR_SEED (195574).
const murmurSeed uint32 = 195574

// chunkFlags tracks which of a ModelCacheChunk's two representations —
// the live object/mesh graph and the baked byte blobs — are currently
// valid (§4.6). A freshly-created chunk has only HasUnbakedData; AddMesh/AddObject
// invalidate the baked form, Bake/GenerateUnbakedData regenerate each.
type chunkFlags uint8

const (
	chunkNone           chunkFlags = 0
	chunkHasBakedData   chunkFlags = 1 << 0
	chunkHasUnbakedData chunkFlags = 1 << 1
)

// ModelCacheChunk is one bake-able group of objects and meshes sharing a
// ShaderCache (§4.6). Bake() serializes the live graph into per-object/
// per-mesh byte blobs (each content-hashed via murmur3 and stamped onto
// the source object/mesh's Hash field); Unbake regenerates the live graph
// from those blobs.
type ModelCacheChunk struct {
	ShaderCache *ShaderCache

	flags   chunkFlags
	Objects []*unirender.Object
	Meshes  []*unirender.Mesh

	bakedObjects [][]byte
	bakedMeshes  [][]byte

	serializationVersion uint32
}

// NewModelCacheChunk returns a chunk backed by shaderCache, starting in the
// unbaked state (matching the source's m_flags default of HasUnbakedData).
func NewModelCacheChunk(shaderCache *ShaderCache) *ModelCacheChunk {
	return &ModelCacheChunk{
		ShaderCache:          shaderCache,
		flags:                chunkHasUnbakedData,
		serializationVersion: serializationVersion,
	}
}

// AddMesh appends mesh and returns its index, invalidating any baked data.
func (c *ModelCacheChunk) AddMesh(mesh *unirender.Mesh) uint32 {
	c.unbake()
	c.Meshes = append(c.Meshes, mesh)
	return uint32(len(c.Meshes) - 1)
}

// AddObject appends obj and returns its index, invalidating any baked data.
func (c *ModelCacheChunk) AddObject(obj *unirender.Object) uint32 {
	c.unbake()
	c.Objects = append(c.Objects, obj)
	return uint32(len(c.Objects) - 1)
}

// RemoveMesh removes the first occurrence of mesh, if present.
func (c *ModelCacheChunk) RemoveMesh(mesh *unirender.Mesh) {
	for i, m := range c.Meshes {
		if m == mesh {
			c.Meshes = append(c.Meshes[:i], c.Meshes[i+1:]...)
			return
		}
	}
}

// RemoveObject removes the first occurrence of obj, if present.
func (c *ModelCacheChunk) RemoveObject(obj *unirender.Object) {
	for i, o := range c.Objects {
		if o == obj {
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			return
		}
	}
}

// Mesh returns the mesh at idx, or nil if out of range.
func (c *ModelCacheChunk) Mesh(idx uint32) *unirender.Mesh {
	if int(idx) >= len(c.Meshes) {
		return nil
	}
	return c.Meshes[idx]
}

// Object returns the object at idx, or nil if out of range.
func (c *ModelCacheChunk) Object(idx uint32) *unirender.Object {
	if int(idx) >= len(c.Objects) {
		return nil
	}
	return c.Objects[idx]
}

// MeshToIndexTable returns the inverse of Meshes, used by Object.Encode's
// meshIndexOf callback during Bake.
func (c *ModelCacheChunk) MeshToIndexTable() map[*unirender.Mesh]uint32 {
	table := make(map[*unirender.Mesh]uint32, len(c.Meshes))
	for i, m := range c.Meshes {
		table[m] = uint32(i)
	}
	return table
}

// HasBakedData reports whether Bake has produced byte blobs current with
// the live graph.
func (c *ModelCacheChunk) HasBakedData() bool { return c.flags&chunkHasBakedData != 0 }

// HasUnbakedData reports whether the live object/mesh graph is current
// with the baked blobs.
func (c *ModelCacheChunk) HasUnbakedData() bool { return c.flags&chunkHasUnbakedData != 0 }

func hashBytes(data []byte) uint64 {
	return murmur3.Sum64WithSeed(data, murmurSeed)
}

// Bake serializes every object and mesh into its own byte blob, content-
// hashes each with murmur3, stamps the hash onto the source object/mesh's
// Hash field, and appends it to the blob as a trailing field so
// GenerateUnbakedData can restore it on the way back (mirroring the
// source's `ds->Write(hash)` after `util::murmur_hash3`). A no-op if the
// chunk is already baked.
func (c *ModelCacheChunk) Bake() {
	if c.HasBakedData() {
		unirender.Logger().Debug("model cache chunk bake: cache hit", "objects", len(c.Objects), "meshes", len(c.Meshes))
		return
	}
	unirender.Logger().Debug("model cache chunk bake: cache miss", "objects", len(c.Objects), "meshes", len(c.Meshes))
	meshToIndex := c.MeshToIndexTable()
	c.bakedObjects = make([][]byte, 0, len(c.Objects))
	for _, o := range c.Objects {
		enc := udm.NewEncoder()
		o.Encode(enc, func(m *unirender.Mesh) (uint32, bool) {
			idx, ok := meshToIndex[m]
			return idx, ok
		})
		hash := hashBytes(enc.Bytes())
		o.Hash = hash
		enc.WriteUint64(hash)
		c.bakedObjects = append(c.bakedObjects, enc.Bytes())
	}

	shaderToIndex := c.ShaderCache.ShaderToIndexTable()
	c.bakedMeshes = make([][]byte, 0, len(c.Meshes))
	for _, m := range c.Meshes {
		enc := udm.NewEncoder()
		m.Encode(enc, func(s *unirender.Shader) (uint32, bool) {
			idx, ok := shaderToIndex[s]
			return idx, ok
		})
		hash := hashBytes(enc.Bytes())
		m.Hash = hash
		enc.WriteUint64(hash)
		c.bakedMeshes = append(c.bakedMeshes, enc.Bytes())
	}
	c.flags |= chunkHasBakedData
}

// GenerateUnbakedData rebuilds the live object/mesh graph from the cached
// baked blobs. A no-op unless force is set or the live graph is stale.
func (c *ModelCacheChunk) GenerateUnbakedData(force bool) {
	if c.HasUnbakedData() && !force {
		return
	}
	shaders := c.ShaderCache.Shaders
	c.Meshes = make([]*unirender.Mesh, len(c.bakedMeshes))
	for i, blob := range c.bakedMeshes {
		dec := udm.NewDecoder(blob)
		c.Meshes[i] = unirender.DecodeMesh(dec, func(idx uint32) *unirender.Shader {
			if int(idx) >= len(shaders) {
				return nil
			}
			return shaders[idx]
		})
	}

	c.Objects = make([]*unirender.Object, len(c.bakedObjects))
	for i, blob := range c.bakedObjects {
		dec := udm.NewDecoder(blob)
		meshes := c.Meshes
		c.Objects[i] = unirender.DecodeObject(dec, func(idx uint32) *unirender.Mesh {
			if int(idx) >= len(meshes) {
				return nil
			}
			return meshes[idx]
		})
	}
	c.flags |= chunkHasUnbakedData
}

// unbake discards the cached baked blobs, regenerating the live graph
// first if it isn't already current (matching the source's Unbake, called
// internally before any mutation that would invalidate a stale bake).
func (c *ModelCacheChunk) unbake() {
	if !c.HasBakedData() {
		return
	}
	if !c.HasUnbakedData() {
		c.GenerateUnbakedData(false)
	}
	c.bakedObjects = nil
	c.bakedMeshes = nil
	c.flags &^= chunkHasBakedData
}

// Encode bakes the chunk (if not already baked) and serializes its shader
// cache followed by the baked object and mesh blobs.
func (c *ModelCacheChunk) Encode(enc *udm.Encoder) {
	c.Bake()

	enc.WriteUint32(serializationVersion)
	c.ShaderCache.Encode(enc)

	writeBlobList := func(list [][]byte) {
		enc.WriteUint32(uint32(len(list)))
		for _, blob := range list {
			enc.WriteBytes(blob)
		}
	}
	writeBlobList(c.bakedObjects)
	writeBlobList(c.bakedMeshes)
}

// DecodeModelCacheChunk reconstructs a chunk written by Encode, leaving it
// in the baked-only state (live graph populated lazily via
// GenerateUnbakedData, matching the source).
func DecodeModelCacheChunk(dec *udm.Decoder) *ModelCacheChunk {
	version := dec.ReadUint32()
	if version < 3 || version > serializationVersion {
		return NewModelCacheChunk(NewShaderCache())
	}
	c := &ModelCacheChunk{
		ShaderCache:          DecodeShaderCache(dec),
		serializationVersion: version,
	}

	readBlobList := func() [][]byte {
		n := dec.ReadUint32()
		list := make([][]byte, n)
		for i := range list {
			list[i] = dec.ReadBytes()
		}
		return list
	}
	c.bakedObjects = readBlobList()
	c.bakedMeshes = readBlobList()
	c.flags = chunkHasBakedData
	return c
}
