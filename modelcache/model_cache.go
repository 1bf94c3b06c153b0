package modelcache

import "github.com/SlawekNowy/UniRender-sub000/udm"

// ModelCache is an ordered collection of ModelCacheChunks (§4.6): the unit
// a Scene hands to a renderer backend. Unique marks a cache that was built
// for exactly one scene and should not be shared across render jobs. The
// flag is held in memory only: Encode does not write it, and nothing in
// this module examines it.
type ModelCache struct {
	Chunks []*ModelCacheChunk
	Unique bool
}

// NewModelCache returns an empty ModelCache.
func NewModelCache() *ModelCache { return &ModelCache{} }

// SetUnique sets the Unique flag.
func (c *ModelCache) SetUnique(unique bool) { c.Unique = unique }

// IsUnique reports the Unique flag.
func (c *ModelCache) IsUnique() bool { return c.Unique }

// AddChunk appends and returns a new chunk backed by shaderCache.
func (c *ModelCache) AddChunk(shaderCache *ShaderCache) *ModelCacheChunk {
	chunk := NewModelCacheChunk(shaderCache)
	c.Chunks = append(c.Chunks, chunk)
	return chunk
}

// Merge appends other's chunks after c's.
func (c *ModelCache) Merge(other *ModelCache) {
	c.Chunks = append(c.Chunks, other.Chunks...)
}

// Bake bakes every chunk.
func (c *ModelCache) Bake() {
	for _, chunk := range c.Chunks {
		chunk.Bake()
	}
}

// GenerateData force-regenerates every chunk's live object/mesh graph from
// its baked blobs.
func (c *ModelCache) GenerateData() {
	for _, chunk := range c.Chunks {
		chunk.GenerateUnbakedData(true)
	}
}

// Encode bakes and serializes every chunk.
func (c *ModelCache) Encode(enc *udm.Encoder) {
	c.Bake()
	enc.WriteUint32(serializationVersion)
	enc.WriteUint32(uint32(len(c.Chunks)))
	for _, chunk := range c.Chunks {
		chunk.Encode(enc)
	}
}

// DecodeModelCache reconstructs a ModelCache written by Encode.
func DecodeModelCache(dec *udm.Decoder) *ModelCache {
	c := NewModelCache()
	version := dec.ReadUint32()
	if version < 3 || version > serializationVersion {
		return c
	}
	n := dec.ReadUint32()
	c.Chunks = make([]*ModelCacheChunk, n)
	for i := range c.Chunks {
		c.Chunks[i] = DecodeModelCacheChunk(dec)
	}
	return c
}
