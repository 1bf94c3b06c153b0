// Package modelcache implements the mesh/object/shader persistence layer
// sitting in front of a renderer backend (§4.6): a ShaderCache lists the
// shaders a scene references, and a ModelCache groups meshes/objects into
// bake-able chunks so a renderer backend can be handed a flat, serialized
// blob instead of a live pointer graph.
//
// Grounded on original_source/include/util_raytracing/model_cache.hpp and
// src/implementation/model_cache.cpp.
package modelcache

import (
	unirender "github.com/SlawekNowy/UniRender-sub000"
	"github.com/SlawekNowy/UniRender-sub000/udm"
)

// serializationVersion is this package's wire-format version, grounded on
// original_source's Scene::SERIALIZATION_VERSION gate
// ("version < 3 || version > SERIALIZATION_VERSION" refuses to decode).
// This translation has no prior wire format to stay compatible with, so
// the minimum accepted version and the current version are the same value.
const serializationVersion uint32 = 3

// ShaderCache is an ordered table of shaders referenced by one or more
// ModelCacheChunks (§4.6); indices follow insertion order and AddShader
// does not deduplicate. Mesh sub-mesh-shader references are
// stored as indices into this table once a chunk bakes.
type ShaderCache struct {
	Shaders []*unirender.Shader
}

// NewShaderCache returns an empty ShaderCache.
func NewShaderCache() *ShaderCache { return &ShaderCache{} }

// AddShader appends shader and returns its index.
func (c *ShaderCache) AddShader(shader *unirender.Shader) uint32 {
	c.Shaders = append(c.Shaders, shader)
	return uint32(len(c.Shaders) - 1)
}

// Shader returns the shader at idx, or nil if out of range.
func (c *ShaderCache) Shader(idx uint32) *unirender.Shader {
	if int(idx) >= len(c.Shaders) {
		return nil
	}
	return c.Shaders[idx]
}

// Merge appends other's shaders after c's.
func (c *ShaderCache) Merge(other *ShaderCache) {
	c.Shaders = append(c.Shaders, other.Shaders...)
}

// ShaderToIndexTable returns the inverse of Shaders, used by
// ModelCacheChunk.Bake to resolve a mesh's sub-mesh shader pointers into
// indices before serializing.
func (c *ShaderCache) ShaderToIndexTable() map[*unirender.Shader]uint32 {
	table := make(map[*unirender.Shader]uint32, len(c.Shaders))
	for i, s := range c.Shaders {
		table[s] = uint32(i)
	}
	return table
}

// Encode serializes the cache's version and every shader in order.
func (c *ShaderCache) Encode(enc *udm.Encoder) {
	enc.WriteUint32(serializationVersion)
	enc.WriteUint32(uint32(len(c.Shaders)))
	for _, s := range c.Shaders {
		s.Encode(enc)
	}
}

// DecodeShaderCache reconstructs a ShaderCache written by Encode. Returns
// an empty cache, matching the source's early-return, if the stream's
// version predates or postdates this package's supported range; no error
// is reported in that case.
func DecodeShaderCache(dec *udm.Decoder) *ShaderCache {
	c := NewShaderCache()
	version := dec.ReadUint32()
	if version < 3 || version > serializationVersion {
		return c
	}
	n := dec.ReadUint32()
	c.Shaders = make([]*unirender.Shader, n)
	for i := range c.Shaders {
		c.Shaders[i] = unirender.DecodeShader(dec)
	}
	return c
}
