package unirender

import "github.com/SlawekNowy/UniRender-sub000/udm"

// Object serialization, grounded on original_source/src/object.cpp's
// Object::Serialize/Deserialize: the mesh reference is written as an index
// into the owning ModelCacheChunk's mesh table (resolved by the caller via
// meshIndexOf/meshAt), matching how sub-mesh shader references work in
// Mesh.Encode.
func (o *Object) Encode(enc *udm.Encoder, meshIndexOf func(*Mesh) (uint32, bool)) {
	enc.WriteString(o.Name)
	enc.WriteBytes(o.UUID[:])
	encodeScaledTransform(enc, o.Pose)
	encodeScaledTransform(enc, o.MotionPose)

	idx, ok := meshIndexOf(o.Mesh)
	enc.WriteBool(ok)
	if ok {
		enc.WriteUint32(idx)
	}
}

// DecodeObject reconstructs an Object previously written by Object.Encode
// followed by the uint64 content hash ModelCacheChunk.Bake appends.
func DecodeObject(dec *udm.Decoder, meshAt func(uint32) *Mesh) *Object {
	o := &Object{BaseObject: BaseObject{Name: dec.ReadString()}}
	copy(o.UUID[:], dec.ReadBytes())
	o.Pose = decodeScaledTransform(dec)
	o.MotionPose = decodeScaledTransform(dec)

	if dec.ReadBool() {
		o.Mesh = meshAt(dec.ReadUint32())
	}

	// ModelCacheChunk.Bake appends the content hash as a trailing field
	// after serializing everything above; restore it here so a baked
	// chunk round-trips Hash the same way it round-trips geometry.
	o.Hash = dec.ReadUint64()

	return o
}

func encodeScaledTransform(enc *udm.Encoder, t ScaledTransform) {
	encodeTransform(enc, t.Transform)
	encodeVector3(enc, t.Scale)
}

func decodeScaledTransform(dec *udm.Decoder) ScaledTransform {
	return ScaledTransform{Transform: decodeTransformValue(dec), Scale: decodeVector3(dec)}
}

// EncodeScaledTransform and DecodeScaledTransform expose this package's
// ScaledTransform codec to sibling packages (scene's Camera/Light poses)
// that need the same wire format without duplicating it.
func EncodeScaledTransform(enc *udm.Encoder, t ScaledTransform) { encodeScaledTransform(enc, t) }

func DecodeScaledTransform(dec *udm.Decoder) ScaledTransform { return decodeScaledTransform(dec) }
