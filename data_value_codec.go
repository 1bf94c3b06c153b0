package unirender

import "github.com/SlawekNowy/UniRender-sub000/udm"

// EncodeDataValue appends v's type tag and, if valid, its payload to enc.
// Grounded on original_source/src/data_value.cpp's DataValue::Serialize
// per-SocketType dispatch; FloatArray/ColorArray are written as a plain
// length-prefixed array rather than the original's LZ4-compressed blob —
// no LZ4 dependency is grounded anywhere in this module's example pack, and
// a raw array keeps the codec's only dependency (udm) consistent with every
// other Encode/Decode pair in this package (see DESIGN.md).
func EncodeDataValue(enc *udm.Encoder, v DataValue) {
	enc.WriteUint32(uint32(v.Type))
	enc.WriteBool(v.Valid())
	if !v.Valid() {
		return
	}
	raw, _ := v.Raw()
	switch v.Type {
	case Bool:
		enc.WriteBool(raw.(bool))
	case Float:
		enc.WriteFloat32(raw.(float32))
	case Int, Enum:
		enc.WriteInt32(raw.(int32))
	case UInt:
		enc.WriteUint32(raw.(uint32))
	case Color, Vector, Point, Normal:
		encodeVector3(enc, raw.(Vector3))
	case Point2:
		p := raw.(Vector2)
		enc.WriteFloat32(p.X)
		enc.WriteFloat32(p.Y)
	case String:
		enc.WriteString(raw.(string))
	case Transform_:
		encodeTransform(enc, raw.(Transform))
	case FloatArray:
		arr := raw.([]float32)
		enc.WriteUint32(uint32(len(arr)))
		for _, f := range arr {
			enc.WriteFloat32(f)
		}
	case ColorArray:
		arr := raw.([]Vector3)
		enc.WriteUint32(uint32(len(arr)))
		for _, v := range arr {
			encodeVector3(enc, v)
		}
	case Closure, NodeRef:
		// link-only, no runtime payload to store.
	}
}

// DecodeDataValue reads back a DataValue written by EncodeDataValue.
func DecodeDataValue(dec *udm.Decoder) DataValue {
	t := SocketType(dec.ReadUint32())
	if !dec.ReadBool() {
		return DataValue{Type: t}
	}
	switch t {
	case Bool:
		return NewDataValue(t, dec.ReadBool())
	case Float:
		return NewDataValue(t, dec.ReadFloat32())
	case Int, Enum:
		return NewDataValue(t, dec.ReadInt32())
	case UInt:
		return NewDataValue(t, dec.ReadUint32())
	case Color, Vector, Point, Normal:
		return NewDataValue(t, decodeVector3(dec))
	case Point2:
		return NewDataValue(t, Vector2{X: dec.ReadFloat32(), Y: dec.ReadFloat32()})
	case String:
		return NewDataValue(t, dec.ReadString())
	case Transform_:
		return NewDataValue(t, decodeTransformValue(dec))
	case FloatArray:
		n := dec.ReadUint32()
		arr := make([]float32, n)
		for i := range arr {
			arr[i] = dec.ReadFloat32()
		}
		return NewDataValue(t, arr)
	case ColorArray:
		n := dec.ReadUint32()
		arr := make([]Vector3, n)
		for i := range arr {
			arr[i] = decodeVector3(dec)
		}
		return NewDataValue(t, arr)
	default:
		return DataValue{Type: t}
	}
}

func encodeVector3(enc *udm.Encoder, v Vector3) {
	enc.WriteFloat32(v.X)
	enc.WriteFloat32(v.Y)
	enc.WriteFloat32(v.Z)
}

func decodeVector3(dec *udm.Decoder) Vector3 {
	return Vector3{X: dec.ReadFloat32(), Y: dec.ReadFloat32(), Z: dec.ReadFloat32()}
}

func encodeTransform(enc *udm.Encoder, t Transform) {
	for _, row := range t.M {
		for _, f := range row {
			enc.WriteFloat32(f)
		}
	}
}

func decodeTransformValue(dec *udm.Decoder) Transform {
	var t Transform
	for i := range t.M {
		for j := range t.M[i] {
			t.M[i][j] = dec.ReadFloat32()
		}
	}
	return t
}
