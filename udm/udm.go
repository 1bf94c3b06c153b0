// Package udm is the binary blob codec the IR's persisted format (ShaderCache,
// Mesh, Object, ModelCacheChunk) is serialized through. It deliberately stays
// a thin, generic length-prefixed encoding rather than inventing a
// scene-description file format: callers own field order and versioning,
// the codec only owns byte layout.
package udm

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Encoder appends primitive values to a growing byte buffer in a fixed
// little-endian layout; strings and byte blobs are length-prefixed with a
// uint32.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

func (e *Encoder) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

func (e *Encoder) WriteInt32(v int32) { e.WriteUint32(uint32(v)) }

func (e *Encoder) WriteFloat32(v float32) { e.WriteUint32(math.Float32bits(v)) }

func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

func (e *Encoder) WriteString(s string) { e.WriteBytes([]byte(s)) }

func (e *Encoder) WriteBytes(b []byte) {
	e.WriteUint32(uint32(len(b)))
	e.buf.Write(b)
}

// WriteByte appends a single untagged byte, used by callers that need a
// compact discriminant (e.g. a socket-kind tag) rather than a full uint32.
func (e *Encoder) WriteByte(b byte) { e.buf.WriteByte(b) }

// Bytes returns the accumulated buffer.
func (e *Encoder) Bytes() []byte { return e.buf.Bytes() }

// Decoder reads primitive values back out of a byte slice written by an
// Encoder, tracking the first read error encountered (io.ErrUnexpectedEOF
// on a truncated buffer).
type Decoder struct {
	r   *bytes.Reader
	err error
}

// NewDecoder wraps data for sequential reads.
func NewDecoder(data []byte) *Decoder { return &Decoder{r: bytes.NewReader(data)} }

// Err returns the first error encountered by any Read call, if any.
func (d *Decoder) Err() error { return d.err }

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return d.r.Len() }

func (d *Decoder) read(n int) []byte {
	if d.err != nil {
		return make([]byte, n)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(d.r, b); err != nil {
		d.err = err
	}
	return b
}

func (d *Decoder) ReadUint32() uint32 { return binary.LittleEndian.Uint32(d.read(4)) }
func (d *Decoder) ReadUint64() uint64 { return binary.LittleEndian.Uint64(d.read(8)) }
func (d *Decoder) ReadInt32() int32   { return int32(d.ReadUint32()) }
func (d *Decoder) ReadFloat32() float32 { return math.Float32frombits(d.ReadUint32()) }

func (d *Decoder) ReadBool() bool {
	b := d.read(1)
	return b[0] != 0
}

// ReadByte reads back a single byte written by WriteByte.
func (d *Decoder) ReadByte() byte {
	b := d.read(1)
	return b[0]
}

func (d *Decoder) ReadString() string { return string(d.ReadBytes()) }

func (d *Decoder) ReadBytes() []byte {
	n := d.ReadUint32()
	if d.err != nil {
		return nil
	}
	return d.read(int(n))
}
