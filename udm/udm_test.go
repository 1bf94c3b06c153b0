package udm

import (
	"io"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	enc := NewEncoder()
	enc.WriteUint32(42)
	enc.WriteUint64(1 << 40)
	enc.WriteInt32(-7)
	enc.WriteFloat32(3.5)
	enc.WriteBool(true)
	enc.WriteBool(false)
	enc.WriteString("hello")
	enc.WriteBytes([]byte{1, 2, 3})
	enc.WriteByte(0xAB)

	dec := NewDecoder(enc.Bytes())
	if got := dec.ReadUint32(); got != 42 {
		t.Errorf("ReadUint32() = %d, want 42", got)
	}
	if got := dec.ReadUint64(); got != 1<<40 {
		t.Errorf("ReadUint64() = %d, want %d", got, uint64(1)<<40)
	}
	if got := dec.ReadInt32(); got != -7 {
		t.Errorf("ReadInt32() = %d, want -7", got)
	}
	if got := dec.ReadFloat32(); got != 3.5 {
		t.Errorf("ReadFloat32() = %v, want 3.5", got)
	}
	if got := dec.ReadBool(); got != true {
		t.Error("ReadBool() #1 = false, want true")
	}
	if got := dec.ReadBool(); got != false {
		t.Error("ReadBool() #2 = true, want false")
	}
	if got := dec.ReadString(); got != "hello" {
		t.Errorf("ReadString() = %q, want %q", got, "hello")
	}
	if got := dec.ReadBytes(); string(got) != "\x01\x02\x03" {
		t.Errorf("ReadBytes() = %v, want [1 2 3]", got)
	}
	if got := dec.ReadByte(); got != 0xAB {
		t.Errorf("ReadByte() = %x, want ab", got)
	}
	if dec.Err() != nil {
		t.Errorf("Err() = %v, want nil", dec.Err())
	}
	if dec.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", dec.Remaining())
	}
}

func TestDecodeTruncatedBufferSetsErr(t *testing.T) {
	enc := NewEncoder()
	enc.WriteUint32(1)
	// Truncate the buffer so the next read underflows.
	data := enc.Bytes()[:2]

	dec := NewDecoder(data)
	dec.ReadUint32()
	if dec.Err() != io.ErrUnexpectedEOF {
		t.Errorf("Err() = %v, want io.ErrUnexpectedEOF", dec.Err())
	}
}

func TestDecodeStringEmpty(t *testing.T) {
	enc := NewEncoder()
	enc.WriteString("")
	dec := NewDecoder(enc.Bytes())
	if got := dec.ReadString(); got != "" {
		t.Errorf("ReadString() = %q, want empty", got)
	}
}
