package protocol

import (
	"bytes"
	"testing"
)

func TestUint16RoundTrip(t *testing.T) {
	tests := []uint16{0, 1, 255, 256, 65535}
	for _, v := range tests {
		buf := make([]byte, 2)
		n, err := encodeUint16(buf, v)
		if err != nil {
			t.Fatalf("encodeUint16(%d) error: %v", v, err)
		}
		if n != 2 {
			t.Errorf("encodeUint16(%d) wrote %d bytes, want 2", v, n)
		}
		got, m, err := decodeUint16(buf)
		if err != nil {
			t.Fatalf("decodeUint16 error: %v", err)
		}
		if got != v || m != 2 {
			t.Errorf("decodeUint16 = (%d, %d), want (%d, 2)", got, m, v)
		}
	}
}

func TestUint32RoundTrip(t *testing.T) {
	tests := []uint32{0, 1, 4294967295, 7}
	for _, v := range tests {
		buf := make([]byte, 4)
		if _, err := encodeUint32(buf, v); err != nil {
			t.Fatalf("encodeUint32(%d) error: %v", v, err)
		}
		got, n, err := decodeUint32(buf)
		if err != nil {
			t.Fatalf("decodeUint32 error: %v", err)
		}
		if got != v || n != 4 {
			t.Errorf("decodeUint32 = (%d, %d), want (%d, 4)", got, n, v)
		}
	}
}

func TestEncodeBufferOverflow(t *testing.T) {
	cases := []struct {
		name string
		buf  []byte
	}{
		{"u8", make([]byte, 0)},
		{"u16", make([]byte, 1)},
		{"u32", make([]byte, 3)},
	}
	if _, err := encodeUint8(cases[0].buf, 1); err != ErrBufferOverflow {
		t.Errorf("encodeUint8 with empty buffer: got %v, want ErrBufferOverflow", err)
	}
	if _, err := encodeUint16(cases[1].buf, 1); err != ErrBufferOverflow {
		t.Errorf("encodeUint16 with 1-byte buffer: got %v, want ErrBufferOverflow", err)
	}
	if _, err := encodeUint32(cases[2].buf, 1); err != ErrBufferOverflow {
		t.Errorf("encodeUint32 with 3-byte buffer: got %v, want ErrBufferOverflow", err)
	}
}

func TestDecodeTruncated(t *testing.T) {
	full := []byte{0x01, 0x02, 0x03, 0x04}
	for n := 0; n < len(full); n++ {
		if _, _, err := decodeUint32(full[:n]); err != ErrInvalid {
			t.Errorf("decodeUint32(%d bytes) = %v, want ErrInvalid", n, err)
		}
	}
}

func TestOptionalRoundTrip(t *testing.T) {
	buf := make([]byte, 8)

	n, err := EncodeOptional(buf, (*uint16)(nil), func(b []byte, v uint16) (int, error) {
		return encodeUint16(b, v)
	})
	if err != nil {
		t.Fatalf("EncodeOptional(nil) error: %v", err)
	}
	if n != 1 || buf[0] != 0x00 {
		t.Errorf("EncodeOptional(nil) wrote %v, want [0x00]", buf[:n])
	}
	got, m, err := DecodeOptional(buf[:n], decodeUint16)
	if err != nil || got != nil || m != 1 {
		t.Errorf("DecodeOptional(absent) = (%v, %d, %v), want (nil, 1, nil)", got, m, err)
	}

	v := uint16(42)
	n, err = EncodeOptional(buf, &v, func(b []byte, x uint16) (int, error) {
		return encodeUint16(b, x)
	})
	if err != nil {
		t.Fatalf("EncodeOptional(&42) error: %v", err)
	}
	want := []byte{0x01, 0x00, 0x2a}
	if !bytes.Equal(buf[:n], want) {
		t.Errorf("EncodeOptional(&42) = %v, want %v", buf[:n], want)
	}
	got, m, err = DecodeOptional(buf[:n], decodeUint16)
	if err != nil || got == nil || *got != 42 || m != 3 {
		t.Errorf("DecodeOptional(present) = (%v, %d, %v), want (42, 3, nil)", got, m, err)
	}
}

func TestOptionalInvalidTag(t *testing.T) {
	if _, _, err := DecodeOptional([]byte{0x02, 0x00}, decodeUint8); err != ErrInvalid {
		t.Errorf("DecodeOptional with tag 0x02 = %v, want ErrInvalid", err)
	}
}

func TestSequenceRoundTrip(t *testing.T) {
	items := []uint16{1, 2, 3, 4, 5}
	buf := make([]byte, 64)
	n, err := EncodeSequence(buf, items, encodeUint16)
	if err != nil {
		t.Fatalf("EncodeSequence error: %v", err)
	}
	if buf[0] != byte(len(items)) {
		t.Errorf("sequence length prefix = %d, want %d", buf[0], len(items))
	}
	got, m, err := DecodeSequence(buf[:n], decodeUint16)
	if err != nil {
		t.Fatalf("DecodeSequence error: %v", err)
	}
	if m != n {
		t.Errorf("DecodeSequence consumed %d, want %d", m, n)
	}
	if len(got) != len(items) {
		t.Fatalf("DecodeSequence returned %d items, want %d", len(got), len(items))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Errorf("item %d = %d, want %d", i, got[i], items[i])
		}
	}
}

func TestSequenceEmpty(t *testing.T) {
	buf := make([]byte, 4)
	n, err := EncodeSequence(buf, []uint16(nil), encodeUint16)
	if err != nil {
		t.Fatalf("EncodeSequence(nil) error: %v", err)
	}
	if n != 1 || buf[0] != 0 {
		t.Errorf("EncodeSequence(nil) wrote %v, want [0]", buf[:n])
	}
	got, m, err := DecodeSequence(buf[:n], decodeUint16)
	if err != nil || len(got) != 0 || m != 1 {
		t.Errorf("DecodeSequence(empty) = (%v, %d, %v)", got, m, err)
	}
}

func TestSequenceOverflow(t *testing.T) {
	items := make([]uint8, MaxSequenceLength+1)
	buf := make([]byte, 512)
	if _, err := EncodeSequence(buf, items, encodeUint8); err != ErrBufferOverflow {
		t.Errorf("EncodeSequence(256 items) = %v, want ErrBufferOverflow", err)
	}
}

func TestSequenceMaxLength(t *testing.T) {
	items := make([]uint8, MaxSequenceLength)
	buf := make([]byte, 512)
	n, err := EncodeSequence(buf, items, encodeUint8)
	if err != nil {
		t.Fatalf("EncodeSequence(255 items) error: %v", err)
	}
	if buf[0] != 0xFF {
		t.Errorf("length prefix = %#x, want 0xff", buf[0])
	}
	got, _, err := DecodeSequence(buf[:n], decodeUint8)
	if err != nil || len(got) != MaxSequenceLength {
		t.Errorf("DecodeSequence = (%d items, %v), want (255, nil)", len(got), err)
	}
}
