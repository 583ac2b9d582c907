// Package protocol implements the BABOOGEE wire codec and packet set: a
// self-describing, schema-bound binary format with no outer framing
// delimiter. Every Encode writes into a caller-supplied buffer and reports
// the number of bytes used; every Decode reads from a caller-supplied slice
// and reports bytes consumed.
package protocol

import "errors"

// ErrBufferOverflow is returned by an Encode when the destination buffer
// cannot hold the next atom.
var ErrBufferOverflow = errors.New("protocol: buffer overflow")

// ErrInvalid is returned by a Decode when the input is too short or carries
// an unrecognized tag (optional-presence byte, sequence length, or variant
// ordinal).
var ErrInvalid = errors.New("protocol: invalid payload")

// ErrWrongDirection is returned when a frame's top-level Packet tag names
// the wrong party: a server decoding bytes tagged Client, or vice versa.
var ErrWrongDirection = errors.New("protocol: packet sent in wrong direction")

func encodeUint8(buf []byte, v uint8) (int, error) {
	if len(buf) < 1 {
		return 0, ErrBufferOverflow
	}
	buf[0] = v
	return 1, nil
}

func decodeUint8(buf []byte) (uint8, int, error) {
	if len(buf) < 1 {
		return 0, 0, ErrInvalid
	}
	return buf[0], 1, nil
}

func encodeUint16(buf []byte, v uint16) (int, error) {
	if len(buf) < 2 {
		return 0, ErrBufferOverflow
	}
	buf[0] = byte(v >> 8)
	buf[1] = byte(v)
	return 2, nil
}

func decodeUint16(buf []byte) (uint16, int, error) {
	if len(buf) < 2 {
		return 0, 0, ErrInvalid
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), 2, nil
}

func encodeUint32(buf []byte, v uint32) (int, error) {
	if len(buf) < 4 {
		return 0, ErrBufferOverflow
	}
	buf[0] = byte(v >> 24)
	buf[1] = byte(v >> 16)
	buf[2] = byte(v >> 8)
	buf[3] = byte(v)
	return 4, nil
}

func decodeUint32(buf []byte) (uint32, int, error) {
	if len(buf) < 4 {
		return 0, 0, ErrInvalid
	}
	v := uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3])
	return v, 4, nil
}

// EncodeOptional writes the 0x00/0x01 presence tag followed by the value's
// encoding when present. No ServerPacket/ClientPacket variant currently
// carries an Optional field, but the combinator is part of the codec
// contract (spec 4.A) and is exercised directly by codec tests.
func EncodeOptional[T any](buf []byte, v *T, encode func([]byte, T) (int, error)) (int, error) {
	if v == nil {
		n, err := encodeUint8(buf, 0x00)
		return n, err
	}
	n, err := encodeUint8(buf, 0x01)
	if err != nil {
		return 0, err
	}
	m, err := encode(buf[n:], *v)
	if err != nil {
		return 0, err
	}
	return n + m, nil
}

// DecodeOptional reads the presence tag and, if set, decodes T. Any tag
// byte other than 0x00/0x01 is ErrInvalid.
func DecodeOptional[T any](buf []byte, decode func([]byte) (T, int, error)) (*T, int, error) {
	tag, n, err := decodeUint8(buf)
	if err != nil {
		return nil, 0, err
	}
	switch tag {
	case 0x00:
		return nil, n, nil
	case 0x01:
		v, m, err := decode(buf[n:])
		if err != nil {
			return nil, 0, err
		}
		return &v, n + m, nil
	default:
		return nil, 0, ErrInvalid
	}
}

// MaxSequenceLength is the largest length a Sequence[T] can carry: the
// length prefix is a single u8 (spec 4.A design consequence).
const MaxSequenceLength = 255

// EncodeSequence writes a u8 length followed by the encodings of each
// element, in order. Returns ErrBufferOverflow if len(items) exceeds
// MaxSequenceLength — the wire format simply cannot name a longer sequence.
func EncodeSequence[T any](buf []byte, items []T, encode func([]byte, T) (int, error)) (int, error) {
	if len(items) > MaxSequenceLength {
		return 0, ErrBufferOverflow
	}
	n, err := encodeUint8(buf, uint8(len(items)))
	if err != nil {
		return 0, err
	}
	off := n
	for _, item := range items {
		m, err := encode(buf[off:], item)
		if err != nil {
			return 0, err
		}
		off += m
	}
	return off, nil
}

// DecodeSequence reads a u8 length and that many encodings of T.
func DecodeSequence[T any](buf []byte, decode func([]byte) (T, int, error)) ([]T, int, error) {
	length, n, err := decodeUint8(buf)
	if err != nil {
		return nil, 0, err
	}
	off := n
	items := make([]T, 0, length)
	for i := 0; i < int(length); i++ {
		v, m, err := decode(buf[off:])
		if err != nil {
			return nil, 0, err
		}
		items = append(items, v)
		off += m
	}
	return items, off, nil
}
