package rawtx

import (
	"encoding/binary"
	"fmt"
)

// Marker bytes selecting the wider varint size classes.
const (
	varIntMarker16 = 0xfd
	varIntMarker32 = 0xfe
	varIntMarker64 = 0xff
)

// ReadVarInt decodes one variable-length integer from the cursor. Any
// well-formed encoding is accepted, including non-minimal ones; only the
// encoder is required to be canonical.
func (r *Reader) ReadVarInt() (uint64, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, fmt.Errorf("varint marker: %w", err)
	}
	switch b[0] {
	case varIntMarker16:
		p, err := r.ReadBytes(2)
		if err != nil {
			return 0, fmt.Errorf("varint u16 payload: %w", err)
		}
		return uint64(binary.LittleEndian.Uint16(p)), nil
	case varIntMarker32:
		p, err := r.ReadBytes(4)
		if err != nil {
			return 0, fmt.Errorf("varint u32 payload: %w", err)
		}
		return uint64(binary.LittleEndian.Uint32(p)), nil
	case varIntMarker64:
		p, err := r.ReadBytes(8)
		if err != nil {
			return 0, fmt.Errorf("varint u64 payload: %w", err)
		}
		return binary.LittleEndian.Uint64(p), nil
	default:
		return uint64(b[0]), nil
	}
}

// AppendVarInt appends the minimal encoding of v to dst and returns the
// extended slice.
func AppendVarInt(dst []byte, v uint64) []byte {
	switch {
	case v < varIntMarker16:
		return append(dst, byte(v))
	case v <= 0xffff:
		dst = append(dst, varIntMarker16)
		return binary.LittleEndian.AppendUint16(dst, uint16(v))
	case v <= 0xffffffff:
		dst = append(dst, varIntMarker32)
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	default:
		dst = append(dst, varIntMarker64)
		return binary.LittleEndian.AppendUint64(dst, v)
	}
}

// VarIntSize returns the encoded length of v in bytes.
func VarIntSize(v uint64) int {
	switch {
	case v < varIntMarker16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}
