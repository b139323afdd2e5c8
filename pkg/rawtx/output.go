package rawtx

import (
	"encoding/binary"
	"fmt"
)

// TxOut carries an amount in satoshis and the opaque locking script that
// encumbers it.
type TxOut struct {
	Value    uint64
	PkScript []byte
}

// ParseTxOut reads one output from the cursor: u64le value followed by a
// varint-prefixed locking script.
func ParseTxOut(r *Reader) (TxOut, error) {
	var out TxOut
	var err error

	if out.Value, err = r.ReadUint64(); err != nil {
		return TxOut{}, fmt.Errorf("value: %w", err)
	}
	scriptLen, err := r.ReadVarInt()
	if err != nil {
		return TxOut{}, fmt.Errorf("pk script length: %w", err)
	}
	if scriptLen > uint64(r.Remaining()) {
		return TxOut{}, fmt.Errorf("%w: pk script of %d bytes, %d remain", ErrTruncatedInput, scriptLen, r.Remaining())
	}
	if out.PkScript, err = r.ReadBytes(int(scriptLen)); err != nil {
		return TxOut{}, fmt.Errorf("pk script: %w", err)
	}
	return out, nil
}

// SerializeSize returns the number of bytes the output serializes to.
func (out *TxOut) SerializeSize() int {
	return 8 + VarIntSize(uint64(len(out.PkScript))) + len(out.PkScript)
}

// Serialize returns the wire encoding of the output.
func (out *TxOut) Serialize() []byte {
	return out.appendWire(make([]byte, 0, out.SerializeSize()))
}

func (out *TxOut) appendWire(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint64(dst, out.Value)
	dst = AppendVarInt(dst, uint64(len(out.PkScript)))
	return append(dst, out.PkScript...)
}
