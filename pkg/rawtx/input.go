package rawtx

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// MaxSequence is the default sequence value, disabling relative timelocks.
	MaxSequence uint32 = 0xffffffff

	// MaxPrevOutIndex is the previous-output index of the null outpoint
	// spent by coinbase transactions.
	MaxPrevOutIndex uint32 = 0xffffffff
)

// TxIn references a previously created output and carries the unlocking
// script authorizing its spend. The codec treats both the script and the
// sequence as opaque.
type TxIn struct {
	PrevTxID        chainhash.Hash
	PrevIndex       uint32
	SignatureScript []byte
	Sequence        uint32
}

// ParseTxIn reads one input from the cursor: 32-byte previous txid, u32le
// previous output index, varint-prefixed signature script, u32le sequence.
func ParseTxIn(r *Reader) (TxIn, error) {
	var in TxIn
	var err error

	if in.PrevTxID, err = r.ReadHash(); err != nil {
		return TxIn{}, fmt.Errorf("prev txid: %w", err)
	}
	if in.PrevIndex, err = r.ReadUint32(); err != nil {
		return TxIn{}, fmt.Errorf("prev index: %w", err)
	}
	scriptLen, err := r.ReadVarInt()
	if err != nil {
		return TxIn{}, fmt.Errorf("signature script length: %w", err)
	}
	if scriptLen > uint64(r.Remaining()) {
		return TxIn{}, fmt.Errorf("%w: signature script of %d bytes, %d remain", ErrTruncatedInput, scriptLen, r.Remaining())
	}
	if in.SignatureScript, err = r.ReadBytes(int(scriptLen)); err != nil {
		return TxIn{}, fmt.Errorf("signature script: %w", err)
	}
	if in.Sequence, err = r.ReadUint32(); err != nil {
		return TxIn{}, fmt.Errorf("sequence: %w", err)
	}
	return in, nil
}

// SerializeSize returns the number of bytes the input serializes to.
func (in *TxIn) SerializeSize() int {
	return chainhash.HashSize + 4 + VarIntSize(uint64(len(in.SignatureScript))) + len(in.SignatureScript) + 4
}

// Serialize returns the wire encoding of the input.
func (in *TxIn) Serialize() []byte {
	return in.appendWire(make([]byte, 0, in.SerializeSize()))
}

func (in *TxIn) appendWire(dst []byte) []byte {
	dst = append(dst, in.PrevTxID[:]...)
	dst = binary.LittleEndian.AppendUint32(dst, in.PrevIndex)
	dst = AppendVarInt(dst, uint64(len(in.SignatureScript)))
	dst = append(dst, in.SignatureScript...)
	return binary.LittleEndian.AppendUint32(dst, in.Sequence)
}

// IsCoinbase reports whether the input spends the null outpoint, i.e. it is
// the block-reward input of a coinbase transaction.
func (in *TxIn) IsCoinbase() bool {
	var zero chainhash.Hash
	return in.PrevIndex == MaxPrevOutIndex && in.PrevTxID == zero
}
