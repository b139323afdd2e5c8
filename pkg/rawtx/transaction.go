package rawtx

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Tx is a parsed legacy transaction. Input and output order is significant:
// it is part of the hashed byte content. The codec imposes no minimum on the
// list lengths; empty lists round-trip faithfully.
type Tx struct {
	Version  uint32
	Inputs   []TxIn
	Outputs  []TxOut
	LockTime uint32
}

// ParseTx reads one transaction from the cursor in strict wire order:
// version, input count, inputs, output count, outputs, locktime. Parsing is
// all-or-nothing; a truncation anywhere propagates unchanged and no partial
// transaction is returned. Bytes past the transaction are left unread.
func ParseTx(r *Reader) (*Tx, error) {
	var tx Tx
	var err error

	if tx.Version, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("version: %w", err)
	}

	inCount, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("input count: %w", err)
	}
	if inCount > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d inputs declared, %d bytes remain", ErrTruncatedInput, inCount, r.Remaining())
	}
	tx.Inputs = make([]TxIn, 0, inCount)
	for i := uint64(0); i < inCount; i++ {
		in, err := ParseTxIn(r)
		if err != nil {
			return nil, fmt.Errorf("input %d: %w", i, err)
		}
		tx.Inputs = append(tx.Inputs, in)
	}

	outCount, err := r.ReadVarInt()
	if err != nil {
		return nil, fmt.Errorf("output count: %w", err)
	}
	if outCount > uint64(r.Remaining()) {
		return nil, fmt.Errorf("%w: %d outputs declared, %d bytes remain", ErrTruncatedInput, outCount, r.Remaining())
	}
	tx.Outputs = make([]TxOut, 0, outCount)
	for i := uint64(0); i < outCount; i++ {
		out, err := ParseTxOut(r)
		if err != nil {
			return nil, fmt.Errorf("output %d: %w", i, err)
		}
		tx.Outputs = append(tx.Outputs, out)
	}

	if tx.LockTime, err = r.ReadUint32(); err != nil {
		return nil, fmt.Errorf("locktime: %w", err)
	}
	return &tx, nil
}

// DecodeTx parses one transaction from the front of b. Trailing bytes are
// ignored; use DecodeTxStrict to reject them.
func DecodeTx(b []byte) (*Tx, error) {
	return ParseTx(NewReader(b))
}

// DecodeTxStrict parses one transaction from b and fails with
// ErrTrailingData if any bytes remain unread.
func DecodeTxStrict(b []byte) (*Tx, error) {
	r := NewReader(b)
	tx, err := ParseTx(r)
	if err != nil {
		return nil, err
	}
	if n := r.Remaining(); n != 0 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTrailingData, n)
	}
	return tx, nil
}

// SerializeSize returns the number of bytes the transaction serializes to.
func (tx *Tx) SerializeSize() int {
	n := 8 + VarIntSize(uint64(len(tx.Inputs))) + VarIntSize(uint64(len(tx.Outputs)))
	for i := range tx.Inputs {
		n += tx.Inputs[i].SerializeSize()
	}
	for i := range tx.Outputs {
		n += tx.Outputs[i].SerializeSize()
	}
	return n
}

// Serialize returns the canonical wire encoding of the transaction. The
// result is the exact inverse of ParseTx and the preimage of TxID.
func (tx *Tx) Serialize() []byte {
	dst := make([]byte, 0, tx.SerializeSize())
	dst = binary.LittleEndian.AppendUint32(dst, tx.Version)
	dst = AppendVarInt(dst, uint64(len(tx.Inputs)))
	for i := range tx.Inputs {
		dst = tx.Inputs[i].appendWire(dst)
	}
	dst = AppendVarInt(dst, uint64(len(tx.Outputs)))
	for i := range tx.Outputs {
		dst = tx.Outputs[i].appendWire(dst)
	}
	return binary.LittleEndian.AppendUint32(dst, tx.LockTime)
}

// TxID returns the double SHA-256 of the serialized transaction. It is
// recomputed on every call; mutating any field yields a different identifier,
// so callers must not hold on to it across mutation. The conventional
// byte-reversed hex form is Hash.String().
func (tx *Tx) TxID() chainhash.Hash {
	return chainhash.DoubleHashH(tx.Serialize())
}

// TotalOutputValue sums all output values, failing with ErrAmountOverflow
// instead of wrapping. A wrapped total could misrepresent the transferred
// value.
func (tx *Tx) TotalOutputValue() (uint64, error) {
	var total uint64
	for i := range tx.Outputs {
		sum, carry := bits.Add64(total, tx.Outputs[i].Value, 0)
		if carry != 0 {
			return 0, fmt.Errorf("%w: summing output %d", ErrAmountOverflow, i)
		}
		total = sum
	}
	return total, nil
}
