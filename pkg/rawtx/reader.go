package rawtx

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Reader is a forward-only cursor over an immutable byte buffer. It borrows
// the buffer for the duration of one parse and must not be shared across
// concurrent parses. All multi-byte integers are read little-endian.
type Reader struct {
	buf []byte
	off int
}

// NewReader returns a Reader positioned at the start of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining reports the number of unread bytes. Callers use it after a parse
// to detect trailing garbage.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.off
}

// ReadBytes reads exactly n bytes into a fresh slice, advancing the cursor.
// n == 0 succeeds with an empty slice; an underrun fails with
// ErrTruncatedInput and leaves the cursor unchanged.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("rawtx: negative read length %d", n)
	}
	if r.Remaining() < n {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, n, r.Remaining())
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// ReadUint32 reads a little-endian uint32.
func (r *Reader) ReadUint32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes, have %d", ErrTruncatedInput, r.Remaining())
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off : r.off+4])
	r.off += 4
	return v, nil
}

// ReadUint64 reads a little-endian uint64.
func (r *Reader) ReadUint64() (uint64, error) {
	if r.Remaining() < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes, have %d", ErrTruncatedInput, r.Remaining())
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off : r.off+8])
	r.off += 8
	return v, nil
}

// ReadHash reads 32 bytes into a chainhash.Hash. The wire stores hashes in
// internal byte order; chainhash.Hash keeps that order and reverses only for
// its hex display form.
func (r *Reader) ReadHash() (chainhash.Hash, error) {
	var h chainhash.Hash
	if r.Remaining() < chainhash.HashSize {
		return h, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedInput, chainhash.HashSize, r.Remaining())
	}
	copy(h[:], r.buf[r.off:r.off+chainhash.HashSize])
	r.off += chainhash.HashSize
	return h, nil
}
