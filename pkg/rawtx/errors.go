// Package rawtx implements the legacy Bitcoin raw-transaction wire codec:
// parsing a byte stream into a structured transaction and serializing it back
// byte-for-byte. Script interpretation, signing and validation are out of
// scope; scripts are carried as opaque bytes.
package rawtx

import "errors"

var (
	// ErrTruncatedInput reports that the byte stream ended before a required
	// field could be fully read. A parse that fails this way returns no
	// partial transaction.
	ErrTruncatedInput = errors.New("rawtx: truncated input")

	// ErrAmountOverflow reports that a derived sum over output values does
	// not fit in uint64.
	ErrAmountOverflow = errors.New("rawtx: amount overflow")

	// ErrTrailingData reports unread bytes left after a strict decode.
	ErrTrailingData = errors.New("rawtx: trailing data after transaction")
)
