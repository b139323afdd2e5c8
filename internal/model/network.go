// Package model defines domain models for decoded raw transactions.
package model

// Network names the Bitcoin network whose conventions (address encodings)
// apply when interpreting locking scripts.
type Network string

var (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
	Regtest Network = "regtest"
	Signet  Network = "signet"
)
