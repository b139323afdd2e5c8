package model

// Transaction is the header row of a decoded raw transaction.
type Transaction struct {
	Network      Network
	TxID         string
	SourceOffset uint64
	Version      uint32
	LockTime     uint32
	Size         uint32
	InputCount   uint32
	OutputCount  uint32
	TotalOutput  uint64
}

// TransactionInput is a decoded input row referencing a previous output.
type TransactionInput struct {
	Network      Network
	TxID         string
	Index        uint32
	PrevTxID     string
	PrevVout     uint32
	Sequence     uint32
	IsCoinbase   bool
	ScriptSigHex string
}

// TransactionOutput is a decoded output row.
type TransactionOutput struct {
	Network    Network
	TxID       string
	Index      uint32
	Value      uint64
	ScriptType string
	ScriptHex  string
	Addresses  []string
}
