package model

// RawRecord is one raw transaction pulled from an archive source: the hex
// payload plus its position in the source, used as the resume point.
type RawRecord struct {
	Offset uint64
	Hex    string
}

// InsertTransaction groups a decoded transaction with its input and output
// rows for batch insertion.
type InsertTransaction struct {
	Tx      Transaction
	Inputs  []TransactionInput
	Outputs []TransactionOutput
}
