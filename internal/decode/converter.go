package decode

import (
	"encoding/hex"
	"fmt"

	"github.com/txlens/txlens-backend/internal/model"
	"github.com/txlens/txlens-backend/pkg/rawtx"
	"github.com/txlens/txlens-backend/pkg/safe"
)

// Converter turns raw transaction bytes into domain rows for one network.
type Converter struct {
	scripts *scriptDecoder
	network model.Network
}

// NewConverter constructs a Converter using the address conventions of the
// given network.
func NewConverter(network model.Network) (*Converter, error) {
	scripts, err := newScriptDecoder(network)
	if err != nil {
		return nil, err
	}
	return &Converter{scripts: scripts, network: network}, nil
}

// ConvertHex decodes a hex-encoded raw transaction and converts it. Trailing
// bytes after the transaction are an error.
func (c *Converter) ConvertHex(rawHex string, sourceOffset uint64) (*model.InsertTransaction, error) {
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	tx, err := rawtx.DecodeTxStrict(raw)
	if err != nil {
		return nil, err
	}
	return c.Convert(tx, sourceOffset)
}

// Convert builds the transaction, input and output rows for a parsed
// transaction.
func (c *Converter) Convert(tx *rawtx.Tx, sourceOffset uint64) (*model.InsertTransaction, error) {
	txid := tx.TxID().String()

	size, err := safe.Uint32(tx.SerializeSize())
	if err != nil {
		return nil, fmt.Errorf("tx %s size overflow: %w", txid, err)
	}
	inputCount, err := safe.Uint32(len(tx.Inputs))
	if err != nil {
		return nil, fmt.Errorf("tx %s input count overflow: %w", txid, err)
	}
	outputCount, err := safe.Uint32(len(tx.Outputs))
	if err != nil {
		return nil, fmt.Errorf("tx %s output count overflow: %w", txid, err)
	}
	totalOutput, err := tx.TotalOutputValue()
	if err != nil {
		return nil, fmt.Errorf("tx %s: %w", txid, err)
	}

	inputs := make([]model.TransactionInput, 0, len(tx.Inputs))
	for idx := range tx.Inputs {
		in := &tx.Inputs[idx]
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s input index overflow: %w", txid, err)
		}
		inputs = append(inputs, model.TransactionInput{
			Network:      c.network,
			TxID:         txid,
			Index:        index,
			PrevTxID:     in.PrevTxID.String(),
			PrevVout:     in.PrevIndex,
			Sequence:     in.Sequence,
			IsCoinbase:   in.IsCoinbase(),
			ScriptSigHex: hex.EncodeToString(in.SignatureScript),
		})
	}

	outputs := make([]model.TransactionOutput, 0, len(tx.Outputs))
	for idx := range tx.Outputs {
		out := &tx.Outputs[idx]
		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", txid, err)
		}
		scriptType, addresses := c.scripts.classify(out.PkScript)
		outputs = append(outputs, model.TransactionOutput{
			Network:    c.network,
			TxID:       txid,
			Index:      index,
			Value:      out.Value,
			ScriptType: scriptType,
			ScriptHex:  hex.EncodeToString(out.PkScript),
			Addresses:  addresses,
		})
	}

	return &model.InsertTransaction{
		Tx: model.Transaction{
			Network:      c.network,
			TxID:         txid,
			SourceOffset: sourceOffset,
			Version:      tx.Version,
			LockTime:     tx.LockTime,
			Size:         size,
			InputCount:   inputCount,
			OutputCount:  outputCount,
			TotalOutput:  totalOutput,
		},
		Inputs:  inputs,
		Outputs: outputs,
	}, nil
}
