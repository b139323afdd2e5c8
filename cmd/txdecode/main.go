package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/txlens/txlens-backend/internal/decode"
	"github.com/txlens/txlens-backend/internal/model"
	"github.com/txlens/txlens-backend/pkg/rawtx"
)

type config struct {
	Network       model.Network `long:"network" env:"TXDECODE_NETWORK" description:"network for address encoding" default:"mainnet"`
	AllowTrailing bool          `long:"allow-trailing" description:"permit trailing bytes after the transaction"`
	Args          struct {
		Hex string `positional-arg-name:"HEX" description:"hex-encoded raw transaction; '-' or empty reads stdin"`
	} `positional-args:"yes"`
}

type output struct {
	TxID          string         `json:"txid"`
	Version       uint32         `json:"version"`
	LockTime      uint32         `json:"locktime"`
	Size          uint32         `json:"size"`
	TotalOutput   uint64         `json:"total_output_sats"`
	TrailingBytes int            `json:"trailing_bytes,omitempty"`
	Inputs        []outputInput  `json:"inputs"`
	Outputs       []outputOutput `json:"outputs"`
}

type outputInput struct {
	Index        uint32 `json:"index"`
	PrevTxID     string `json:"prev_txid"`
	PrevVout     uint32 `json:"prev_vout"`
	Sequence     uint32 `json:"sequence"`
	IsCoinbase   bool   `json:"is_coinbase"`
	ScriptSigHex string `json:"script_sig_hex"`
}

type outputOutput struct {
	Index      uint32   `json:"index"`
	Value      uint64   `json:"value_sats"`
	ScriptType string   `json:"script_type"`
	ScriptHex  string   `json:"script_hex"`
	Addresses  []string `json:"addresses,omitempty"`
}

func main() {
	cfg := config{}
	if _, err := flags.Parse(&cfg); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		log.Fatalf("failed to parse flags: %v", err)
	}

	if err := run(cfg, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("txdecode: %v", err)
	}
}

func run(cfg config, stdin io.Reader, stdout io.Writer) error {
	rawHex := cfg.Args.Hex
	if rawHex == "" || rawHex == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		rawHex = strings.TrimSpace(string(data))
	}

	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}

	var tx *rawtx.Tx
	var trailing int
	if cfg.AllowTrailing {
		reader := rawtx.NewReader(raw)
		if tx, err = rawtx.ParseTx(reader); err != nil {
			return err
		}
		trailing = reader.Remaining()
	} else {
		if tx, err = rawtx.DecodeTxStrict(raw); err != nil {
			return err
		}
	}

	converter, err := decode.NewConverter(cfg.Network)
	if err != nil {
		return err
	}
	converted, err := converter.Convert(tx, 0)
	if err != nil {
		return err
	}

	out := output{
		TxID:          converted.Tx.TxID,
		Version:       converted.Tx.Version,
		LockTime:      converted.Tx.LockTime,
		Size:          converted.Tx.Size,
		TotalOutput:   converted.Tx.TotalOutput,
		TrailingBytes: trailing,
		Inputs:        make([]outputInput, 0, len(converted.Inputs)),
		Outputs:       make([]outputOutput, 0, len(converted.Outputs)),
	}
	for _, in := range converted.Inputs {
		out.Inputs = append(out.Inputs, outputInput{
			Index:        in.Index,
			PrevTxID:     in.PrevTxID,
			PrevVout:     in.PrevVout,
			Sequence:     in.Sequence,
			IsCoinbase:   in.IsCoinbase,
			ScriptSigHex: in.ScriptSigHex,
		})
	}
	for _, o := range converted.Outputs {
		out.Outputs = append(out.Outputs, outputOutput{
			Index:      o.Index,
			Value:      o.Value,
			ScriptType: o.ScriptType,
			ScriptHex:  o.ScriptHex,
			Addresses:  o.Addresses,
		})
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
