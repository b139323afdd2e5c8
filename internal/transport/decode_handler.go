// Package transport exposes the HTTP decode API.
package transport

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/txlens/txlens-backend/internal/decode"
	"github.com/txlens/txlens-backend/internal/model"
	"github.com/txlens/txlens-backend/pkg/rawtx"
	"go.uber.org/zap"
)

// Raw transactions over 4 MiB of hex are rejected before decoding.
const maxBodyBytes = 8 * 1024 * 1024

type Metrics interface {
	Observe(endpoint string, err error, started time.Time)
}

type DecodeHandler struct {
	logger     *zap.Logger
	metrics    Metrics
	converters map[model.Network]*decode.Converter
}

func NewDecodeHandler(logger *zap.Logger, metrics Metrics) (*DecodeHandler, error) {
	if metrics == nil {
		return nil, errors.New("decode api metrics is required")
	}

	converters := make(map[model.Network]*decode.Converter)
	for _, network := range []model.Network{model.Mainnet, model.Testnet, model.Regtest, model.Signet} {
		converter, err := decode.NewConverter(network)
		if err != nil {
			return nil, fmt.Errorf("converter for %s: %w", network, err)
		}
		converters[network] = converter
	}

	return &DecodeHandler{
		logger:     logger,
		metrics:    metrics,
		converters: converters,
	}, nil
}

// Register mounts the decode endpoints on mux.
func (h *DecodeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/transactions/decode", h.handleDecode)
	mux.HandleFunc("/healthz", h.handleHealth)
}

type decodeRequest struct {
	Network       string `json:"network"`
	RawHex        string `json:"raw_hex"`
	AllowTrailing bool   `json:"allow_trailing"`
}

type decodeResponse struct {
	TxID           string           `json:"txid"`
	Network        string           `json:"network"`
	Version        uint32           `json:"version"`
	LockTime       uint32           `json:"locktime"`
	Size           uint32           `json:"size"`
	InputCount     uint32           `json:"input_count"`
	OutputCount    uint32           `json:"output_count"`
	TotalOutput    uint64           `json:"total_output_sats"`
	TotalOutputBTC string           `json:"total_output"`
	TrailingBytes  int              `json:"trailing_bytes,omitempty"`
	Inputs         []inputResponse  `json:"inputs"`
	Outputs        []outputResponse `json:"outputs"`
}

type inputResponse struct {
	Index        uint32 `json:"index"`
	PrevTxID     string `json:"prev_txid"`
	PrevVout     uint32 `json:"prev_vout"`
	Sequence     uint32 `json:"sequence"`
	IsCoinbase   bool   `json:"is_coinbase"`
	ScriptSigHex string `json:"script_sig_hex"`
}

type outputResponse struct {
	Index      uint32   `json:"index"`
	Value      uint64   `json:"value_sats"`
	ScriptType string   `json:"script_type"`
	ScriptHex  string   `json:"script_hex"`
	Addresses  []string `json:"addresses,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *DecodeHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *DecodeHandler) handleDecode(w http.ResponseWriter, r *http.Request) {
	started := time.Now()
	var err error
	defer func() {
		h.metrics.Observe("decode", err, started)
	}()

	if r.Method != http.MethodPost {
		err = fmt.Errorf("method %s not allowed", r.Method)
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: err.Error()})
		return
	}

	var req decodeRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	network := model.Network(req.Network)
	if network == "" {
		network = model.Mainnet
	}
	converter, ok := h.converters[network]
	if !ok {
		err = fmt.Errorf("unsupported network %q", req.Network)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	raw, err := hex.DecodeString(req.RawHex)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid raw_hex: " + err.Error()})
		return
	}

	var tx *rawtx.Tx
	var trailing int
	if req.AllowTrailing {
		reader := rawtx.NewReader(raw)
		tx, err = rawtx.ParseTx(reader)
		if err == nil {
			trailing = reader.Remaining()
		}
	} else {
		tx, err = rawtx.DecodeTxStrict(raw)
	}
	if err != nil {
		h.logger.Debug("decode failed", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	converted, err := converter.Convert(tx, 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, buildDecodeResponse(converted, trailing))
}

func buildDecodeResponse(converted *model.InsertTransaction, trailing int) decodeResponse {
	resp := decodeResponse{
		TxID:           converted.Tx.TxID,
		Network:        string(converted.Tx.Network),
		Version:        converted.Tx.Version,
		LockTime:       converted.Tx.LockTime,
		Size:           converted.Tx.Size,
		InputCount:     converted.Tx.InputCount,
		OutputCount:    converted.Tx.OutputCount,
		TotalOutput:    converted.Tx.TotalOutput,
		TotalOutputBTC: formatAmount(converted.Tx.TotalOutput),
		TrailingBytes:  trailing,
		Inputs:         make([]inputResponse, 0, len(converted.Inputs)),
		Outputs:        make([]outputResponse, 0, len(converted.Outputs)),
	}

	for _, in := range converted.Inputs {
		resp.Inputs = append(resp.Inputs, inputResponse{
			Index:        in.Index,
			PrevTxID:     in.PrevTxID,
			PrevVout:     in.PrevVout,
			Sequence:     in.Sequence,
			IsCoinbase:   in.IsCoinbase,
			ScriptSigHex: in.ScriptSigHex,
		})
	}
	for _, out := range converted.Outputs {
		resp.Outputs = append(resp.Outputs, outputResponse{
			Index:      out.Index,
			Value:      out.Value,
			ScriptType: out.ScriptType,
			ScriptHex:  out.ScriptHex,
			Addresses:  out.Addresses,
		})
	}
	return resp
}

func formatAmount(sats uint64) string {
	if sats > math.MaxInt64 {
		return strconv.FormatUint(sats, 10) + " Satoshi"
	}
	return btcutil.Amount(sats).String()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
