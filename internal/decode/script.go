// Package decode converts parsed raw transactions into domain rows, including
// locking-script classification and address extraction.
package decode

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/txlens/txlens-backend/internal/model"
)

// scriptDecoder classifies locking scripts and extracts human-readable
// addresses using the params of one network.
type scriptDecoder struct {
	params *chaincfg.Params
}

func newScriptDecoder(network model.Network) (*scriptDecoder, error) {
	params, err := chainParamsForNetwork(network)
	if err != nil {
		return nil, err
	}
	return &scriptDecoder{params: params}, nil
}

// classify returns the standard script class name and any addresses encoded
// in the script. Scripts that do not match a standard template classify as
// nonstandard with no addresses; classification never fails a decode.
func (d *scriptDecoder) classify(pkScript []byte) (string, []string) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, d.params)
	if err != nil {
		return txscript.NonStandardTy.String(), nil
	}

	result := make([]string, 0, len(addrs))
	for _, addr := range addrs {
		result = append(result, addr.EncodeAddress())
	}
	if len(result) == 0 {
		result = nil
	}
	return class.String(), result
}

func chainParamsForNetwork(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
