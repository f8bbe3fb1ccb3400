// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/conformal-tools/spendplan/planner"
)

// utxoRecord is the on-disk shape of one unspent output. Values are satoshis
// and the txid uses the usual reversed-hex display order.
type utxoRecord struct {
	TxID         string `json:"txid"`
	Vout         uint32 `json:"vout"`
	Value        int64  `json:"value"`
	ScriptPubKey string `json:"scriptPubKey,omitempty"`
}

// loadUTXOs reads a JSON array of utxoRecord from the given path and converts
// it into the planner's unspent output type.
func loadUTXOs(path string) ([]planner.UnspentOutput, error) {
	// #nosec G304 -- the path is supplied by the operator on the command
	// line.
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []utxoRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("invalid utxo file %s: %w", path, err)
	}

	utxos := make([]planner.UnspentOutput, 0, len(records))
	for i, record := range records {
		hash, err := chainhash.NewHashFromStr(record.TxID)
		if err != nil {
			return nil, fmt.Errorf("record %d: bad txid %q: %w",
				i, record.TxID, err)
		}

		var pkScript []byte
		if record.ScriptPubKey != "" {
			pkScript, err = hex.DecodeString(record.ScriptPubKey)
			if err != nil {
				return nil, fmt.Errorf("record %d: bad "+
					"script: %w", i, err)
			}
		}

		utxos = append(utxos, planner.UnspentOutput{
			OutPoint: wire.OutPoint{
				Hash:  *hash,
				Index: record.Vout,
			},
			Value:    btcutil.Amount(record.Value),
			PkScript: pkScript,
		})
	}

	return utxos, nil
}
