// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package planner decides which unspent outputs to spend for a payment, how
// many outputs the resulting transaction will have, and what fee and change
// to assign. It operates purely on an in-memory snapshot of unspent outputs
// supplied by the wallet; it never persists or mutates them.
package planner

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

// UnspentOutput represents a spendable UTXO which is available for coin
// selection. It is owned and supplied by the wallet; the planner only reads
// it.
type UnspentOutput struct {
	// OutPoint uniquely identifies the output by the hash of the funding
	// transaction and the output's index within it.
	OutPoint wire.OutPoint

	// Value is the amount carried by the output, in satoshis. It must be
	// positive.
	Value btcutil.Amount

	// PkScript is the locking script of the output. The planner treats
	// it as opaque bytes.
	PkScript []byte
}

// validateUTXOs checks a slice of unspent outputs for duplicate outpoints and
// non-positive values. It returns ErrDuplicateUTXO or ErrInvalidUTXO wrapped
// with the offending outpoint.
func validateUTXOs(utxos []UnspentOutput) error {
	seen := make(map[wire.OutPoint]struct{}, len(utxos))
	for _, utxo := range utxos {
		if utxo.Value <= 0 {
			return fmt.Errorf("%w: %v carries %d sat",
				ErrInvalidUTXO, utxo.OutPoint, utxo.Value)
		}

		if _, ok := seen[utxo.OutPoint]; ok {
			return fmt.Errorf("%w: %v", ErrDuplicateUTXO,
				utxo.OutPoint)
		}

		seen[utxo.OutPoint] = struct{}{}
	}

	return nil
}
