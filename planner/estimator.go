// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package planner

import (
	"fmt"

	"github.com/conformal-tools/spendplan/pkg/btcunit"
)

// Default virtual-size constants for a transaction spending and creating
// native segwit (P2WPKH) outputs.
const (
	// DefaultTxOverhead is the estimated virtual size in vbytes of the
	// fixed transaction parts: version, input and output counts, segwit
	// marker and flag, and locktime.
	DefaultTxOverhead = 10

	// DefaultPerInput is the estimated virtual size in vbytes added by
	// one P2WPKH input, including its share of the witness data.
	DefaultPerInput = 68

	// DefaultPerOutput is the estimated virtual size in vbytes added by
	// one P2WPKH output.
	DefaultPerOutput = 31
)

// Weights holds the per-component virtual-size constants used to estimate a
// transaction's size for one fixed script family. The constants are carried
// as an explicit value rather than package globals so that callers can vary
// them per network or script type.
type Weights struct {
	// TxOverhead is the fixed virtual size of a transaction with no
	// inputs or outputs.
	TxOverhead uint64

	// PerInput is the virtual size added by each input.
	PerInput uint64

	// PerOutput is the virtual size added by each output.
	PerOutput uint64
}

// DefaultWeights returns the virtual-size constants for P2WPKH inputs and
// outputs.
func DefaultWeights() Weights {
	return Weights{
		TxOverhead: DefaultTxOverhead,
		PerInput:   DefaultPerInput,
		PerOutput:  DefaultPerOutput,
	}
}

// EstimateVirtualSize returns the estimated virtual size of a transaction
// with the given number of inputs and outputs. The estimate is a planning
// heuristic only: a caller serializing a real transaction must treat the true
// size as authoritative. The result is monotonically non-decreasing in both
// arguments. Negative counts return ErrNegativeCount.
func (w Weights) EstimateVirtualSize(numInputs,
	numOutputs int) (btcunit.VByte, error) {

	if numInputs < 0 || numOutputs < 0 {
		return btcunit.VByte{}, fmt.Errorf(
			"%w: got %d inputs, %d outputs", ErrNegativeCount,
			numInputs, numOutputs)
	}

	size := btcunit.NewVByte(w.TxOverhead).
		Add(btcunit.NewVByte(w.PerInput).MulN(uint64(numInputs))).
		Add(btcunit.NewVByte(w.PerOutput).MulN(uint64(numOutputs)))

	return size, nil
}
