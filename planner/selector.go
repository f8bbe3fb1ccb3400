// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package planner

import (
	"bytes"
	"math/rand"
	"sort"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/conformal-tools/spendplan/pkg/btcunit"
)

// SelectionStrategy is an interface that represents a coin selection
// strategy. A coin selection strategy is responsible for ordering, shuffling
// or filtering a list of coins before they are accumulated into a
// transaction's input set.
type SelectionStrategy interface {
	// ArrangeCoins takes a list of coins and arranges them according to
	// the specified coin selection strategy and fee rate. The input slice
	// is not modified.
	ArrangeCoins(eligible []UnspentOutput,
		feeRate btcunit.SatPerVByte) ([]UnspentOutput, error)
}

var (
	// SelectLargestFirst always picks the largest available utxo to add
	// to the transaction next, with a deterministic tie break so that
	// identical inputs always produce identical plans.
	SelectLargestFirst SelectionStrategy = &LargestFirstSelector{}

	// SelectRandom randomly selects the next utxo to add to the
	// transaction. This strategy prevents the creation of ever smaller
	// utxos over time.
	SelectRandom SelectionStrategy = &RandomSelector{}
)

// sortByValueDesc orders coins by descending value. Equal values fall back to
// ascending txid byte order and then ascending output index, making the order
// a total one for any duplicate-free coin set.
type sortByValueDesc []UnspentOutput

func (s sortByValueDesc) Len() int { return len(s) }

func (s sortByValueDesc) Less(i, j int) bool {
	if s[i].Value != s[j].Value {
		return s[i].Value > s[j].Value
	}

	cmp := bytes.Compare(
		s[i].OutPoint.Hash[:], s[j].OutPoint.Hash[:],
	)
	if cmp != 0 {
		return cmp < 0
	}

	return s[i].OutPoint.Index < s[j].OutPoint.Index
}

func (s sortByValueDesc) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// LargestFirstSelector is an implementation of the SelectionStrategy that
// always selects the largest coins first. It is a greedy heuristic: it does
// not minimize the number of inputs, does not minimize the excess over the
// target, and does not attempt exact-match selection.
type LargestFirstSelector struct{}

// ArrangeCoins sorts the coins by descending value with a deterministic tie
// break. The fee rate is unused by this strategy.
func (*LargestFirstSelector) ArrangeCoins(eligible []UnspentOutput,
	_ btcunit.SatPerVByte) ([]UnspentOutput, error) {

	arranged := make([]UnspentOutput, len(eligible))
	copy(arranged, eligible)

	sort.Sort(sortByValueDesc(arranged))

	return arranged, nil
}

// RandomSelector is an implementation of the SelectionStrategy that selects
// coins at random. This prevents the creation of ever smaller UTXOs over
// time that may never become economical to spend.
type RandomSelector struct {
	// InputSize is the estimated virtual size in vbytes of spending one
	// input, used to filter coins that cost more in fees than they
	// contribute. A zero value falls back to the default P2WPKH input
	// size.
	InputSize uint64
}

// ArrangeCoins filters out coins that do not yield positively at the given
// fee rate and shuffles the remainder.
func (r *RandomSelector) ArrangeCoins(eligible []UnspentOutput,
	feeRate btcunit.SatPerVByte) ([]UnspentOutput, error) {

	inputSize := r.InputSize
	if inputSize == 0 {
		inputSize = DefaultPerInput
	}

	// Skip inputs that do not raise the total transaction output value at
	// the requested fee rate.
	positivelyYielding := make([]UnspentOutput, 0, len(eligible))
	for _, utxo := range eligible {
		if !inputYieldsPositively(utxo, inputSize, feeRate) {
			continue
		}

		positivelyYielding = append(positivelyYielding, utxo)
	}

	rand.Shuffle(len(positivelyYielding), func(i, j int) {
		positivelyYielding[i], positivelyYielding[j] =
			positivelyYielding[j], positivelyYielding[i]
	})

	return positivelyYielding, nil
}

// inputYieldsPositively returns a boolean indicating whether this input
// yields positively if added to a transaction. This determination is based
// on the estimated added virtual size. For edge cases this function can
// return true while the input is yielding slightly negative as part of the
// final transaction.
func inputYieldsPositively(utxo UnspentOutput, inputSize uint64,
	feeRate btcunit.SatPerVByte) bool {

	inputFee := feeRate.FeeForVByte(btcunit.NewVByte(inputSize))

	return inputFee < utxo.Value
}

// SelectInputs accumulates the arranged coins in order, stopping as soon as
// their combined value reaches the target. If the whole set sums below the
// target, the full set is returned with a total below the target; the
// shortfall is the caller's to detect.
func SelectInputs(arranged []UnspentOutput,
	target btcutil.Amount) ([]UnspentOutput, btcutil.Amount) {

	var total btcutil.Amount
	selected := make([]UnspentOutput, 0, len(arranged))

	for _, utxo := range arranged {
		if total >= target {
			break
		}

		selected = append(selected, utxo)
		total += utxo.Value
	}

	return selected, total
}
