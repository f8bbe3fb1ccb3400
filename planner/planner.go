// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package planner

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/conformal-tools/spendplan/pkg/btcunit"
)

// DefaultDustThreshold is the minimum change value in satoshis below which
// creating a change output is not worth the added fee. Change below the
// threshold is instead added to the fee.
const DefaultDustThreshold btcutil.Amount = 546

// Policy bundles the fee policy used for planning: the virtual-size
// constants, the dust threshold, and the coin selection strategy. Carrying
// these as an explicit value enables per-network or per-script-type variation
// without shared mutable state.
type Policy struct {
	// Weights holds the virtual-size constants used by the size
	// estimator. The zero value falls back to DefaultWeights.
	Weights Weights

	// DustThreshold is the minimum viable change value in satoshis. A
	// zero value falls back to DefaultDustThreshold.
	DustThreshold btcutil.Amount

	// Strategy is the algorithm used to arrange coins before selection.
	// A nil value falls back to SelectLargestFirst.
	Strategy SelectionStrategy
}

// DefaultPolicy returns a policy with P2WPKH size constants, the standard
// dust threshold, and deterministic largest-first selection.
func DefaultPolicy() Policy {
	return Policy{
		Weights:       DefaultWeights(),
		DustThreshold: DefaultDustThreshold,
		Strategy:      SelectLargestFirst,
	}
}

// SpendPlan is the result of planning a payment: the inputs to spend, the
// output count, and the fee and change to assign. The transaction
// construction collaborator consumes it to build and serialize the actual
// transaction, recomputing the true fee from the real serialized size before
// finalizing.
type SpendPlan struct {
	// Inputs are the selected unspent outputs, in selection order.
	Inputs []UnspentOutput

	// TotalIn is the combined value of the selected inputs.
	TotalIn btcutil.Amount

	// OutputCount is the number of transaction outputs, either 2
	// (recipient plus change) or 1 (recipient only, change dropped as
	// dust).
	OutputCount int

	// Fee is the planned fee in satoshis, computed from the estimated
	// virtual size and the requested fee rate.
	Fee btcutil.Amount

	// Change is the value returned to the payer. It is zero whenever
	// OutputCount is 1, and at least the dust threshold otherwise.
	Change btcutil.Amount

	// Feasible reports whether the selected inputs cover the send amount
	// plus the fee. An infeasible plan requires the caller to supply a
	// larger utxo set, reduce the send amount, or lower the fee rate; the
	// planner never retries with an expanded target on its own.
	Feasible bool
}

// Planner orchestrates the size estimator and the coin selection strategy to
// produce spend plans. It is stateless across calls and safe for concurrent
// use as long as each call receives a utxo snapshot that is not concurrently
// mutated.
type Planner struct {
	policy Policy
}

// NewPlanner creates a planner with the given policy. Zero-valued policy
// fields fall back to their defaults; a negative dust threshold is rejected
// with ErrInvalidDustThreshold.
func NewPlanner(policy Policy) (*Planner, error) {
	if policy.DustThreshold < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDustThreshold,
			policy.DustThreshold)
	}

	if policy.DustThreshold == 0 {
		policy.DustThreshold = DefaultDustThreshold
	}

	if policy.Weights == (Weights{}) {
		policy.Weights = DefaultWeights()
	}

	if policy.Strategy == nil {
		policy.Strategy = SelectLargestFirst
	}

	return &Planner{policy: policy}, nil
}

// Plan decides which of the given unspent outputs to spend for a payment of
// sendAmount at the given fee rate. The returned plan is informational: when
// no sufficient input combination exists it carries Feasible=false rather
// than an error. Use PlanStrict to fail loudly instead.
//
// Planning performs two refinement passes. A provisional selection target is
// computed assuming a single input and two outputs, inputs are selected
// against it, and the fee is then recomputed for the actual input count.
// If the resulting change is below the dust threshold, the change output is
// dropped and the fee recomputed once more for a single output. No
// re-selection against a larger target is performed when the final plan is
// infeasible.
func (p *Planner) Plan(utxos []UnspentOutput, sendAmount btcutil.Amount,
	feeRate btcunit.SatPerVByte) (*SpendPlan, error) {

	if sendAmount <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidAmount,
			sendAmount)
	}

	if feeRate.LessThanOrEqual(btcunit.ZeroSatPerVByte) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFeeRate,
			feeRate)
	}

	if len(utxos) == 0 {
		return nil, ErrNoUTXOs
	}

	err := validateUTXOs(utxos)
	if err != nil {
		return nil, err
	}

	// First pass: guess the fee assuming one input and two outputs
	// (recipient plus change) to obtain a provisional selection target.
	provisionalSize, err := p.policy.Weights.EstimateVirtualSize(1, 2)
	if err != nil {
		return nil, err
	}

	target := sendAmount + feeRate.FeeForVByte(provisionalSize)

	arranged, err := p.policy.Strategy.ArrangeCoins(utxos, feeRate)
	if err != nil {
		return nil, err
	}

	selected, totalIn := SelectInputs(arranged, target)

	// Second pass: recompute the fee for the input count that was
	// actually selected, still assuming a change output.
	twoOutSize, err := p.policy.Weights.EstimateVirtualSize(
		len(selected), 2,
	)
	if err != nil {
		return nil, err
	}

	fee := feeRate.FeeForVByte(twoOutSize)
	change := totalIn - sendAmount - fee

	if change >= p.policy.DustThreshold {
		log.Debugf("Planned spend of %d sat with %d inputs: size=%v, "+
			"fee=%d, change=%d", sendAmount, len(selected),
			twoOutSize, fee, change)

		return &SpendPlan{
			Inputs:      selected,
			TotalIn:     totalIn,
			OutputCount: 2,
			Fee:         fee,
			Change:      change,
			Feasible:    change >= 0,
		}, nil
	}

	// The change is dust. Drop the change output, which shrinks the
	// transaction, and recompute the fee once more for a single output.
	// Whatever is left over is absorbed into the fee.
	oneOutSize, err := p.policy.Weights.EstimateVirtualSize(
		len(selected), 1,
	)
	if err != nil {
		return nil, err
	}

	fee = feeRate.FeeForVByte(oneOutSize)
	remainder := totalIn - sendAmount - fee

	feasible := remainder >= 0
	if !feasible {
		log.Debugf("Spend of %d sat infeasible: %d inputs worth %d "+
			"sat leave %d sat after a %d sat fee", sendAmount,
			len(selected), totalIn, remainder, fee)
	}

	return &SpendPlan{
		Inputs:      selected,
		TotalIn:     totalIn,
		OutputCount: 1,
		Fee:         fee,
		Change:      0,
		Feasible:    feasible,
	}, nil
}

// PlanStrict behaves like Plan but returns ErrInsufficientFunds, wrapped with
// the shortfall, instead of an infeasible plan.
func (p *Planner) PlanStrict(utxos []UnspentOutput,
	sendAmount btcutil.Amount, feeRate btcunit.SatPerVByte) (*SpendPlan,
	error) {

	plan, err := p.Plan(utxos, sendAmount, feeRate)
	if err != nil {
		return nil, err
	}

	if !plan.Feasible {
		shortfall := sendAmount + plan.Fee - plan.TotalIn

		return nil, fmt.Errorf("%w: %d sat short of %d sat plus "+
			"%d sat fee", ErrInsufficientFunds, shortfall,
			sendAmount, plan.Fee)
	}

	return plan, nil
}
