// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package planner

import "errors"

var (
	// ErrInvalidAmount is returned when a plan is requested for a zero or
	// negative send amount.
	ErrInvalidAmount = errors.New("send amount must be positive")

	// ErrInvalidFeeRate is returned when a plan is requested with a zero
	// or negative fee rate.
	ErrInvalidFeeRate = errors.New("fee rate must be positive")

	// ErrInvalidDustThreshold is returned when a planner is configured
	// with a zero or negative dust threshold.
	ErrInvalidDustThreshold = errors.New("dust threshold must be positive")

	// ErrNegativeCount is returned when a size estimate is requested for
	// a negative input or output count.
	ErrNegativeCount = errors.New("input and output counts must be " +
		"non-negative")

	// ErrNoUTXOs is returned when a plan is requested against an empty
	// set of unspent outputs.
	ErrNoUTXOs = errors.New("no unspent outputs available")

	// ErrDuplicateUTXO is returned when the same outpoint appears more
	// than once in the supplied unspent output set.
	ErrDuplicateUTXO = errors.New("duplicated utxo")

	// ErrInvalidUTXO is returned when an unspent output carries a zero or
	// negative value.
	ErrInvalidUTXO = errors.New("utxo value must be positive")

	// ErrInsufficientFunds is returned by the strict planning variant when
	// the selected inputs cannot cover the send amount plus the fee, even
	// after dropping the change output.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
