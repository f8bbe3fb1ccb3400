// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package btcunit provides value types for bitcoin transaction sizes and fee
// rates.
package btcunit

import (
	"math"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
)

const (
	// kilo is a generic multiplier for kilo units.
	kilo = 1000

	// floatStringPrecision is the number of decimal places to use when
	// converting a fee rate to a string. Three decimal places ensure that
	// low fee rates (e.g., 1 sat/kvb = 0.001 sat/vbyte) are not rounded
	// to zero.
	floatStringPrecision = 3
)

var (
	// ZeroSatPerVByte is a fee rate of 0 sat/vb.
	ZeroSatPerVByte = NewSatPerVByte(0)

	// ZeroSatPerKVByte is a fee rate of 0 sat/kvb.
	ZeroSatPerKVByte = NewSatPerKVByte(0)
)

// baseFeeRate stores the canonical representation of a fee rate, which is
// satoshis per kilo-weight-unit (sat/kwu). All other fee rate units are
// derived from this. The canonical unit is chosen for its direct alignment
// with bitcoin's weight unit and to avoid intermediate rounding.
type baseFeeRate struct {
	satsPerKWU *big.Rat
}

// newBaseFeeRate creates a new baseFeeRate with the given numerator and
// denominator. A zero denominator yields a zero fee rate.
func newBaseFeeRate(numerator btcutil.Amount, denominator uint64) baseFeeRate {
	if denominator == 0 {
		return baseFeeRate{satsPerKWU: big.NewRat(0, 1)}
	}

	return baseFeeRate{satsPerKWU: big.NewRat(
		int64(numerator),
		safeUint64ToInt64(denominator),
	)}
}

// ToSatPerVByte converts the fee rate to sat/vb.
func (f baseFeeRate) ToSatPerVByte() SatPerVByte {
	return SatPerVByte{f}
}

// ToSatPerKVByte converts the fee rate to sat/kvb.
func (f baseFeeRate) ToSatPerKVByte() SatPerKVByte {
	return SatPerKVByte{f}
}

// FeeForWeight calculates the fee resulting from this fee rate and the given
// weight in weight units (wu). The resulting fee is rounded down (truncated).
func (f baseFeeRate) FeeForWeight(weightUnit WeightUnit) btcutil.Amount {
	// The fee rate is stored as satoshis per kilo-weight-unit, so the fee
	// is the rate multiplied by the weight expressed in kwu.
	feeRational := big.NewRat(0, 1)
	feeRational.Mul(
		f.satsPerKWU,
		big.NewRat(safeUint64ToInt64(weightUnit.wu), kilo),
	)

	// Integer division truncates the result.
	quotient := big.NewInt(0)
	quotient.Div(feeRational.Num(), feeRational.Denom())

	return btcutil.Amount(quotient.Int64())
}

// FeeForVByte calculates the fee resulting from this fee rate and the given
// size in vbytes (vb).
func (f baseFeeRate) FeeForVByte(vb VByte) btcutil.Amount {
	return f.FeeForWeight(vb.ToWU())
}

// equal returns true if the fee rate is equal to the other fee rate.
func (f baseFeeRate) equal(other baseFeeRate) bool {
	return f.satsPerKWU.Cmp(other.satsPerKWU) == 0
}

// greaterThan returns true if the fee rate is greater than the other fee
// rate.
func (f baseFeeRate) greaterThan(other baseFeeRate) bool {
	return f.satsPerKWU.Cmp(other.satsPerKWU) > 0
}

// lessThanOrEqual returns true if the fee rate is less than or equal to the
// other fee rate.
func (f baseFeeRate) lessThanOrEqual(other baseFeeRate) bool {
	return f.satsPerKWU.Cmp(other.satsPerKWU) <= 0
}

// SatPerVByte represents a fee rate in sat/vbyte. Internally all fee rates
// are stored and operated on as satoshis per kilo-weight-unit; only String
// presents the rate in its specific unit.
type SatPerVByte struct {
	baseFeeRate
}

// NewSatPerVByte creates a new fee rate in sat/vb.
func NewSatPerVByte(rate btcutil.Amount) SatPerVByte {
	return CalcSatPerVByte(rate, NewVByte(1))
}

// CalcSatPerVByte calculates the fee rate in sat/vb for a given fee and size.
func CalcSatPerVByte(fee btcutil.Amount, vb VByte) SatPerVByte {
	// To convert the rate to the canonical sat/kwu unit we use the
	// formula (fee * 1000) / size_in_wu. vb.wu provides the size in
	// weight units, implicitly accounting for the WitnessScaleFactor.
	return SatPerVByte{newBaseFeeRate(fee*kilo, vb.wu)}
}

// String returns a human-readable string of the fee rate.
func (s SatPerVByte) String() string {
	vbRate := big.NewRat(0, 1)
	vbRate.Mul(s.satsPerKWU,
		big.NewRat(blockchain.WitnessScaleFactor, kilo),
	)

	return vbRate.FloatString(floatStringPrecision) + " sat/vb"
}

// Equal returns true if the fee rate is equal to the other fee rate.
func (s SatPerVByte) Equal(other SatPerVByte) bool {
	return s.equal(other.baseFeeRate)
}

// GreaterThan returns true if the fee rate is greater than the other fee
// rate.
func (s SatPerVByte) GreaterThan(other SatPerVByte) bool {
	return s.greaterThan(other.baseFeeRate)
}

// LessThanOrEqual returns true if the fee rate is less than or equal to the
// other fee rate.
func (s SatPerVByte) LessThanOrEqual(other SatPerVByte) bool {
	return s.lessThanOrEqual(other.baseFeeRate)
}

// SatPerKVByte represents a fee rate in sat/kvb. Internally all fee rates
// are stored and operated on as satoshis per kilo-weight-unit; only String
// presents the rate in its specific unit.
type SatPerKVByte struct {
	baseFeeRate
}

// NewSatPerKVByte creates a new fee rate in sat/kvb.
func NewSatPerKVByte(rate btcutil.Amount) SatPerKVByte {
	// One kvb is 1000 vb, which is 4000 wu.
	return SatPerKVByte{newBaseFeeRate(
		rate*kilo, kilo*blockchain.WitnessScaleFactor,
	)}
}

// String returns a human-readable string of the fee rate.
func (s SatPerKVByte) String() string {
	kvbRate := big.NewRat(0, 1)
	kvbRate.Mul(s.satsPerKWU,
		big.NewRat(blockchain.WitnessScaleFactor, 1),
	)

	return kvbRate.FloatString(floatStringPrecision) + " sat/kvb"
}

// Equal returns true if the fee rate is equal to the other fee rate.
func (s SatPerKVByte) Equal(other SatPerKVByte) bool {
	return s.equal(other.baseFeeRate)
}

// GreaterThan returns true if the fee rate is greater than the other fee
// rate.
func (s SatPerKVByte) GreaterThan(other SatPerKVByte) bool {
	return s.greaterThan(other.baseFeeRate)
}

// LessThanOrEqual returns true if the fee rate is less than or equal to the
// other fee rate.
func (s SatPerKVByte) LessThanOrEqual(other SatPerKVByte) bool {
	return s.lessThanOrEqual(other.baseFeeRate)
}

// safeUint64ToInt64 converts a uint64 to an int64, capping at math.MaxInt64.
// In practice the values being converted are transaction weights, which are
// bounded by consensus rules.
func safeUint64ToInt64(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}

	return int64(u)
}
