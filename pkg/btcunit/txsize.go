package btcunit

import (
	"fmt"

	"github.com/btcsuite/btcd/blockchain"
)

// baseUnit stores the canonical representation of a transaction size, which
// is weight units (wu). All other size units are derived from this.
type baseUnit struct {
	wu uint64
}

// ToWU converts the unit to a WeightUnit.
func (b baseUnit) ToWU() WeightUnit {
	return WeightUnit{b}
}

// ToVB converts the unit to a VByte.
func (b baseUnit) ToVB() VByte {
	return VByte{b}
}

// WeightUnit expresses a transaction size in weight units. One weight unit is
// 1/4_000_000 of the max block size.
type WeightUnit struct {
	baseUnit
}

// NewWeightUnit creates a new WeightUnit from a uint64 value.
func NewWeightUnit(val uint64) WeightUnit {
	return WeightUnit{baseUnit{wu: val}}
}

// String returns the string representation of the weight unit.
func (w WeightUnit) String() string {
	return fmt.Sprintf("%d wu", w.wu)
}

// VByte expresses a transaction size in virtual bytes. One virtual byte is
// four weight units.
type VByte struct {
	// The internal size is recorded in weight units.
	baseUnit
}

// NewVByte creates a new VByte from a uint64 value.
func NewVByte(val uint64) VByte {
	return VByte{baseUnit{wu: val * blockchain.WitnessScaleFactor}}
}

// Add returns the sum of the two sizes.
func (v VByte) Add(other VByte) VByte {
	return VByte{baseUnit{wu: v.wu + other.wu}}
}

// MulN returns the size scaled by n.
func (v VByte) MulN(n uint64) VByte {
	return VByte{baseUnit{wu: v.wu * n}}
}

// Val returns the size in whole vbytes, rounding up any fractional weight.
func (v VByte) Val() uint64 {
	return (v.wu + blockchain.WitnessScaleFactor - 1) /
		blockchain.WitnessScaleFactor
}

// String returns the string representation of the virtual byte.
func (v VByte) String() string {
	return fmt.Sprintf("%d vb", v.Val())
}
