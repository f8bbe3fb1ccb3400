package btcunit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestTxSizeConversion checks that the conversion between weight units and
// virtual bytes is correct.
func TestTxSizeConversion(t *testing.T) {
	t.Parallel()

	// Create a test weight of 1000 wu.
	wu := NewWeightUnit(1000)

	// 1000 wu should be equal to 250 vb.
	require.Equal(t, NewVByte(250), wu.ToVB())

	// 250 vb should be equal to 1000 wu.
	require.Equal(t, wu, NewVByte(250).ToWU())
}

// TestTxSizeArithmetic checks the vbyte addition and scaling helpers.
func TestTxSizeArithmetic(t *testing.T) {
	t.Parallel()

	// 10 vb + 68 vb * 2 + 31 vb * 2 = 208 vb.
	size := NewVByte(10).
		Add(NewVByte(68).MulN(2)).
		Add(NewVByte(31).MulN(2))

	require.Equal(t, NewVByte(208), size)
	require.Equal(t, uint64(208), size.Val())
}

// TestTxSizeStringer tests the stringer methods of the tx size types.
func TestTxSizeStringer(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1000 wu", NewWeightUnit(1000).String())
	require.Equal(t, "250 vb", NewVByte(250).String())

	// A weight that is not a multiple of the scale factor rounds up when
	// presented in vbytes.
	require.Equal(t, "251 vb", NewWeightUnit(1001).ToVB().String())
}
