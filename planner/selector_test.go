package planner

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/conformal-tools/spendplan/pkg/btcunit"
	"github.com/stretchr/testify/require"
)

// testUTXO creates an unspent output whose txid is derived from the given
// seed byte, so tests can construct sets with a known ordering.
func testUTXO(seed byte, index uint32, value btcutil.Amount) UnspentOutput {
	var hash chainhash.Hash
	hash[0] = seed

	return UnspentOutput{
		OutPoint: wire.OutPoint{Hash: hash, Index: index},
		Value:    value,
	}
}

// TestLargestFirstArrange checks the descending value order and the
// deterministic tie break on txid and output index.
func TestLargestFirstArrange(t *testing.T) {
	t.Parallel()

	utxos := []UnspentOutput{
		testUTXO(0x03, 0, 50000),
		testUTXO(0x01, 1, 50000),
		testUTXO(0x01, 0, 50000),
		testUTXO(0x02, 0, 100000),
		testUTXO(0x04, 0, 30000),
	}

	arranged, err := SelectLargestFirst.ArrangeCoins(
		utxos, btcunit.NewSatPerVByte(1),
	)
	require.NoError(t, err)

	// Largest first, then ties by ascending txid and output index.
	expected := []UnspentOutput{
		testUTXO(0x02, 0, 100000),
		testUTXO(0x01, 0, 50000),
		testUTXO(0x01, 1, 50000),
		testUTXO(0x03, 0, 50000),
		testUTXO(0x04, 0, 30000),
	}
	require.Equal(t, expected, arranged)

	// The caller's slice must be left untouched.
	require.Equal(t, testUTXO(0x03, 0, 50000), utxos[0])
}

// TestSelectInputsSufficiency checks that selection reaches the target
// whenever the set can cover it, and consumes the full set otherwise.
func TestSelectInputsSufficiency(t *testing.T) {
	t.Parallel()

	arranged := []UnspentOutput{
		testUTXO(0x01, 0, 100000),
		testUTXO(0x02, 0, 50000),
		testUTXO(0x03, 0, 30000),
	}

	testCases := []struct {
		name          string
		target        btcutil.Amount
		expectedCount int
		expectedTotal btcutil.Amount
	}{
		{
			name:          "first coin suffices",
			target:        90000,
			expectedCount: 1,
			expectedTotal: 100000,
		},
		{
			name:          "stops at exact total",
			target:        150000,
			expectedCount: 2,
			expectedTotal: 150000,
		},
		{
			name:          "needs all coins",
			target:        160000,
			expectedCount: 3,
			expectedTotal: 180000,
		},
		{
			name:          "whole set short of target",
			target:        200000,
			expectedCount: 3,
			expectedTotal: 180000,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			selected, total := SelectInputs(arranged, tc.target)
			require.Len(t, selected, tc.expectedCount)
			require.Equal(t, tc.expectedTotal, total)

			// Selection order follows the arranged order.
			require.Equal(
				t, arranged[:tc.expectedCount], selected,
			)
		})
	}
}

// TestRandomSelectorFiltersNegativeYield checks that coins worth less than
// the fee they add are excluded by the random strategy.
func TestRandomSelectorFiltersNegativeYield(t *testing.T) {
	t.Parallel()

	utxos := []UnspentOutput{
		testUTXO(0x01, 0, 100000),
		// At 10 sat/vb a 68 vb input costs 680 sat, so a 500 sat
		// coin shrinks the transaction's net value.
		testUTXO(0x02, 0, 500),
		testUTXO(0x03, 0, 50000),
	}

	arranged, err := SelectRandom.ArrangeCoins(
		utxos, btcunit.NewSatPerVByte(10),
	)
	require.NoError(t, err)

	require.Len(t, arranged, 2)
	for _, utxo := range arranged {
		require.Greater(t, utxo.Value, btcutil.Amount(680))
	}
}
