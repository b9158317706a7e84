package ordinals

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/assert"
)

// closedFormSubsidy cross-checks Subsidy against the spec's own formula:
// epoch = height / 210_000; subsidy = (50 * COIN) >> epoch if epoch < 33 else 0.
func closedFormSubsidy(height uint64) uint64 {
	const coin = 100_000_000
	epoch := height / 210_000
	if epoch >= 33 {
		return 0
	}
	return (50 * coin) >> epoch
}

func TestSubsidyMatchesClosedForm(t *testing.T) {
	params := &chaincfg.MainNetParams
	heights := []uint64{0, 1, 209_999, 210_000, 420_000, 6_930_000, 6_930_001}
	for _, height := range heights {
		assert.Equal(t, closedFormSubsidy(height), Subsidy(height, params), "height=%d", height)
	}
}

func TestSubsidyZeroPastEpoch33(t *testing.T) {
	params := &chaincfg.MainNetParams
	assert.Equal(t, uint64(0), Subsidy(33*210_000, params))
}
