package ordinals

import (
	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/chaincfg"
)

// Subsidy returns the block reward in satoshis at height, via btcd's own
// consensus subsidy routine rather than re-deriving the halving schedule:
// this agrees byte-for-byte with Bitcoin Core, including the zero-subsidy
// cutoff past epoch 33.
//
// Cross-check against the spec's closed form:
//
//	epoch := height / 210_000
//	if epoch < 33 { subsidy = (50 * 100_000_000) >> epoch } else { subsidy = 0 }
func Subsidy(height uint64, params *chaincfg.Params) uint64 {
	return uint64(blockchain.CalcBlockSubsidy(int32(height), params))
}
