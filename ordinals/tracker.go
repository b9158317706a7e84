package ordinals

import "github.com/satflow/ordinals-engine/core/types"

// MatchUTXOAndGenerateSatPoint locates where the satoshi at offset (measured
// from the start of inputIndex's value, i.e. a within-input byte offset)
// lands among tx's outputs.
//
// inputUTXOValues holds the value of each input's previous output, in the
// same order as tx.TxIn; an empty slice is treated as all inputs carrying
// zero value.
//
// If the absolute input-side accumulator never exceeds the total output
// value, the satoshi went to fees: matched is false and the returned
// SatPoint's Offset is fee-relative (inputAcc - totalOutputValue), not a
// byte-within-output, and OutputIndex is set to inputIndex so the caller can
// build a Flotsam from it.
func MatchUTXOAndGenerateSatPoint(offset uint64, oid ObjectID, tx *types.Transaction, inputUTXOValues []uint64, inputIndex int) (bool, SatPoint) {
	var inputAcc uint64
	for i := 0; i < inputIndex; i++ {
		inputAcc += inputValueAt(inputUTXOValues, i)
	}
	inputAcc += offset

	var outputAcc uint64
	for j, txOut := range tx.TxOut {
		value := uint64(txOut.Value)
		// strict '>': an inscription landing exactly on an output boundary
		// goes to the LATER output, at offset 0.
		if outputAcc+value > inputAcc {
			return true, SatPoint{
				OutputIndex: uint32(j),
				Offset:      value - (outputAcc + value - inputAcc),
				ObjectID:    oid,
			}
		}
		outputAcc += value
	}

	return false, SatPoint{
		OutputIndex: uint32(inputIndex),
		Offset:      inputAcc - outputAcc,
		ObjectID:    oid,
	}
}

func inputValueAt(inputUTXOValues []uint64, i int) uint64 {
	if len(inputUTXOValues) == 0 {
		return 0
	}
	return inputUTXOValues[i]
}

// MatchCoinbaseAndGenerateSatPoint locates where a flotsam lands among the
// coinbase transaction's outputs once the block's base subsidy is added
// ahead of the accumulated fee carry-offsets of every flotsam up to and
// including flotsamIndex (in the order the caller supplies flotsams). The
// caller guarantees the coinbase has enough output value; if the outputs do
// not cover the accumulated reward, the flotsam is placed on the last
// output's final sat.
func MatchCoinbaseAndGenerateSatPoint(flotsamIndex int, coinbaseTx *types.Transaction, flotsams []Flotsam, blockHeight uint64, subsidy uint64) SatPoint {
	rewardAcc := subsidy
	for i := 0; i <= flotsamIndex; i++ {
		rewardAcc += flotsams[i].Offset
	}

	var outputAcc uint64
	for j, txOut := range coinbaseTx.TxOut {
		value := uint64(txOut.Value)
		if outputAcc+value > rewardAcc {
			return SatPoint{
				OutputIndex: uint32(j),
				Offset:      value - (outputAcc + value - rewardAcc),
				ObjectID:    flotsams[flotsamIndex].ObjectID,
			}
		}
		outputAcc += value
	}

	// Caller contract violated; fall back to the last output at its final
	// byte rather than panicking on confirmed chain data.
	last := len(coinbaseTx.TxOut) - 1
	finalByte := uint64(coinbaseTx.TxOut[last].Value)
	if finalByte > 0 {
		finalByte--
	}
	return SatPoint{
		OutputIndex: uint32(last),
		Offset:      finalByte,
		ObjectID:    flotsams[flotsamIndex].ObjectID,
	}
}
