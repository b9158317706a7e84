package ordinals

import (
	"github.com/cockroachdb/errors"

	"github.com/satflow/ordinals-engine/core/types"
	"github.com/satflow/ordinals-engine/pkg/logger"
	"github.com/satflow/ordinals-engine/pkg/logger/slogx"
)

// ProcessTransaction builds every new inscription envelope'd into tx,
// assigns each a placement per the Ordinals wallet's SameSat/SharedOutput/
// SeparateOutputs rule, creates its object, and transfers it to the
// destination output's derived owner. Any dropped (invalid) records are
// appended to the engine's invalid-event log rather than returned here.
func (e *Engine) ProcessTransaction(tx *types.Transaction, inputUTXOValues []uint64) ([]SatPoint, error) {
	inscriptions, invalidEvents := BuildInscriptions(tx, inputUTXOValues, e.nextSequenceNumber, e.blessedInscriptionCount, e.hasReinscriptionAt)
	if len(invalidEvents) > 0 {
		logger.Debug("dropped invalid inscription envelopes", slogx.String("txHash", tx.TxHash.String()), slogx.Int("count", len(invalidEvents)))
	}
	e.invalidEvents = append(e.invalidEvents, invalidEvents...)

	if len(inscriptions) == 0 {
		return nil, nil
	}
	logger.Debug("built inscriptions from transaction", slogx.String("txHash", tx.TxHash.String()), slogx.Int("count", len(inscriptions)))

	// SeparateOutputs applies only when every output receives exactly one
	// inscription; otherwise every inscription lands in output 0
	// (SameSat/SharedOutput), retaining its builder-computed offset.
	separateOutputs := len(tx.TxOut) == len(inscriptions)

	satPoints := make([]SatPoint, 0, len(inscriptions))
	for i, insc := range inscriptions {
		outputIndex := 0
		offset := insc.Offset
		if separateOutputs {
			outputIndex = i
			offset = 0
			insc.Offset = 0
		}
		if outputIndex >= len(tx.TxOut) {
			return nil, errors.Newf("inscription %d (tx %s) has no matching output", i, tx.TxHash.String())
		}

		obj := e.createObject(insc)

		owner := OwnerForPkScript(tx.TxOut[outputIndex].PkScript, e.Network)
		if err := obj.Transfer(owner); err != nil {
			return nil, errors.Wrap(err, "transfer newly created inscription")
		}

		satPoints = append(satPoints, SatPoint{
			OutputIndex: uint32(outputIndex),
			Offset:      offset,
			ObjectID:    DeriveInscriptionID(insc.InscriptionID()),
		})
	}

	return satPoints, nil
}

// SpendUTXO releases every inscription sealed to utxo, in seal order,
// placing each either as a SatPoint (landed in an output) or a Flotsam
// (spilled into fees, carried forward to the next coinbase).
func (e *Engine) SpendUTXO(utxo *UTXO, tx *types.Transaction, inputUTXOValues []uint64, inputIndex int) ([]SatPoint, []Flotsam, error) {
	satPoints := make([]SatPoint, 0, len(utxo.Seals))
	flotsams := make([]Flotsam, 0)

	for _, iid := range utxo.Seals {
		obj, ok := e.objects[iid]
		if !ok {
			return nil, nil, errors.Newf("sealed inscription %s does not exist", iid.String())
		}
		originOwner := obj.Owner
		oid := DeriveInscriptionID(iid)

		matched, satPoint := MatchUTXOAndGenerateSatPoint(obj.Value.Offset, oid, tx, inputUTXOValues, inputIndex)
		if !matched {
			obj.DropTemporary()
			if err := obj.Transfer(originOwner); err != nil {
				return nil, nil, errors.Wrap(err, "return unmatched inscription to origin owner")
			}
			flotsams = append(flotsams, Flotsam{
				OutputIndex: satPoint.OutputIndex,
				Offset:      satPoint.Offset,
				ObjectID:    satPoint.ObjectID,
			})
			continue
		}

		obj.Value.Offset = satPoint.Offset
		obj.DropTemporary()

		destOut := tx.TxOut[satPoint.OutputIndex]
		if IsOpReturn(destOut.PkScript) {
			Add(obj.Permanent, InscriptionCharm{Burned: true})
			obj.Freeze()
			logger.Debug("inscription burned via OP_RETURN", slogx.String("inscriptionId", iid.String()))
			if obj.Value.Metaprotocol != "" {
				e.emitMetaprotocolEvent(obj.Value.Metaprotocol, InscriptionEvent{
					Metaprotocol:        obj.Value.Metaprotocol,
					SequenceNumber:      obj.Value.SequenceNumber,
					InscriptionObjectID: oid,
					EventType:           EventBurn,
				})
			}
		} else {
			owner := OwnerForPkScript(destOut.PkScript, e.Network)
			if err := obj.Transfer(owner); err != nil {
				return nil, nil, errors.Wrap(err, "transfer spent inscription")
			}
		}

		satPoints = append(satPoints, satPoint)
	}

	if len(flotsams) > 0 {
		logger.Debug("inscriptions spilled into fees", slogx.Int("count", len(flotsams)))
	}

	return satPoints, flotsams, nil
}

// HandleCoinbaseTx places every flotsam the block accumulated into the
// coinbase transaction's outputs, per the subsidy-plus-fees accounting.
// flotsams must be supplied in the order the block processed them
// (transaction-then-input order). The temporary area is dropped on every
// flotsam placed here too, for consistency with SpendUTXO's miss branch —
// a transfer is a transfer regardless of which entry point performs it.
func (e *Engine) HandleCoinbaseTx(coinbaseTx *types.Transaction, flotsams []Flotsam, blockHeight uint64) ([]SatPoint, error) {
	if len(flotsams) == 0 {
		return nil, nil
	}

	subsidy := Subsidy(blockHeight, e.Network.ChainParams())
	logger.Debug("settling flotsams against coinbase", slogx.Uint64("blockHeight", blockHeight), slogx.Int("count", len(flotsams)), slogx.Uint64("subsidy", subsidy))

	satPoints := make([]SatPoint, 0, len(flotsams))
	for i, flotsam := range flotsams {
		satPoint := MatchCoinbaseAndGenerateSatPoint(i, coinbaseTx, flotsams, blockHeight, subsidy)

		obj, ok := e.ObjectByID(flotsam.ObjectID)
		if !ok {
			return nil, errors.Newf("flotsam object %x does not exist", flotsam.ObjectID)
		}

		obj.Value.Offset = satPoint.Offset
		obj.DropTemporary()

		destOut := coinbaseTx.TxOut[satPoint.OutputIndex]
		if IsOpReturn(destOut.PkScript) {
			Add(obj.Permanent, InscriptionCharm{Burned: true})
			obj.Freeze()
			if obj.Value.Metaprotocol != "" {
				e.emitMetaprotocolEvent(obj.Value.Metaprotocol, InscriptionEvent{
					Metaprotocol:        obj.Value.Metaprotocol,
					SequenceNumber:      obj.Value.SequenceNumber,
					InscriptionObjectID: flotsam.ObjectID,
					EventType:           EventBurn,
				})
			}
		} else {
			owner := OwnerForPkScript(destOut.PkScript, e.Network)
			if err := obj.Transfer(owner); err != nil {
				return nil, errors.Wrap(err, "transfer coinbase-settled inscription")
			}
		}

		satPoints = append(satPoints, satPoint)
	}

	return satPoints, nil
}
