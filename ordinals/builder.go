package ordinals

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/satflow/ordinals-engine/core/types"
)

// HasReinscriptionAtFunc is the engine's reinscription-curse extension
// point (§9): given the outpoint an inscription's input spends and the byte
// offset it is about to land at, report whether a prior inscription already
// occupies that sat. A full implementation requires a sat-index scan, which
// is out of scope for this engine; BuildInscriptions still consults the
// hook so a future build can wire one in without a data-model change, but
// no implementation provided here ever returns true.
type HasReinscriptionAtFunc func(outpoint wire.OutPoint, offset uint64) bool

// NoReinscriptions is the default HasReinscriptionAtFunc: always false.
func NoReinscriptions(wire.OutPoint, uint64) bool { return false }

// BuildInscriptions folds every valid envelope pulled from tx's inputs into
// Inscription entities, in ascending (input_index, envelope_offset) order.
// startSequenceNumber/startInscriptionNumber are the engine's counters
// before this tx; the caller advances them by len(returned inscriptions).
// Invalid records are dropped and reported as InvalidInscriptionEvent
// instead of producing an Inscription.
func BuildInscriptions(tx *types.Transaction, inputUTXOValues []uint64, startSequenceNumber, startInscriptionNumber uint32, hasReinscriptionAt HasReinscriptionAtFunc) ([]*Inscription, []InvalidInscriptionEvent) {
	if hasReinscriptionAt == nil {
		hasReinscriptionAt = NoReinscriptions
	}

	envelopes := ParseEnvelopesFromTx(tx)

	inscriptions := make([]*Inscription, 0, len(envelopes))
	events := make([]InvalidInscriptionEvent, 0)

	nextOffset := uint64(0)
	nextSequence := startSequenceNumber
	nextNumber := startInscriptionNumber

	for inputIndex := range tx.TxIn {
		inputValue := inputValueAt(inputUTXOValues, inputIndex)

		for _, env := range envelopesForInput(envelopes, inputIndex) {
			if !env.Record.IsValid() {
				events = append(events, InvalidInscriptionEvent{
					TxHash:     tx.TxHash,
					InputIndex: uint32(inputIndex),
					Record:     env.Record,
				})
				continue
			}

			p := uint64(0)
			if env.Record.Pointer != nil {
				p = *env.Record.Pointer
			}
			if inputValue == 0 || p >= inputValue {
				p = 0
			}
			offset := nextOffset + p

			outpoint := wire.OutPoint{Hash: tx.TxIn[inputIndex].PreviousOutTxHash, Index: tx.TxIn[inputIndex].PreviousOutIndex}
			// Reserved for a future sat-index scan; never true today.
			_ = hasReinscriptionAt(outpoint, p)

			parents := make([]ObjectID, 0, len(env.Record.Parents))
			for _, parentIID := range env.Record.Parents {
				parents = append(parents, DeriveInscriptionID(parentIID))
			}

			var delegate *ObjectID
			if env.Record.Delegate != nil {
				id := DeriveInscriptionID(*env.Record.Delegate)
				delegate = &id
			}

			inscriptions = append(inscriptions, &Inscription{
				TxHash:            tx.TxHash,
				Index:             uint32(len(inscriptions)),
				Offset:            offset,
				SequenceNumber:    nextSequence,
				InscriptionNumber: nextNumber,
				IsCurse:           false,
				Body:              env.Record.Body,
				ContentEncoding:   env.Record.ContentEncoding,
				ContentType:       env.Record.ContentType,
				Delegate:          delegate,
				Metadata:          env.Record.Metadata,
				Metaprotocol:      env.Record.Metaprotocol,
				Parents:           parents,
				Pointer:           env.Record.Pointer,
				Rune:              env.Record.Rune,
			})
			nextSequence++
			nextNumber++
		}

		nextOffset += inputValue
	}

	return inscriptions, events
}

func envelopesForInput(envelopes []*Envelope, inputIndex int) []*Envelope {
	out := make([]*Envelope, 0, len(envelopes))
	for _, e := range envelopes {
		if int(e.InputIndex) == inputIndex {
			out = append(out, e)
		}
	}
	return out
}
