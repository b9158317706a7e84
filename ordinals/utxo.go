package ordinals

import "github.com/btcsuite/btcd/wire"

// UTXO is the live unspent output handed to SpendUTXO by the external
// indexer, carrying whichever inscriptions are currently sealed to it.
type UTXO struct {
	OutPoint wire.OutPoint
	Value    uint64
	PkScript []byte
	// Seals lists the inscriptions sealed to this UTXO, in the order they
	// must be released (oldest seal first).
	Seals []InscriptionId
}
