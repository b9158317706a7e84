package ordinals

import (
	"crypto/sha256"
	"encoding/binary"
)

// engineID is the fixed, deterministic identity of the InscriptionStore
// singleton every inscription's ObjectID is derived as a child of.
var engineID = sha256.Sum256([]byte("ordinals-engine/inscription-store"))

// DeriveInscriptionID computes the object identity an inscription receives
// at creation: a stable hash over (engine id, txid, index), so storage keys
// never collide across creation transactions and reproduce identically on
// every node re-indexing the same chain. sha256 is the same primitive
// chainhash.Hash itself wraps, so this stays consistent with the rest of
// the dependency's hash family; no ecosystem hash-derivation library exists
// in the dependency set for this (see DESIGN.md).
func DeriveInscriptionID(iid InscriptionId) ObjectID {
	h := sha256.New()
	h.Write(engineID[:])
	h.Write(iid.TxHash[:])
	var idxBuf [4]byte
	binary.LittleEndian.PutUint32(idxBuf[:], iid.Index)
	h.Write(idxBuf[:])

	var out ObjectID
	copy(out[:], h.Sum(nil))
	return out
}
