package ordinals

// ObjectID is the derived, deterministic identity of an owned object in the
// engine (currently only Inscription). See DeriveInscriptionID.
type ObjectID [32]byte

// SatPoint pinpoints where an inscription's satoshi currently sits: the
// output it landed in and its byte offset within that output.
type SatPoint struct {
	OutputIndex uint32
	Offset      uint64
	ObjectID    ObjectID
}

// Flotsam is produced when an inscription's satoshi spills into transaction
// fees instead of landing in an output. It is structurally identical to
// SatPoint but kept as a distinct type: a Flotsam's Offset is fee-relative
// (the position past the summed output value), not a byte-within-output, and
// it only becomes a real SatPoint once it clears the next coinbase.
type Flotsam struct {
	OutputIndex uint32
	Offset      uint64
	ObjectID    ObjectID
}
