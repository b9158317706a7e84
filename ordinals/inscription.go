package ordinals

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Inscription is an owned entity created once by BuildInscriptions and
// mutated only by the sat-point tracker and transaction processor.
type Inscription struct {
	TxHash chainhash.Hash
	Index  uint32

	// Offset is the byte offset within the inscription's current holding
	// output, in satoshis. Updated on every transfer.
	Offset uint64

	// SequenceNumber is monotonically increasing across every inscription
	// ever created, assigned at creation from the engine counter.
	SequenceNumber uint32
	// InscriptionNumber is the blessed counter at creation. It equals
	// SequenceNumber in this engine because no cursed inscriptions are
	// minted (genesis postdates the jubilee at block 824544).
	InscriptionNumber uint32
	// IsCurse is permanently false in this engine: BuildInscriptions always
	// sets it to false. The field is kept so that a build which computes
	// curses needs no data-model change.
	IsCurse bool

	Body            []byte
	ContentEncoding string
	ContentType     string
	// Delegate holds the derived ObjectID of the delegate inscription named
	// by the record, if any. Content/content-type lookups for a delegating
	// inscription resolve through the delegate (§4.2); resolution itself is
	// a storage-layer concern out of scope for this engine.
	Delegate     *ObjectID
	Metadata     []byte
	Metaprotocol string
	// Parents holds the derived ObjectID of each parent inscription named by
	// the record. Existence of the parent is not checked at creation time:
	// enforcement is structural, since ObjectIDs are derived deterministically.
	Parents []ObjectID
	Pointer *uint64
	// Rune is a reserved placeholder; rune etching/transfer is out of scope.
	Rune []byte
}

// InscriptionID returns the creation-coordinate identity of the inscription.
func (i *Inscription) InscriptionID() InscriptionId {
	return NewInscriptionId(i.TxHash, i.Index)
}
