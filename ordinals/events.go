package ordinals

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// InvalidInscriptionEvent is appended to the engine's invalid-event log
// whenever a record fails validation (§4.3). The caller drains the log;
// this package never emits to an external bus.
type InvalidInscriptionEvent struct {
	TxHash     chainhash.Hash
	InputIndex uint32
	Record     InscriptionRecord
}

// EventType distinguishes a metaprotocol attachment's lifecycle event.
type EventType int

const (
	EventNew EventType = iota
	EventBurn
)

func (t EventType) String() string {
	switch t {
	case EventNew:
		return "new"
	case EventBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// InscriptionEvent is appended to the named queue for an inscription's
// declared metaprotocol: once on creation (EventNew) and once if it is
// later burned (EventBurn).
type InscriptionEvent struct {
	Metaprotocol        string
	SequenceNumber      uint32
	InscriptionObjectID ObjectID
	EventType           EventType
}
