package ordinals

import (
	"github.com/cockroachdb/errors"

	"github.com/satflow/ordinals-engine/common"
	"github.com/satflow/ordinals-engine/pkg/logger"
	"github.com/satflow/ordinals-engine/pkg/logger/slogx"
)

// Engine is the Go realization of the spec's InscriptionStore +
// MetaprotocolRegistry + event sinks as a single process-wide value, rather
// than three separate package-level globals — matching how a processor in
// this codebase holds its own counters as struct fields instead of reaching
// into globals.
//
// Engine is NOT safe for concurrent use from multiple goroutines. The
// engine is single-threaded cooperative within one block by design: the
// outer indexer drives transactions in block order, one at a time, and
// within a transaction inputs are processed in ascending index order. A
// mutex here would only hide a caller bug, since the spec rules out
// concurrent callers entirely.
type Engine struct {
	Network common.Network

	cursedInscriptionCount  uint32
	blessedInscriptionCount uint32
	nextSequenceNumber      uint32

	sequenceIndex map[uint32]InscriptionId
	objects       map[InscriptionId]*Object[Inscription]
	objectIndex   map[ObjectID]InscriptionId

	registry *MetaprotocolRegistry

	invalidEvents      []InvalidInscriptionEvent
	metaprotocolEvents map[string][]InscriptionEvent

	hasReinscriptionAt HasReinscriptionAtFunc
}

// NewEngine returns an Engine at genesis: zero counters, empty indexes, an
// empty metaprotocol registry.
func NewEngine(network common.Network) *Engine {
	return &Engine{
		Network:            network,
		sequenceIndex:      make(map[uint32]InscriptionId),
		objects:            make(map[InscriptionId]*Object[Inscription]),
		objectIndex:        make(map[ObjectID]InscriptionId),
		registry:           NewMetaprotocolRegistry(),
		metaprotocolEvents: make(map[string][]InscriptionEvent),
		hasReinscriptionAt: NoReinscriptions,
	}
}

// SetReinscriptionHook installs the reinscription-curse extension point
// consulted by BuildInscriptions; passing nil restores NoReinscriptions.
func (e *Engine) SetReinscriptionHook(fn HasReinscriptionAtFunc) {
	if fn == nil {
		fn = NoReinscriptions
	}
	e.hasReinscriptionAt = fn
}

// RegisterMetaprotocol binds name to typeName. It takes no caller identity
// and performs no authority check: any caller holding the Engine can
// register. Fails with ErrMetaprotocolAlreadyRegistered if name is taken.
func (e *Engine) RegisterMetaprotocol(name, typeName string) error {
	if err := e.registry.Register(name, typeName); err != nil {
		return err
	}
	logger.Debug("metaprotocol registered", slogx.String("name", name), slogx.String("typeName", typeName))
	return nil
}

// NextSequenceNumber returns the engine's current sequence counter, i.e.
// the count of every inscription ever created.
func (e *Engine) NextSequenceNumber() uint32 {
	return e.nextSequenceNumber
}

// BlessedCount and CursedCount report the engine's running counters.
func (e *Engine) BlessedCount() uint32 { return e.blessedInscriptionCount }
func (e *Engine) CursedCount() uint32  { return e.cursedInscriptionCount }

// Object returns the live object for iid, if it has been created.
func (e *Engine) Object(iid InscriptionId) (*Object[Inscription], bool) {
	obj, ok := e.objects[iid]
	return obj, ok
}

// ObjectByID returns the live object identified by its derived ObjectID, if
// it has been created. Flotsams only carry an ObjectID (not an
// InscriptionId), so HandleCoinbaseTx resolves through this index.
func (e *Engine) ObjectByID(oid ObjectID) (*Object[Inscription], bool) {
	iid, ok := e.objectIndex[oid]
	if !ok {
		return nil, false
	}
	return e.Object(iid)
}

// InscriptionIDAtSequence returns the InscriptionID minted at sequence
// number seq, if any.
func (e *Engine) InscriptionIDAtSequence(seq uint32) (InscriptionId, bool) {
	iid, ok := e.sequenceIndex[seq]
	return iid, ok
}

// DrainInvalidEvents returns and clears the accumulated invalid-record log.
func (e *Engine) DrainInvalidEvents() []InvalidInscriptionEvent {
	events := e.invalidEvents
	e.invalidEvents = nil
	return events
}

// DrainMetaprotocolEvents returns and clears the named metaprotocol's event
// queue.
func (e *Engine) DrainMetaprotocolEvents(name string) []InscriptionEvent {
	events := e.metaprotocolEvents[name]
	delete(e.metaprotocolEvents, name)
	return events
}

// SealMetaprotocolValidity upserts a MetaprotocolValidity record on iid's
// permanent area, enforcing that iid's declared metaprotocol maps (via the
// registry) to exactly typeName.
func (e *Engine) SealMetaprotocolValidity(iid InscriptionId, typeName string, isValid bool, invalidReason string) error {
	obj, ok := e.objects[iid]
	if !ok {
		return errors.Newf("inscription %s does not exist", iid.String())
	}
	if obj.Frozen {
		return errors.Wrapf(ErrObjectFrozen, "seal metaprotocol validity on %q", iid.String())
	}
	if err := e.registry.CheckOwnership(obj.Value.Metaprotocol, typeName); err != nil {
		logger.Warn("metaprotocol validity seal rejected", slogx.String("inscriptionId", iid.String()), slogx.Error(err))
		return err
	}
	Add(obj.Permanent, MetaprotocolValidity{
		ProtocolType:  typeName,
		IsValid:       isValid,
		InvalidReason: invalidReason,
	})
	return nil
}

// emitMetaprotocolEvent appends ev to metaprotocol's queue.
func (e *Engine) emitMetaprotocolEvent(metaprotocol string, ev InscriptionEvent) {
	e.metaprotocolEvents[metaprotocol] = append(e.metaprotocolEvents[metaprotocol], ev)
}

// AddMetaprotocolAttachment attaches obj to iid under typeName, enforcing
// the same ownership check as SealMetaprotocolValidity.
func (e *Engine) AddMetaprotocolAttachment(iid InscriptionId, typeName string, attachment any) error {
	obj, ok := e.objects[iid]
	if !ok {
		return errors.Newf("inscription %s does not exist", iid.String())
	}
	if obj.Frozen {
		return errors.Wrapf(ErrObjectFrozen, "add metaprotocol attachment on %q", iid.String())
	}
	if err := e.registry.CheckOwnership(obj.Value.Metaprotocol, typeName); err != nil {
		return err
	}
	obj.Attachments[typeName] = attachment
	return nil
}

// createObject records a freshly built inscription as an owned object,
// advances the engine's counters, records the sequence->id mapping, and
// emits an InscriptionEvent{New} if the inscription declares a
// metaprotocol (§4.9).
func (e *Engine) createObject(insc *Inscription) *Object[Inscription] {
	iid := insc.InscriptionID()
	obj := NewObject(*insc)
	e.objects[iid] = obj
	e.objectIndex[DeriveInscriptionID(iid)] = iid
	e.sequenceIndex[insc.SequenceNumber] = iid
	if insc.IsCurse {
		e.cursedInscriptionCount++
	} else {
		e.blessedInscriptionCount++
	}
	if insc.SequenceNumber >= e.nextSequenceNumber {
		e.nextSequenceNumber = insc.SequenceNumber + 1
	}
	if insc.Metaprotocol != "" {
		e.emitMetaprotocolEvent(insc.Metaprotocol, InscriptionEvent{
			Metaprotocol:        insc.Metaprotocol,
			SequenceNumber:      insc.SequenceNumber,
			InscriptionObjectID: DeriveInscriptionID(iid),
			EventType:           EventNew,
		})
	}
	return obj
}
