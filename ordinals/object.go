package ordinals

import "github.com/cockroachdb/errors"

// ErrObjectFrozen is returned by any mutating Object accessor once the
// object has been frozen (burned via OP_RETURN). Frozen objects are
// immutable forever after; there is no unfreeze path.
var ErrObjectFrozen = errors.New("object is frozen")

// Object wraps a value of type T with the ownership and side-state the
// engine tracks for every entity it mints. Inscription is the only T in
// use today, but the wrapper is generic because the spec's object-store
// model is: any owned, potentially-frozen, area-bearing value.
type Object[T any] struct {
	Value T

	// Owner holds the transfer-owner's address string, the lower-hex of the
	// raw scriptPubKey for a non-standard destination (see OwnerForPkScript),
	// the empty string before the first transfer, or the literal "burned"
	// sentinel once Frozen.
	Owner string
	// Frozen marks an object whose satoshi landed in an OP_RETURN. Once set,
	// every mutating accessor below refuses.
	Frozen bool

	Permanent Area
	Temporary Area

	// Attachments holds metaprotocol-specific objects keyed by protocol type
	// name, distinct from the Permanent/Temporary type-keyed bags.
	Attachments map[string]any
}

// NewObject wraps value with empty areas and no owner.
func NewObject[T any](value T) *Object[T] {
	return &Object[T]{
		Value:       value,
		Permanent:   make(Area),
		Temporary:   make(Area),
		Attachments: make(map[string]any),
	}
}

// Transfer sets the object's owner, refusing if the object is frozen.
func (o *Object[T]) Transfer(owner string) error {
	if o.Frozen {
		return errors.Wrapf(ErrObjectFrozen, "transfer to %q", owner)
	}
	o.Owner = owner
	return nil
}

// Freeze marks the object permanently immutable and sets the burned owner
// sentinel. Idempotent.
func (o *Object[T]) Freeze() {
	o.Frozen = true
	o.Owner = "burned"
}

// DropTemporary empties the temporary area in place, used on every transfer
// (§4.6 steps 3 and 4, and the coinbase sweep per the resolved open question
// in §9). It does nothing once the object is frozen.
func (o *Object[T]) DropTemporary() {
	if o.Frozen {
		return
	}
	o.Temporary.Drop()
}
