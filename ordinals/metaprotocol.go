package ordinals

import "github.com/cockroachdb/errors"

// MetaprotocolValidity is stored on an inscription's permanent area keyed by
// its own type once sealed by the owning metaprotocol's handler.
type MetaprotocolValidity struct {
	ProtocolType  string
	IsValid       bool
	InvalidReason string
}

var (
	// ErrMetaprotocolAlreadyRegistered is returned by RegisterMetaprotocol when
	// the name is already bound to a protocol type.
	ErrMetaprotocolAlreadyRegistered = errors.New("metaprotocol already registered")
	// ErrMetaprotocolProtocolMismatch is returned when a caller attempts to
	// seal validity or attach an object under a type that does not match the
	// protocol type the inscription's declared metaprotocol name is bound to.
	ErrMetaprotocolProtocolMismatch = errors.New("metaprotocol protocol mismatch")
)

// MetaprotocolRegistry maps a metaprotocol name to the Go type name that
// handles it, enforcing one owner per name.
type MetaprotocolRegistry struct {
	byName map[string]string
}

func NewMetaprotocolRegistry() *MetaprotocolRegistry {
	return &MetaprotocolRegistry{byName: make(map[string]string)}
}

// Register binds name to typeName. Fails with ErrMetaprotocolAlreadyRegistered
// if name is already bound, even to the same typeName.
func (r *MetaprotocolRegistry) Register(name, typeName string) error {
	if _, ok := r.byName[name]; ok {
		return errors.Wrapf(ErrMetaprotocolAlreadyRegistered, "name %q", name)
	}
	r.byName[name] = typeName
	return nil
}

// TypeNameFor returns the type name bound to name, if any.
func (r *MetaprotocolRegistry) TypeNameFor(name string) (string, bool) {
	typeName, ok := r.byName[name]
	return typeName, ok
}

// CheckOwnership returns ErrMetaprotocolProtocolMismatch unless name is bound
// to exactly typeName.
func (r *MetaprotocolRegistry) CheckOwnership(name, typeName string) error {
	bound, ok := r.byName[name]
	if !ok || bound != typeName {
		return errors.Wrapf(ErrMetaprotocolProtocolMismatch, "name %q, type %q", name, typeName)
	}
	return nil
}
