package ordinals

// InscriptionRecord is the parsed payload of one inscription envelope, before
// curse determination or sequence-number assignment.
type InscriptionRecord struct {
	Body            []byte
	ContentEncoding string
	ContentType     string
	Delegate        *InscriptionId
	Metadata        []byte
	Metaprotocol    string
	Parents         []InscriptionId
	Pointer         *uint64
	// Rune is a reserved placeholder; rune etching is out of scope for this engine.
	Rune []byte

	// Structural defect flags. A record with any of these set is invalid (§4.3).
	DuplicateField        bool
	IncompleteField       bool
	UnrecognizedEvenField bool
}

// IsValid reports whether the record is free of structural defects. Invalid
// records are dropped by the caller, which emits an InvalidInscriptionEvent.
func (r InscriptionRecord) IsValid() bool {
	return !r.DuplicateField && !r.IncompleteField && !r.UnrecognizedEvenField
}

// CurseReason names a raw ASCII diagnostic token per §6 "String forms". It is
// purely descriptive and carries no behavior of its own; the boolean fields on
// Envelope/InscriptionRecord are what curse determination actually consults.
type CurseReason string

const (
	CurseDuplicateField        CurseReason = "DuplicateField"
	CurseIncompleteField       CurseReason = "IncompleteField"
	CurseNotAtOffsetZero       CurseReason = "NotAtOffsetZero"
	CurseNotInFirstInput       CurseReason = "NotInFirstInput"
	CursePointer               CurseReason = "Pointer"
	CursePushnum               CurseReason = "Pushnum"
	CurseReinscription         CurseReason = "Reinscription"
	CurseStutter               CurseReason = "Stutter"
	CurseUnrecognizedEvenField CurseReason = "UnrecognizedEvenField"
)

func (c CurseReason) String() string {
	return string(c)
}
