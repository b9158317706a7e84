package ordinals

// InscriptionCharm records per-inscription attributes beyond the core data
// model. Today it carries only the burn flag; it is lazy, absent from an
// Object's Permanent area until SpendUTXO or HandleCoinbaseTx writes it
// when the inscription lands in an OP_RETURN output.
type InscriptionCharm struct {
	Burned bool
}
