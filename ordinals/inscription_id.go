package ordinals

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/cockroachdb/errors"
)

// InscriptionId identifies an inscription by the transaction that created it
// and the envelope index within that transaction.
type InscriptionId struct {
	TxHash chainhash.Hash
	Index  uint32
}

func NewInscriptionId(txHash chainhash.Hash, index uint32) InscriptionId {
	return InscriptionId{TxHash: txHash, Index: index}
}

// String returns the canonical `<reversed-hex-txid>i<index>` form. chainhash.Hash.String
// already reverses byte order to the Bitcoin display convention, so no manual reversal
// is needed here.
func (i InscriptionId) String() string {
	return fmt.Sprintf("%si%d", i.TxHash.String(), i.Index)
}

var ErrInscriptionIdInvalidSeparator = errors.New("invalid inscription id: must contain exactly one 'i' separator")

// NewInscriptionIdFromString parses the canonical string form. It is total: malformed
// hex, a missing separator, or a non-numeric index all return a non-nil error rather
// than panicking.
func NewInscriptionIdFromString(s string) (InscriptionId, error) {
	parts := strings.SplitN(s, "i", 2)
	if len(parts) != 2 {
		return InscriptionId{}, errors.WithStack(ErrInscriptionIdInvalidSeparator)
	}
	txHash, err := chainhash.NewHashFromStr(parts[0])
	if err != nil {
		return InscriptionId{}, errors.Wrap(err, "invalid inscription id: cannot parse txid")
	}
	index, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return InscriptionId{}, errors.Wrap(err, "invalid inscription id: cannot parse index")
	}
	return InscriptionId{TxHash: *txHash, Index: uint32(index)}, nil
}

// MarshalJSON implements json.Marshaler.
func (i InscriptionId) MarshalJSON() ([]byte, error) {
	return []byte(`"` + i.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *InscriptionId) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errors.New("inscription id must be a quoted string")
	}
	parsed, err := NewInscriptionIdFromString(string(data[1 : len(data)-1]))
	if err != nil {
		return errors.WithStack(err)
	}
	*i = parsed
	return nil
}
