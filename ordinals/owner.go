package ordinals

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/txscript"

	"github.com/satflow/ordinals-engine/common"
	"github.com/satflow/ordinals-engine/pkg/btcutils"
)

// IsOpReturn reports whether pkScript is a provably-unspendable OP_RETURN
// output: an inscription landing here is burned (§4.6 step 3).
func IsOpReturn(pkScript []byte) bool {
	return len(pkScript) > 0 && pkScript[0] == txscript.OP_RETURN
}

// OwnerForPkScript derives the external owner identity a SatPoint transfers
// to for a non-OP_RETURN output. When the script is non-standard and
// PkScriptToAddress cannot recognize it, the owner falls back to the raw
// scriptPubKey's lower-hex encoding instead of failing the transfer:
// ordinary confirmed chain data must never abort processing on a script
// shape the address codec doesn't recognize.
func OwnerForPkScript(pkScript []byte, network common.Network) string {
	address, err := btcutils.PkScriptToAddress(pkScript, network)
	if err != nil {
		return hex.EncodeToString(pkScript)
	}
	return address
}
