package ordinals

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satflow/ordinals-engine/core/types"
)

func chainhashOf(t *testing.T, fill byte) chainhash.Hash {
	t.Helper()
	var h chainhash.Hash
	for i := range h {
		h[i] = fill
	}
	return h
}

func p2wpkhScript(t *testing.T, fill byte) []byte {
	t.Helper()
	hash := make([]byte, 20)
	for i := range hash {
		hash[i] = fill
	}
	script, err := txscript.NewScriptBuilder().AddOp(txscript.OP_0).AddData(hash).Script()
	require.NoError(t, err)
	return script
}

func opReturnScript(t *testing.T) []byte {
	t.Helper()
	script, err := txscript.NewScriptBuilder().AddOp(txscript.OP_RETURN).AddData([]byte("test")).Script()
	require.NoError(t, err)
	return script
}

// S1: single input, single output, one inscription -> SeparateOutputs mode.
func TestProcessTransaction_SeparateOutputs(t *testing.T) {
	e := newTestEngine()
	tx := &types.Transaction{
		TxHash: chainhashOf(t, 0x01),
		TxIn:   []*types.TxIn{{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("hi"))}},
		TxOut:  []*types.TxOut{{PkScript: p2wpkhScript(t, 0x01), Value: 10_000}},
	}

	satPoints, err := e.ProcessTransaction(tx, []uint64{10_000})
	require.NoError(t, err)
	require.Len(t, satPoints, 1)
	assert.Equal(t, uint32(0), satPoints[0].OutputIndex)
	assert.Equal(t, uint64(0), satPoints[0].Offset)

	obj, ok := e.ObjectByID(satPoints[0].ObjectID)
	require.True(t, ok)
	assert.NotEmpty(t, obj.Owner)
	assert.False(t, obj.Frozen)
}

// Two inscriptions from two inputs, one output -> SameSat/SharedOutput mode:
// both land in output 0, retaining their builder-computed offsets.
func TestProcessTransaction_SharedOutput(t *testing.T) {
	e := newTestEngine()
	tx := &types.Transaction{
		TxHash: chainhashOf(t, 0x02),
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("a"))},
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("b"))},
		},
		TxOut: []*types.TxOut{{PkScript: p2wpkhScript(t, 0x02), Value: 20_000}},
	}

	satPoints, err := e.ProcessTransaction(tx, []uint64{1_000, 1_000})
	require.NoError(t, err)
	require.Len(t, satPoints, 2)
	assert.Equal(t, uint32(0), satPoints[0].OutputIndex)
	assert.Equal(t, uint64(0), satPoints[0].Offset)
	assert.Equal(t, uint32(0), satPoints[1].OutputIndex)
	assert.Equal(t, uint64(1_000), satPoints[1].Offset)
}

// S6: a spent inscription lands on an OP_RETURN output and is burned.
func TestSpendUTXO_BurnViaOpReturn(t *testing.T) {
	e := newTestEngine()
	require.NoError(t, e.RegisterMetaprotocol("brc-20", "brc20.Token"))

	creationTx := &types.Transaction{
		TxHash: chainhashOf(t, 0x03),
		TxIn:   []*types.TxIn{{Witness: inscriptionWitness(t, TagMetaprotocol.Bytes(), []byte("brc-20"), TagBody.Bytes(), []byte("x"))}},
		TxOut:  []*types.TxOut{{PkScript: p2wpkhScript(t, 0x03), Value: 1_000}},
	}
	satPoints, err := e.ProcessTransaction(creationTx, []uint64{1_000})
	require.NoError(t, err)
	require.Len(t, satPoints, 1)

	iid := NewInscriptionId(creationTx.TxHash, 0)
	obj, ok := e.Object(iid)
	require.True(t, ok)
	require.False(t, obj.Frozen)

	e.DrainMetaprotocolEvents("brc-20") // clear the New event before asserting the Burn event below

	spendTx := &types.Transaction{
		TxHash: chainhashOf(t, 0x04),
		TxIn:   []*types.TxIn{{}},
		TxOut:  []*types.TxOut{{PkScript: opReturnScript(t), Value: 1_000}},
	}
	utxo := &UTXO{Value: 1_000, Seals: []InscriptionId{iid}}

	spentSatPoints, flotsams, err := e.SpendUTXO(utxo, spendTx, []uint64{1_000}, 0)
	require.NoError(t, err)
	assert.Empty(t, flotsams)
	require.Len(t, spentSatPoints, 1)

	assert.True(t, obj.Frozen)
	assert.Equal(t, "burned", obj.Owner)
	charm, ok := Borrow[InscriptionCharm](obj.Permanent)
	require.True(t, ok)
	assert.True(t, charm.Burned)

	err = obj.Transfer("someone-else")
	assert.ErrorIs(t, err, ErrObjectFrozen)

	burnEvents := e.DrainMetaprotocolEvents("brc-20")
	require.Len(t, burnEvents, 1)
	assert.Equal(t, EventBurn, burnEvents[0].EventType)
}

// S4 -> S5: an inscription spills into fees on spend, then is picked up by
// the next coinbase.
func TestSpendUTXO_FeeThenCoinbasePickup(t *testing.T) {
	e := newTestEngine()

	// Built directly rather than via ProcessTransaction: SeparateOutputs
	// mode always resets a freshly created inscription's offset to 0, so a
	// nonzero starting offset (needed to exercise the fee path) is set up
	// by hand here instead.
	txHash := chainhashOf(t, 0x05)
	insc := &Inscription{TxHash: txHash, Index: 0, Offset: 900, SequenceNumber: 0}
	e.createObject(insc)
	iid := insc.InscriptionID()

	spendTx := &types.Transaction{
		TxHash: chainhashOf(t, 0x06),
		TxIn:   []*types.TxIn{{}},
		TxOut:  []*types.TxOut{{PkScript: p2wpkhScript(t, 0x06), Value: 100}}, // less than the inscription's sat offset
	}
	utxo := &UTXO{Value: 1_000, Seals: []InscriptionId{iid}}

	satPoints, flotsams, err := e.SpendUTXO(utxo, spendTx, []uint64{1_000}, 0)
	require.NoError(t, err)
	assert.Empty(t, satPoints)
	require.Len(t, flotsams, 1)

	coinbaseTx := &types.Transaction{
		TxIn:  []*types.TxIn{{PreviousOutTxHash: chainhashOf(t, 0x00)}},
		TxOut: []*types.TxOut{{PkScript: p2wpkhScript(t, 0x07), Value: 6_000_000_000}},
	}

	coinbaseSatPoints, err := e.HandleCoinbaseTx(coinbaseTx, flotsams, 1)
	require.NoError(t, err)
	require.Len(t, coinbaseSatPoints, 1)
	assert.Equal(t, uint32(0), coinbaseSatPoints[0].OutputIndex)

	obj, ok := e.Object(iid)
	require.True(t, ok)
	assert.Equal(t, coinbaseSatPoints[0].Offset, obj.Value.Offset)
	assert.False(t, obj.Frozen)
}

func TestDrainInvalidEvents(t *testing.T) {
	e := newTestEngine()
	tx := &types.Transaction{
		TxHash: chainhashOf(t, 0x08),
		TxIn:   []*types.TxIn{{Witness: inscriptionWitness(t, TagNop.Bytes(), []byte{}, TagNop.Bytes(), []byte{})}},
		TxOut:  []*types.TxOut{{PkScript: p2wpkhScript(t, 0x08), Value: 1_000}},
	}

	satPoints, err := e.ProcessTransaction(tx, []uint64{1_000})
	require.NoError(t, err)
	assert.Empty(t, satPoints)

	events := e.DrainInvalidEvents()
	require.Len(t, events, 1)
	assert.True(t, events[0].Record.DuplicateField)
	assert.Empty(t, e.DrainInvalidEvents())
}
