package ordinals

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satflow/ordinals-engine/core/types"
)

func inscriptionWitness(t *testing.T, fields ...[]byte) wire.TxWitness {
	t.Helper()
	builder := NewPushScriptBuilder().
		AddOp(txscript.OP_FALSE).
		AddOp(txscript.OP_IF).
		AddData(protocolId)
	for _, f := range fields {
		builder.AddData(f)
	}
	builder.AddOp(txscript.OP_ENDIF)
	script, err := builder.Script()
	require.NoError(t, err)
	return wire.TxWitness{script, {}}
}

func TestBuildInscriptions_SingleInscriptionOffsetZero(t *testing.T) {
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("hello"))},
		},
	}

	inscriptions, events := BuildInscriptions(tx, []uint64{10_000}, 5, 5, nil)
	require.Empty(t, events)
	require.Len(t, inscriptions, 1)

	insc := inscriptions[0]
	assert.Equal(t, uint64(0), insc.Offset)
	assert.Equal(t, uint32(5), insc.SequenceNumber)
	assert.Equal(t, uint32(5), insc.InscriptionNumber)
	assert.False(t, insc.IsCurse)
	assert.Equal(t, []byte("hello"), insc.Body)
}

// S2: pointer exceeds input value, so p clamps to 0.
func TestBuildInscriptions_PointerExceedsInputValueClampsToZero(t *testing.T) {
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagPointer.Bytes(), []byte{0x58, 0x1b}, TagBody.Bytes(), []byte("x"))}, // 7000 little-endian
		},
	}

	inscriptions, events := BuildInscriptions(tx, []uint64{5_000}, 0, 0, nil)
	require.Empty(t, events)
	require.Len(t, inscriptions, 1)
	assert.Equal(t, uint64(0), inscriptions[0].Offset)
}

func TestBuildInscriptions_OffsetAccumulatesAcrossInputs(t *testing.T) {
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: wire.TxWitness{}},
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("second input"))},
		},
	}

	inscriptions, events := BuildInscriptions(tx, []uint64{1_000, 2_000}, 0, 0, nil)
	require.Empty(t, events)
	require.Len(t, inscriptions, 1)
	assert.Equal(t, uint64(1_000), inscriptions[0].Offset)
}

func TestBuildInscriptions_InvalidRecordDroppedAndReported(t *testing.T) {
	// duplicate field: push TagNop twice
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagNop.Bytes(), []byte{}, TagNop.Bytes(), []byte{})},
		},
	}

	inscriptions, events := BuildInscriptions(tx, []uint64{1_000}, 0, 0, nil)
	assert.Empty(t, inscriptions)
	require.Len(t, events, 1)
	assert.True(t, events[0].Record.DuplicateField)
}

func TestBuildInscriptions_DelegateFieldResolvesToDerivedObjectID(t *testing.T) {
	delegate := NewInscriptionId(chainhash.Hash{0x02}, 0)
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagDelegate.Bytes(), []byte(delegate.String()), TagBody.Bytes(), []byte("x"))},
		},
	}

	inscriptions, events := BuildInscriptions(tx, []uint64{1_000}, 0, 0, nil)
	require.Empty(t, events)
	require.Len(t, inscriptions, 1)
	require.NotNil(t, inscriptions[0].Delegate)
	assert.Equal(t, DeriveInscriptionID(delegate), *inscriptions[0].Delegate)
}

func TestBuildInscriptions_SequenceAssignedInAscendingOrder(t *testing.T) {
	tx := &types.Transaction{
		TxIn: []*types.TxIn{
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("a"))},
			{Witness: inscriptionWitness(t, TagBody.Bytes(), []byte("b"))},
		},
	}

	inscriptions, _ := BuildInscriptions(tx, []uint64{1_000, 1_000}, 10, 10, nil)
	require.Len(t, inscriptions, 2)
	assert.Equal(t, uint32(10), inscriptions[0].SequenceNumber)
	assert.Equal(t, uint32(11), inscriptions[1].SequenceNumber)
}
