package ordinals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectTransfer(t *testing.T) {
	obj := NewObject(Inscription{SequenceNumber: 1})
	require.NoError(t, obj.Transfer("bc1qexample"))
	assert.Equal(t, "bc1qexample", obj.Owner)
}

func TestObjectFreezeRejectsFurtherTransfers(t *testing.T) {
	obj := NewObject(Inscription{SequenceNumber: 1})
	require.NoError(t, obj.Transfer("bc1qexample"))

	obj.Freeze()
	assert.True(t, obj.Frozen)
	assert.Equal(t, "burned", obj.Owner)

	err := obj.Transfer("bc1qanother")
	assert.ErrorIs(t, err, ErrObjectFrozen)
	assert.Equal(t, "burned", obj.Owner, "a rejected transfer must not change the owner")
}

func TestObjectDropTemporaryPreservesPermanent(t *testing.T) {
	obj := NewObject(Inscription{})
	Add(obj.Permanent, InscriptionCharm{Burned: false})
	Add(obj.Temporary, MetaprotocolValidity{IsValid: true})

	obj.DropTemporary()

	assert.True(t, Contains[InscriptionCharm](obj.Permanent))
	assert.False(t, Contains[MetaprotocolValidity](obj.Temporary))
}
