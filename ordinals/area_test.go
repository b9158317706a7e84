package ordinals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaAddContainsBorrowRemove(t *testing.T) {
	area := make(Area)

	assert.False(t, Contains[InscriptionCharm](area))
	_, ok := Borrow[InscriptionCharm](area)
	assert.False(t, ok)

	Add(area, InscriptionCharm{Burned: false})
	assert.True(t, Contains[InscriptionCharm](area))

	charm, ok := Borrow[InscriptionCharm](area)
	require.True(t, ok)
	assert.False(t, charm.Burned)

	Add(area, InscriptionCharm{Burned: true})
	charm, ok = Borrow[InscriptionCharm](area)
	require.True(t, ok)
	assert.True(t, charm.Burned, "Add overwrites the existing value of the same type")

	removed, ok := Remove[InscriptionCharm](area)
	require.True(t, ok)
	assert.True(t, removed.Burned)
	assert.False(t, Contains[InscriptionCharm](area))

	_, ok = Remove[InscriptionCharm](area)
	assert.False(t, ok)
}

func TestAreaHoldsAtMostOneValuePerType(t *testing.T) {
	area := make(Area)
	Add(area, MetaprotocolValidity{ProtocolType: "a", IsValid: true})
	Add(area, InscriptionCharm{Burned: true})
	assert.Len(t, area, 2)

	Add(area, MetaprotocolValidity{ProtocolType: "b", IsValid: false})
	assert.Len(t, area, 2, "adding a second value of an already-present type replaces it")

	validity, ok := Borrow[MetaprotocolValidity](area)
	require.True(t, ok)
	assert.Equal(t, "b", validity.ProtocolType)
}

func TestAreaDrop(t *testing.T) {
	area := make(Area)
	Add(area, InscriptionCharm{Burned: true})
	Add(area, MetaprotocolValidity{IsValid: true})
	require.Len(t, area, 2)

	area.Drop()
	assert.Empty(t, area)
}
