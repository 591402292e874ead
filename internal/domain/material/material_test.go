package material_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calperin/fuelcycle-go/internal/domain/material"
)

func TestNew_Validation(t *testing.T) {
	_, err := material.New(decimal.NewFromInt(-1), "uox")
	assert.Error(t, err)

	_, err = material.New(decimal.NewFromInt(10), "")
	assert.Error(t, err)

	mat, err := material.New(decimal.NewFromInt(10), "uox")
	require.NoError(t, err)
	assert.True(t, mat.IsTracked())
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", mat.ID().String())
	assert.Equal(t, "uox", mat.Recipe())
	assert.True(t, mat.Quantity().Equal(decimal.NewFromInt(10)))
}

func TestNewUntracked_HasNoIdentity(t *testing.T) {
	mat, err := material.NewUntracked(decimal.NewFromInt(5), "uox")
	require.NoError(t, err)
	assert.False(t, mat.IsTracked())
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", mat.ID().String())
}

func TestAbsorb_MergesAndZeroesDonor(t *testing.T) {
	a, err := material.New(decimal.NewFromInt(10), "uox")
	require.NoError(t, err)
	b, err := material.New(decimal.NewFromInt(7), "uox")
	require.NoError(t, err)

	require.NoError(t, a.Absorb(b))

	assert.True(t, a.Quantity().Equal(decimal.NewFromInt(17)))
	assert.True(t, b.Quantity().IsZero())
}

func TestAbsorb_BlankAdoptsRecipe(t *testing.T) {
	blank := material.NewBlank()
	assert.Equal(t, "", blank.Recipe())

	mat, err := material.New(decimal.NewFromFloat(2.5), "uox")
	require.NoError(t, err)

	require.NoError(t, blank.Absorb(mat))

	assert.Equal(t, "uox", blank.Recipe())
	assert.True(t, blank.Quantity().Equal(decimal.NewFromFloat(2.5)))
}

func TestAbsorb_RecipeMismatch(t *testing.T) {
	a, err := material.New(decimal.NewFromInt(10), "uox")
	require.NoError(t, err)
	b, err := material.New(decimal.NewFromInt(5), "spent_uox")
	require.NoError(t, err)

	err = a.Absorb(b)

	require.Error(t, err)
	var mismatch *material.ErrRecipeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestExtractQty_SplitsOffExactQuantity(t *testing.T) {
	mat, err := material.New(decimal.NewFromInt(25), "uox")
	require.NoError(t, err)

	part, err := mat.ExtractQty(decimal.NewFromInt(10))

	require.NoError(t, err)
	assert.True(t, part.Quantity().Equal(decimal.NewFromInt(10)))
	assert.True(t, mat.Quantity().Equal(decimal.NewFromInt(15)))
	assert.Equal(t, "uox", part.Recipe())
	assert.NotEqual(t, mat.ID(), part.ID())
}

func TestExtractQty_Underflow(t *testing.T) {
	mat, err := material.New(decimal.NewFromInt(5), "uox")
	require.NoError(t, err)

	_, err = mat.ExtractQty(decimal.NewFromInt(6))

	var insufficient *material.ErrInsufficientQuantity
	require.ErrorAs(t, err, &insufficient)
	assert.True(t, insufficient.Available.Equal(decimal.NewFromInt(5)))
	// the failed extraction must not mutate the material
	assert.True(t, mat.Quantity().Equal(decimal.NewFromInt(5)))
}

func TestTransmute_PreservesQuantity(t *testing.T) {
	mat, err := material.New(decimal.NewFromInt(10), "uox")
	require.NoError(t, err)

	require.NoError(t, mat.Transmute("spent_uox"))

	assert.Equal(t, "spent_uox", mat.Recipe())
	assert.True(t, mat.Quantity().Equal(decimal.NewFromInt(10)))

	assert.Error(t, mat.Transmute(""))
}

func TestRegistry(t *testing.T) {
	reg := material.NewRegistry()
	require.NoError(t, reg.Register("uox", material.Composition{
		"U235": decimal.NewFromFloat(0.04),
		"U238": decimal.NewFromFloat(0.96),
	}))

	assert.True(t, reg.Has("uox"))
	assert.False(t, reg.Has("mox"))

	comp, err := reg.Get("uox")
	require.NoError(t, err)
	assert.Len(t, comp, 2)

	_, err = reg.Get("mox")
	var unknown *material.ErrUnknownRecipe
	assert.ErrorAs(t, err, &unknown)

	assert.Error(t, reg.Register("", nil))
	assert.Equal(t, []string{"uox"}, reg.Names())
}
