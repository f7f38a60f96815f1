package material

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlloyNameForms(t *testing.T) {
	db := Builtin()

	// The three accepted spellings of the same alloy resolve to the same
	// properties.
	names := []string{
		"In0.75Ga0.25As",
		"(InAs)0.75(GaAs)0.25",
	}
	var gaps []float64
	for _, name := range names {
		m, err := db.Find(name)
		require.NoError(t, err, name)
		gap, err := m.Get(PropDirectBandGap)
		require.NoError(t, err, name)
		gaps = append(gaps, gap)
	}
	assert.InDelta(t, gaps[0], gaps[1], 1e-9)
}

func TestAlloyAnionForm(t *testing.T) {
	db := Builtin()
	m, err := db.Find("InAs0.5Sb0.5")
	require.NoError(t, err)

	gap, err := m.Get(PropDirectBandGap)
	require.NoError(t, err)
	// x = 0.5, endpoints InAs (417) and InSb (235), bowing 670:
	// 0.5*417 + 0.5*235 - 0.25*670 = 158.5
	assert.InDelta(t, 158.5, gap, 1e-9)
}

func TestAlloyBowingOrientation(t *testing.T) {
	db := Builtin()

	// GaAs/InAs bowing is registered as (GaAs, InAs); a lookup phrased
	// from the InAs side must give the mirrored result.
	a, err := db.Find("In0.25Ga0.75As")
	require.NoError(t, err)
	b, err := db.Find("Ga0.75In0.25As")
	require.NoError(t, err)

	gapA, err := a.Get(PropDirectBandGap)
	require.NoError(t, err)
	gapB, err := b.Get(PropDirectBandGap)
	require.NoError(t, err)
	assert.InDelta(t, gapA, gapB, 1e-9)

	// x = 0.25 InAs fraction: 0.75*1519 + 0.25*417 - 0.1875*477
	assert.InDelta(t, 0.75*1519+0.25*417-0.1875*477, gapA, 1e-9)
}

func TestAlloyLinearWithoutBowing(t *testing.T) {
	db := Builtin()

	// No bowing registered for the permittivity: plain linear mix.
	m, err := db.Find("In0.5Ga0.5As")
	require.NoError(t, err)
	eps, err := m.Get(PropRelativePermittivity)
	require.NoError(t, err)
	assert.InDelta(t, 0.5*13.1+0.5*15.15, eps, 1e-9)
}

func TestAlloyDropsUnsharedProperties(t *testing.T) {
	db := Builtin()

	// InAs carries a chargeNeutralityLevel, GaAs does not; the alloy must
	// not invent one.
	m, err := db.Find("In0.5Ga0.5As")
	require.NoError(t, err)
	assert.False(t, m.Has(PropChargeNeutralityLevel))
}

func TestAlloyMixedKindsRejected(t *testing.T) {
	db := Builtin()
	_, err := db.Find("(Al)0.5(InAs)0.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot mix")
}

func TestAlloyUnknownEndpoint(t *testing.T) {
	db := Builtin()
	_, err := db.Find("In0.5Xx0.5As")
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}
