package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
	"github.com/qmod-labs/qmod/pkg/material"
)

func TestMaterialPairsUsesEnergyUnit(t *testing.T) {
	db := material.Builtin()

	meV, err := db.FindWithUnit("InAs", "meV")
	require.NoError(t, err)
	eV, err := db.FindWithUnit("InAs", "eV")
	require.NoError(t, err)

	findPair := func(pairs []spreadsheet.Pair, name string) spreadsheet.Pair {
		for _, p := range pairs {
			if p.Name == name {
				return p
			}
		}
		t.Fatalf("no pair named %s", name)
		return spreadsheet.Pair{}
	}

	gap := findPair(materialPairs(meV), "directBandGap")
	assert.InDelta(t, 417.0, gap.Value.(float64), 1e-9)

	gap = findPair(materialPairs(eV), "directBandGap")
	assert.InDelta(t, 0.417, gap.Value.(float64), 1e-9)

	// Dimensionless properties are not rescaled.
	mass := findPair(materialPairs(eV), "electronMass")
	rawMass, err := meV.Get("electronMass")
	require.NoError(t, err)
	assert.Equal(t, rawMass, mass.Value)
}
