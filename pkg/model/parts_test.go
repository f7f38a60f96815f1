package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestAddPart(t *testing.T) {
	doc := New()

	err := doc.AddPart("wire1", &Part{
		FCName:     "Sketch001",
		Directive:  DirectiveWire,
		DomainType: DomainSemiconductor,
		Material:   "InAs",
		Z0:         floatPtr(0),
		Thickness:  floatPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"wire1"}, doc.BuildOrder)

	err = doc.AddPart("gate1", &Part{
		FCName:     "Sketch002",
		Directive:  DirectiveExtrude,
		DomainType: DomainMetalGate,
		Material:   "Al",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"wire1", "gate1"}, doc.BuildOrder)
}

func TestAddPartValidation(t *testing.T) {
	tests := []struct {
		name    string
		part    string
		spec    *Part
		wantMsg string
	}{
		{
			name:    "duplicate name",
			part:    "wire1",
			spec:    &Part{FCName: "S", Directive: DirectiveWire, DomainType: DomainSemiconductor},
			wantMsg: "already in use",
		},
		{
			name:    "unknown directive",
			part:    "bad1",
			spec:    &Part{FCName: "S", Directive: "loft", DomainType: DomainSemiconductor},
			wantMsg: "unknown directive",
		},
		{
			name:    "unknown domain type",
			part:    "bad2",
			spec:    &Part{FCName: "S", Directive: DirectiveWire, DomainType: "insulator"},
			wantMsg: "unknown domain type",
		},
		{
			name:    "depo and etch zone both set",
			part:    "bad3",
			spec:    &Part{FCName: "S", Directive: DirectiveWireShell, DomainType: DomainMetalGate, DepoZone: "a", EtchZone: "b"},
			wantMsg: "cannot both be set",
		},
		{
			name:    "empty name",
			part:    "",
			spec:    &Part{FCName: "S", Directive: DirectiveWire, DomainType: DomainSemiconductor},
			wantMsg: "cannot be empty",
		},
	}

	doc := New()
	require.NoError(t, doc.AddPart("wire1", &Part{
		FCName: "S", Directive: DirectiveWire, DomainType: DomainSemiconductor,
	}))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := doc.AddPart(tt.part, tt.spec)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Message, tt.wantMsg)
		})
	}
}

func TestRegisterCADPart(t *testing.T) {
	doc := New()
	require.NoError(t, doc.AddPart("wire1", &Part{
		FCName: "S", Directive: DirectiveWire, DomainType: DomainSemiconductor,
	}))

	require.NoError(t, doc.RegisterCADPart("wire1", "wire1_0", "wire1_0.step", false))
	require.NoError(t, doc.RegisterCADPart("wire1", "wire1_1", "wire1_1.step", false))
	assert.Len(t, doc.Parts["wire1"].FileNames, 2)

	// Reset drops earlier registrations.
	require.NoError(t, doc.RegisterCADPart("wire1", "wire1_2", "wire1_2.step", true))
	assert.Equal(t, map[string]string{"wire1_2": "wire1_2.step"}, doc.Parts["wire1"].FileNames)

	err := doc.RegisterCADPart("nope", "a", "b", false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSetGeomSweep(t *testing.T) {
	doc := New()

	require.NoError(t, doc.SetGeomSweep("width", []float64{10, 20, 30}, GeomSweepCAD))
	assert.Equal(t, []float64{10, 20, 30}, doc.GeomSweeps["width"].Values)

	err := doc.SetGeomSweep("width", []float64{1}, "spreadsheet")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	err = doc.SetGeomSweep("width", nil, GeomSweepCAD)
	require.ErrorAs(t, err, &verr)
}

func TestSetPhysicsSweep(t *testing.T) {
	doc := New()

	require.NoError(t, doc.SetPhysicsSweep("gate1", "voltage", []float64{-1, 0, 1}, "V", "", false))
	assert.Equal(t, 3, doc.PhysicsSweep.Length)
	assert.Equal(t, SweepSparse, doc.PhysicsSweep.Type)

	sp, ok := doc.PhysicsSweep.Parts["voltage_gate1"]
	require.True(t, ok)
	assert.Equal(t, "voltage", sp.Symbol) // symbol defaults to quantity

	// Sparse sweeps must have matching lengths.
	err := doc.SetPhysicsSweep("gate2", "voltage", []float64{0, 1}, "V", "Vg2", false)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	require.NoError(t, doc.SetPhysicsSweep("gate2", "voltage", []float64{1, 2, 3}, "V", "Vg2", true))
	assert.Equal(t, SweepDense, doc.PhysicsSweep.Type)
}

func TestSetJobDefaults(t *testing.T) {
	doc := New()
	doc.SetJob(JobSettings{RootPath: "/tmp/run"})

	assert.Equal(t, []string{"geoGen"}, doc.JobSettings.Sequence)
	assert.Equal(t, 1, doc.JobSettings.NumParallelJobs)
	assert.Equal(t, 1, doc.JobSettings.NumCoresPerJob)
}
