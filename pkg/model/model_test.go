package model

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Contains(t, notFound.Path, "missing.json")
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := Load(path)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestLoadOrInitWritesSkeleton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	doc, err := LoadOrInit(path)
	require.NoError(t, err)
	assert.Empty(t, doc.GeometricParams)
	assert.Empty(t, doc.FreeCADInfo)

	// The skeleton must exist on disk and load cleanly.
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, loaded.GeometricParams)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")

	doc := New()
	doc.SetParam("alGateWidth", 50)
	doc.SetParam("wireRadius", 35.5)
	require.NoError(t, doc.SetObject("Sketch001", ObjectInfo{
		Label: "backgate",
		Type:  ObjectDomain,
		Physics: map[string]any{
			"voltage": 0.5,
		},
	}))
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc.GeometricParams, loaded.GeometricParams)
	assert.Equal(t, "backgate", loaded.FreeCADInfo["Sketch001"].Label)
	assert.Equal(t, 0.5, loaded.FreeCADInfo["Sketch001"].Physics["voltage"])

	// Saving the loaded document must reproduce the file byte for byte.
	first, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, loaded.Save(path))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestUpdateGeometricParams(t *testing.T) {
	doc := New()

	require.NoError(t, doc.Update(SectionGeometricParams, "A", 1.0))
	require.NoError(t, doc.Update(SectionGeometricParams, "B", 2))
	assert.Equal(t, map[string]float64{"A": 1.0, "B": 2.0}, doc.GeometricParams)

	err := doc.Update(SectionGeometricParams, "C", "not a number")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateFreeCADInfo(t *testing.T) {
	doc := New()

	require.NoError(t, doc.Update(SectionFreeCADInfo, "Box", map[string]any{
		"label": "substrate",
		"type":  "background",
	}))
	info, ok := doc.Object("Box")
	require.True(t, ok)
	assert.Equal(t, "substrate", info.Label)
	assert.Equal(t, ObjectBackground, info.Type)
}

func TestUpdatePreservesOtherSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	// A document written by some other tool, with a section we do not model.
	raw := map[string]any{
		"geometricParams": map[string]any{"width": 10.0},
		"freeCADInfo":     map[string]any{},
		"comsolInfo": map[string]any{
			"surfaceIntegrals": map[string]any{"gate1": []string{"V"}},
			"zeroLevel":        []any{nil, nil},
		},
	}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	doc, err := Load(path)
	require.NoError(t, err)

	before, err := json.Marshal(doc.Extra["comsolInfo"])
	require.NoError(t, err)

	require.NoError(t, doc.Update(SectionGeometricParams, "height", 20.0))
	require.NoError(t, doc.Save(path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	after, err := json.Marshal(reloaded.Extra["comsolInfo"])
	require.NoError(t, err)

	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, 10.0, reloaded.GeometricParams["width"])
	assert.Equal(t, 20.0, reloaded.GeometricParams["height"])
}

func TestUpdateUnknownSection(t *testing.T) {
	doc := New()

	require.NoError(t, doc.Update("comsolInfo", "fileName", "comsolModel"))
	require.NoError(t, doc.Update("comsolInfo", "exportDir", "solutions"))

	var section map[string]any
	require.NoError(t, json.Unmarshal(doc.Extra["comsolInfo"], &section))
	assert.Equal(t, "comsolModel", section["fileName"])
	assert.Equal(t, "solutions", section["exportDir"])
}

func TestMergePrefersInMemoryKeys(t *testing.T) {
	current := New()
	current.SetParam("width", 99)

	onDisk := New()
	onDisk.SetParam("width", 10)
	onDisk.SetParam("height", 20)

	current.Merge(onDisk)
	assert.Equal(t, 99.0, current.GeometricParams["width"])
	assert.Equal(t, 20.0, current.GeometricParams["height"])
}

func TestSetObjectRejectsUnknownType(t *testing.T) {
	doc := New()
	err := doc.SetObject("Sketch", ObjectInfo{Label: "x", Type: "blob"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestSaveOverwritesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.json")

	doc := New()
	doc.SetParam("a", 1)
	require.NoError(t, doc.Save(path))
	doc.SetParam("a", 2)
	require.NoError(t, doc.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, loaded.GeometricParams["a"])

	// No temp file debris left in the directory.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "model.json", entries[0].Name())
}
