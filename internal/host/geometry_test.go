package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryRoundTrip(t *testing.T) {
	doc := NewMemDocument()
	_, err := doc.AddBox("wire", "nanowire", Box{MaxX: 4, MaxY: 1, MaxZ: 1})
	require.NoError(t, err)
	_, err = doc.Create("virtual", "virtual", Shape{Vertices: 8, Faces: 6})
	require.NoError(t, err)
	require.NoError(t, doc.Spreadsheet("modelParams").Set("A1", "parameter"))

	path := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, doc.SaveFile(path))

	loaded, err := LoadMemDocument(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"virtual", "wire"}, loaded.Names())

	wire, ok := loaded.Object("wire")
	require.True(t, ok)
	assert.Equal(t, "nanowire", wire.Label)
	assert.Equal(t, Shape{Vertices: 8, Faces: 6}, wire.Shape)

	// Box geometry survives, so booleans still work after a reload.
	_, err = loaded.AddBox("mask", "mask", Box{MaxX: 2, MaxY: 2, MaxZ: 2})
	require.NoError(t, err)
	inter, err := loaded.Intersect("cut", "wire", "mask")
	require.NoError(t, err)
	assert.False(t, inter.Shape.Empty())

	v, ok := loaded.Spreadsheet("modelParams").Get("A1")
	require.True(t, ok)
	assert.Equal(t, "parameter", v)
}

func TestLoadMemDocumentMissing(t *testing.T) {
	_, err := LoadMemDocument(filepath.Join(t.TempDir(), "absent.json"))
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestLoadMemDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadMemDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse geometry file")
}

func TestLoadMemDocumentEmptyObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "geometry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"objects": {"x": {}}}`), 0o644))

	_, err := LoadMemDocument(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neither box nor shape")
}
