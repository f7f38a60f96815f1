package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDirMissing(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestLoadFromDir(t *testing.T) {
	dir := t.TempDir()
	yaml := `
model: devices/wire.json
materials: materials.json
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(yaml), 0o644))

	cfg, err := LoadFromDir(dir)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "devices/wire.json", cfg.ModelPath)
	assert.Equal(t, "materials.json", cfg.MaterialsPath)

	// Defaults fill the unset fields.
	assert.Equal(t, DefaultGeometryFile, cfg.GeometryPath)
	assert.Equal(t, DefaultMacrosDir, cfg.MacrosDir)
	assert.Equal(t, DefaultEnergyUnit, cfg.EnergyUnit)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileNameAlt), []byte(""), 0o644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, "", FindProjectRoot(t.TempDir()))
}
