package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	intconfig "github.com/qmod-labs/qmod/internal/config"
	"github.com/qmod-labs/qmod/pkg/model"
)

func TestNewInitCommand(t *testing.T) {
	tests := []struct {
		name      string
		setupDir  func(t *testing.T, dir string)
		args      []string
		wantErr   bool
		wantFiles []string
	}{
		{
			name: "init empty directory",
			args: []string{},
			wantFiles: []string{
				"qmod.yaml",
				"model.json",
				"geometry.json",
				"macros",
				"macros/example.star",
			},
		},
		{
			name: "init existing config without force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "qmod.yaml"), []byte("existing"), 0600)
			},
			args:    []string{},
			wantErr: true,
		},
		{
			name: "init existing config with force",
			setupDir: func(_ *testing.T, dir string) {
				_ = os.WriteFile(filepath.Join(dir, "qmod.yaml"), []byte("existing"), 0600)
			},
			args: []string{"--force"},
			wantFiles: []string{
				"qmod.yaml",
				"model.json",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			t.Chdir(tmpDir)
			if tt.setupDir != nil {
				tt.setupDir(t, tmpDir)
			}

			cmd := NewInitCommand()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			for _, f := range tt.wantFiles {
				_, statErr := os.Stat(filepath.Join(tmpDir, f))
				assert.NoError(t, statErr, "expected %s to exist", f)
			}
		})
	}
}

func TestInitIntoNewDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"my-device"})
	require.NoError(t, cmd.Execute())

	_, err := os.Stat(filepath.Join(tmpDir, "my-device", "qmod.yaml"))
	assert.NoError(t, err)
}

func TestInitScaffoldRoundTrips(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	pc, err := intconfig.LoadFromDir(tmpDir)
	require.NoError(t, err)
	require.NotNil(t, pc)
	assert.Equal(t, "model.json", pc.ModelPath)
	assert.Equal(t, "macros", pc.MacrosDir)
	assert.Contains(t, buf.String(), "model document: model.json")
}

func TestInitModelSkeletonLoads(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	cmd := NewInitCommand()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	doc, err := model.Load(filepath.Join(tmpDir, "model.json"))
	require.NoError(t, err)
	gap, ok := doc.Param("gate_gap")
	require.True(t, ok)
	assert.Equal(t, 50.0, gap)
}
