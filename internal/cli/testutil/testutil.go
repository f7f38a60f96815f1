// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/qmod-labs/qmod/internal/cli/output"
)

// SetupTestProject creates a temporary qmod project with a config file, a
// model document, a geometry document and a macros directory.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(tmpDir, "macros"), 0755); err != nil {
		t.Fatalf("failed to create macros directory: %v", err)
	}

	config := `model: model.json
geometry: geometry.json
macros_dir: macros
energy_unit: meV
`
	if err := os.WriteFile(filepath.Join(tmpDir, "qmod.yaml"), []byte(config), 0644); err != nil {
		t.Fatalf("failed to create qmod.yaml: %v", err)
	}

	model := `{
  "geometricParams": {"gate_gap": 50, "wire_width": 12.5},
  "freeCADInfo": {
    "wire": {"label": "Nanowire", "type": "domain"},
    "gate1": {"label": "Left gate", "type": "boundary", "physics": {"voltage": 0.3}}
  }
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "model.json"), []byte(model), 0644); err != nil {
		t.Fatalf("failed to create model.json: %v", err)
	}

	geometry := `{
  "objects": {
    "mask": {"label": "mask", "box": [0, 0, 0, 10, 10, 10]},
    "wire": {"label": "wire", "box": [2, 2, 2, 8, 8, 8]},
    "gate1": {"label": "gate1", "box": [8, 8, 8, 14, 14, 14]},
    "stray": {"label": "stray", "box": [20, 20, 20, 30, 30, 30]}
  }
}`
	if err := os.WriteFile(filepath.Join(tmpDir, "geometry.json"), []byte(geometry), 0644); err != nil {
		t.Fatalf("failed to create geometry.json: %v", err)
	}

	return tmpDir
}

// WriteMacro writes a .star file into the project's macros directory.
func WriteMacro(t *testing.T, projectDir, name, src string) {
	t.Helper()
	path := filepath.Join(projectDir, "macros", name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write macro %s: %v", name, err)
	}
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a test renderer in the given mode. Output is
// captured in buffers for inspection.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// Output returns the captured stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string %q does not contain expected %q", s, expected)
	}
}

// AssertNotContains checks that the string does not contain the substring.
func AssertNotContains(t *testing.T, s, unexpected string) {
	t.Helper()
	if strings.Contains(s, unexpected) {
		t.Errorf("string %q unexpectedly contains %q", s, unexpected)
	}
}
