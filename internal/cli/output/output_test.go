package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectiveModeExplicit(t *testing.T) {
	var out, errOut strings.Builder

	r := NewRenderer(&out, &errOut, ModeJSON)
	assert.Equal(t, ModeJSON, r.EffectiveMode())

	// Aliases normalize to canonical modes.
	r = NewRenderer(&out, &errOut, "markdown")
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
	r = NewRenderer(&out, &errOut, "text")
	assert.Equal(t, ModeTable, r.EffectiveMode())
}

func TestEffectiveModeAutoNonTerminal(t *testing.T) {
	var out, errOut strings.Builder
	r := NewRenderer(&out, &errOut, ModeAuto)
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRendererStreams(t *testing.T) {
	var out, errOut strings.Builder
	r := NewRenderer(&out, &errOut, ModeTable)

	r.Println("hello")
	r.Printf("%d params\n", 2)
	r.Success("saved")
	r.Warning("careful")
	r.Error("failed")

	assert.Contains(t, out.String(), "hello")
	assert.Contains(t, out.String(), "2 params")
	assert.Contains(t, out.String(), "saved")
	assert.Contains(t, errOut.String(), "careful")
	assert.Contains(t, errOut.String(), "failed")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Parameters", FormatHeader(1, "Parameters"))
	assert.Equal(t, "## wire", FormatHeader(2, "wire"))
	assert.Equal(t, "# x", FormatHeader(0, "x"))
	assert.Equal(t, "- **File**: model.json", FormatKeyValue("File", "model.json"))
}
