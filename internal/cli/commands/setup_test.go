package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmod-labs/qmod/internal/cli/config"
)

func TestParseFloatList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []float64
		wantErr bool
	}{
		{name: "single", input: "1.0", want: []float64{1.0}},
		{name: "multiple", input: "1.0,2.5,3", want: []float64{1.0, 2.5, 3}},
		{name: "with spaces", input: " 1.0, 2.0 ", want: []float64{1.0, 2.0}},
		{name: "negative", input: "-0.5,0,0.5", want: []float64{-0.5, 0, 0.5}},
		{name: "not a number", input: "1.0,abc", wantErr: true},
		{name: "empty element", input: "1.0,,2.0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFloatList(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNameList(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, parseNameList("A,B"))
	assert.Equal(t, []string{"A", "B"}, parseNameList(" A , B "))
	assert.Equal(t, []string{"A"}, parseNameList("A,"))
	assert.Empty(t, parseNameList(""))
}

func TestCollectParams(t *testing.T) {
	t.Run("positional form", func(t *testing.T) {
		params, err := collectParams([]string{"A=1.0", "B=2.5"}, "", "")
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, param{name: "A", value: 1.0}, params[0])
		assert.Equal(t, param{name: "B", value: 2.5}, params[1])
	})

	t.Run("parallel list form", func(t *testing.T) {
		params, err := collectParams(nil, "A,B", "1.0,2.0")
		require.NoError(t, err)
		require.Len(t, params, 2)
		assert.Equal(t, param{name: "A", value: 1.0}, params[0])
		assert.Equal(t, param{name: "B", value: 2.0}, params[1])
	})

	t.Run("mixed forms combine", func(t *testing.T) {
		params, err := collectParams([]string{"C=3"}, "A,B", "1.0,2.0")
		require.NoError(t, err)
		assert.Len(t, params, 3)
	})

	t.Run("length mismatch", func(t *testing.T) {
		_, err := collectParams(nil, "A,B,C", "1.0,2.0")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "3 names but 2 values")
	})

	t.Run("names without values", func(t *testing.T) {
		_, err := collectParams(nil, "A,B", "")
		require.Error(t, err)
	})

	t.Run("missing equals", func(t *testing.T) {
		_, err := collectParams([]string{"A"}, "", "")
		require.Error(t, err)
	})

	t.Run("bad value", func(t *testing.T) {
		_, err := collectParams([]string{"A=x"}, "", "")
		require.Error(t, err)
	})
}

func TestGetConfigEnvFallback(t *testing.T) {
	config.ResetConfig()
	t.Setenv("QMOD_MODEL", "/tmp/m.json")
	t.Setenv("QMOD_ENERGY_UNIT", "eV")

	cfg := getConfig()
	assert.Equal(t, "/tmp/m.json", cfg.ModelPath)
	assert.Equal(t, "eV", cfg.EnergyUnit)
	assert.Equal(t, "macros", cfg.MacrosDir)
}
