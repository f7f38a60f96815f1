package starlark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"
)

func TestGoToStarlark(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want starlark.Value
	}{
		{"nil", nil, starlark.None},
		{"string", "hello", starlark.String("hello")},
		{"int", 42, starlark.MakeInt(42)},
		{"float", 1.5, starlark.Float(1.5)},
		{"bool", true, starlark.Bool(true)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GoToStarlark(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGoToStarlarkParamMap(t *testing.T) {
	got, err := GoToStarlark(map[string]float64{"width": 10, "gateLength": 50})
	require.NoError(t, err)

	dict := got.(*starlark.Dict)
	assert.Equal(t, 2, dict.Len())
	v, found, err := dict.Get(starlark.String("width"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, starlark.Float(10), v)
}

func TestGoToStarlarkUnsupported(t *testing.T) {
	_, err := GoToStarlark(struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported type")
}

func TestToGoRoundTrip(t *testing.T) {
	in := map[string]any{
		"label": "wire",
		"count": int64(3),
		"sizes": []any{1.0, 2.0},
	}
	sv, err := GoToStarlark(in)
	require.NoError(t, err)

	back, err := ToGo(sv)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}

func TestToGoTuple(t *testing.T) {
	tuple := starlark.Tuple{starlark.String("wire"), starlark.Float(2.5), starlark.MakeInt(3)}

	got, err := ToGo(tuple)
	require.NoError(t, err)
	assert.Equal(t, []any{"wire", 2.5, int64(3)}, got)
}

func TestParseArg(t *testing.T) {
	assert.Equal(t, starlark.MakeInt(3), ParseArg("3"))
	assert.Equal(t, starlark.Float(1.5), ParseArg("1.5"))
	assert.Equal(t, starlark.Bool(true), ParseArg("true"))
	assert.Equal(t, starlark.Bool(false), ParseArg("False"))
	assert.Equal(t, starlark.String("wire"), ParseArg("wire"))
}
