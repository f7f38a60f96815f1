package spreadsheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/pkg/model"
)

func paramsFixture() *model.Document {
	doc := model.New()
	doc.SetParam("width", 10)
	doc.SetParam("gateLength", 50)
	return doc
}

func TestParamsOrdered(t *testing.T) {
	pairs := Params(paramsFixture())
	assert.Equal(t, []Pair{
		{Name: "gateLength", Value: 50.0},
		{Name: "width", Value: 10.0},
	}, pairs)
}

func TestObjectInfoOrdered(t *testing.T) {
	pairs := ObjectInfo(model.ObjectInfo{
		Label: "substrate",
		Type:  model.ObjectBackground,
		Physics: map[string]any{
			"material": "InAs",
			"doping":   1e18,
		},
	})
	assert.Equal(t, []Pair{
		{Name: "label", Value: "substrate"},
		{Name: "type", Value: model.ObjectBackground},
		{Name: "doping", Value: 1e18},
		{Name: "material", Value: "InAs"},
	}, pairs)
}

func TestRenderTable(t *testing.T) {
	var buf strings.Builder
	err := Render(&buf, "table", [2]string{"parameter", "value"}, Params(paramsFixture()))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "PARAMETER")
	assert.Contains(t, out, "gateLength")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf strings.Builder
	err := Render(&buf, "table", [2]string{"parameter", "value"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderJSON(t *testing.T) {
	var buf strings.Builder
	err := Render(&buf, "json", [2]string{"parameter", "value"}, Params(paramsFixture()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"gateLength": 50, "width": 10}`, buf.String())
}

func TestRenderCSV(t *testing.T) {
	var buf strings.Builder
	pairs := []Pair{{Name: "a,b", Value: `say "hi"`}}
	err := Render(&buf, "csv", [2]string{"parameter", "value"}, pairs)
	require.NoError(t, err)
	assert.Equal(t, "parameter,value\n\"a,b\",\"say \"\"hi\"\"\"\n", buf.String())
}

func TestRenderMarkdown(t *testing.T) {
	var buf strings.Builder
	err := Render(&buf, "md", [2]string{"parameter", "value"}, Params(paramsFixture()))
	require.NoError(t, err)
	assert.Equal(t,
		"| parameter | value |\n| --- | --- |\n| gateLength | 50 |\n| width | 10 |\n",
		buf.String())
}

func TestMirrorParams(t *testing.T) {
	doc := paramsFixture()
	hd := host.NewMemDocument()

	require.NoError(t, MirrorParams(doc, hd, "modelParams"))

	sheet := hd.Spreadsheet("modelParams")
	header, ok := sheet.Get("A1")
	require.True(t, ok)
	assert.Equal(t, "parameter", header)

	name, ok := sheet.Get("A2")
	require.True(t, ok)
	assert.Equal(t, "gateLength", name)
	value, ok := sheet.Get("B2")
	require.True(t, ok)
	assert.Equal(t, 50.0, value)

	name, ok = sheet.Get("A3")
	require.True(t, ok)
	assert.Equal(t, "width", name)

	assert.Equal(t, 1, hd.Recomputes())
}

func TestMirrorObjects(t *testing.T) {
	doc := model.New()
	require.NoError(t, doc.SetObject("vacuum", model.ObjectInfo{
		Label: "vacuum",
		Type:  model.ObjectBackground,
		Physics: map[string]any{
			"relativePermittivity": 1.0,
		},
	}))
	hd := host.NewMemDocument()

	require.NoError(t, MirrorObjects(doc, hd, "info_"))

	sheet := hd.Spreadsheet("info_vacuum")
	label, ok := sheet.Get("B2")
	require.True(t, ok)
	assert.Equal(t, "vacuum", label)
	prop, ok := sheet.Get("A4")
	require.True(t, ok)
	assert.Equal(t, "relativePermittivity", prop)
}
