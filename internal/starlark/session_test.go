package starlark

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.starlark.net/starlark"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/pkg/material"
	"github.com/qmod-labs/qmod/pkg/model"
)

func evalScript(t *testing.T, s *Session, script string) starlark.StringDict {
	t.Helper()
	thread := &starlark.Thread{Name: "test"}
	globals, err := starlark.ExecFile(thread, "test.star", script, s.Predeclared())
	require.NoError(t, err)
	return globals
}

func evalScriptErr(t *testing.T, s *Session, script string) error {
	t.Helper()
	thread := &starlark.Thread{Name: "test"}
	_, err := starlark.ExecFile(thread, "test.star", script, s.Predeclared())
	require.Error(t, err)
	return err
}

func TestModelBuiltins(t *testing.T) {
	s := &Session{Model: model.New()}
	s.Model.SetParam("width", 10)

	globals := evalScript(t, s, `
model.set_param("gateLength", 50.0)
model.set_param("count", 3)
doubled = model.param("width") * 2
all = model.params()
`)

	v, ok := s.Model.Param("gateLength")
	require.True(t, ok)
	assert.Equal(t, 50.0, v)

	// Integer arguments are accepted for numeric parameters.
	v, ok = s.Model.Param("count")
	require.True(t, ok)
	assert.Equal(t, 3.0, v)

	assert.Equal(t, starlark.Float(20), globals["doubled"])
	all := globals["all"].(*starlark.Dict)
	assert.Equal(t, 3, all.Len())
}

func TestParamMissing(t *testing.T) {
	s := &Session{Model: model.New()}
	err := evalScriptErr(t, s, `model.param("ghost")`)
	assert.Contains(t, err.Error(), `no parameter "ghost"`)
}

func TestObjectBuiltins(t *testing.T) {
	s := &Session{Model: model.New()}

	evalScript(t, s, `
model.set_object("vacuum", label="vacuum", type="background", physics={"relativePermittivity": 1.0})
`)
	info, ok := s.Model.Object("vacuum")
	require.True(t, ok)
	assert.Equal(t, model.ObjectBackground, info.Type)
	assert.Equal(t, 1.0, info.Physics["relativePermittivity"])

	globals := evalScript(t, s, `obj = model.object("vacuum")`)
	obj := globals["obj"].(*starlark.Dict)
	label, found, err := obj.Get(starlark.String("label"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, starlark.String("vacuum"), label)

	err = evalScriptErr(t, s, `model.set_object("bad", label="x", type="nonsense")`)
	assert.Contains(t, err.Error(), "nonsense")
}

func TestSaveBuiltin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.json")
	s := &Session{Model: model.New(), ModelPath: path}

	evalScript(t, s, `
model.set_param("width", 10.0)
model.save()
`)

	loaded, err := model.Load(path)
	require.NoError(t, err)
	v, ok := loaded.Param("width")
	require.True(t, ok)
	assert.Equal(t, 10.0, v)
}

func TestSaveWithoutPath(t *testing.T) {
	s := &Session{Model: model.New()}
	err := evalScriptErr(t, s, `model.save()`)
	assert.Contains(t, err.Error(), "no model path")
}

func TestHostBuiltins(t *testing.T) {
	hd := host.NewMemDocument()
	_, err := hd.AddBox("mask", "mask", host.Box{MaxX: 10, MaxY: 10, MaxZ: 10})
	require.NoError(t, err)
	_, err = hd.AddBox("wire", "wire", host.Box{MinX: 1, MinY: 1, MinZ: 1, MaxX: 2, MaxY: 2, MaxZ: 2})
	require.NoError(t, err)
	_, err = hd.AddBox("stray", "stray", host.Box{MinX: 20, MinY: 20, MinZ: 20, MaxX: 21, MaxY: 21, MaxZ: 21})
	require.NoError(t, err)

	s := &Session{Model: model.New(), Host: hd}

	globals := evalScript(t, s, `
names = host.objects()
result = host.prune("mask")
removed = result["removed"]
`)

	names := globals["names"].(*starlark.List)
	assert.Equal(t, 3, names.Len())

	removed := globals["removed"].(*starlark.List)
	require.Equal(t, 1, removed.Len())
	assert.Equal(t, starlark.String("stray"), removed.Index(0))

	_, ok := hd.Object("wire_masked")
	assert.True(t, ok)
}

func TestHostBuiltinsWithoutHost(t *testing.T) {
	s := &Session{Model: model.New()}
	err := evalScriptErr(t, s, `host.objects()`)
	assert.Contains(t, err.Error(), "no host document")
}

func TestMirrorParamsBuiltin(t *testing.T) {
	hd := host.NewMemDocument()
	s := &Session{Model: model.New(), Host: hd}
	s.Model.SetParam("width", 10)

	evalScript(t, s, `host.mirror_params()`)

	v, ok := hd.Spreadsheet("modelParams").Get("A2")
	require.True(t, ok)
	assert.Equal(t, "width", v)
}

func TestMaterialBuiltins(t *testing.T) {
	s := &Session{Model: model.New(), Materials: material.Builtin()}

	globals := evalScript(t, s, `
gap = material.get("InAs", "directBandGap")
names = material.names()
`)
	assert.Equal(t, starlark.Float(417), globals["gap"])
	names := globals["names"].(*starlark.List)
	assert.Greater(t, names.Len(), 10)

	err := evalScriptErr(t, s, `material.get("unobtainium", "directBandGap")`)
	assert.Contains(t, err.Error(), "unobtainium")
}
