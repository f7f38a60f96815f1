package starlark

import (
	"fmt"
	"log/slog"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/internal/spreadsheet"
	"github.com/qmod-labs/qmod/pkg/material"
	"github.com/qmod-labs/qmod/pkg/model"
)

// Session is the set of handles a macro runs against: the in-memory model
// document, the path it persists to, the CAD host document and the materials
// database. Sessions are single-threaded and synchronous.
type Session struct {
	Model     *model.Document
	ModelPath string
	Host      host.Document
	Materials *material.Database
	Log       *slog.Logger
}

// Predeclared returns the globals exposed to macro scripts: the "model",
// "host" and "material" modules.
func (s *Session) Predeclared() starlark.StringDict {
	return starlark.StringDict{
		"model": starlarkstruct.FromStringDict(starlark.String("model"), starlark.StringDict{
			"param":      starlark.NewBuiltin("model.param", s.param),
			"set_param":  starlark.NewBuiltin("model.set_param", s.setParam),
			"params":     starlark.NewBuiltin("model.params", s.params),
			"object":     starlark.NewBuiltin("model.object", s.object),
			"set_object": starlark.NewBuiltin("model.set_object", s.setObject),
			"save":       starlark.NewBuiltin("model.save", s.save),
		}),
		"host": starlarkstruct.FromStringDict(starlark.String("host"), starlark.StringDict{
			"objects":       starlark.NewBuiltin("host.objects", s.objects),
			"prune":         starlark.NewBuiltin("host.prune", s.prune),
			"mirror_params": starlark.NewBuiltin("host.mirror_params", s.mirrorParams),
		}),
		"material": starlarkstruct.FromStringDict(starlark.String("material"), starlark.StringDict{
			"get":   starlark.NewBuiltin("material.get", s.materialGet),
			"names": starlark.NewBuiltin("material.names", s.materialNames),
		}),
	}
}

func (s *Session) param(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name); err != nil {
		return nil, err
	}
	value, ok := s.Model.Param(name)
	if !ok {
		return nil, fmt.Errorf("%s: no parameter %q", fn.Name(), name)
	}
	return starlark.Float(value), nil
}

func (s *Session) setParam(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var value starlark.Value
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "value", &value); err != nil {
		return nil, err
	}
	f, err := toFloat(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	s.Model.SetParam(name, f)
	if s.Log != nil {
		s.Log.Debug("macro set parameter", "name", name, "value", f)
	}
	return starlark.None, nil
}

func (s *Session) params(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	return GoToStarlark(s.Model.GeometricParams)
}

func (s *Session) object(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "id", &id); err != nil {
		return nil, err
	}
	info, ok := s.Model.Object(id)
	if !ok {
		return nil, fmt.Errorf("%s: no object %q", fn.Name(), id)
	}
	return GoToStarlark(map[string]any{
		"label":   info.Label,
		"type":    info.Type,
		"physics": info.Physics,
	})
}

func (s *Session) setObject(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id, label, typeTag string
	var physics *starlark.Dict
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"id", &id, "label", &label, "type", &typeTag, "physics?", &physics); err != nil {
		return nil, err
	}

	info := model.ObjectInfo{Label: label, Type: typeTag}
	if physics != nil {
		props, err := ToGo(physics)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn.Name(), err)
		}
		info.Physics = props.(map[string]any)
	}
	if err := s.Model.SetObject(id, info); err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.None, nil
}

func (s *Session) save(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if s.ModelPath == "" {
		return nil, fmt.Errorf("%s: session has no model path", fn.Name())
	}
	if err := s.Model.Save(s.ModelPath); err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	if s.Log != nil {
		s.Log.Debug("macro saved model", "path", s.ModelPath)
	}
	return starlark.None, nil
}

func (s *Session) objects(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if s.Host == nil {
		return nil, fmt.Errorf("%s: session has no host document", fn.Name())
	}
	return GoToStarlark(s.Host.Names())
}

func (s *Session) prune(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var mask string
	var candidates *starlark.List
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "mask", &mask, "candidates?", &candidates); err != nil {
		return nil, err
	}
	if s.Host == nil {
		return nil, fmt.Errorf("%s: session has no host document", fn.Name())
	}

	var names []string
	if candidates == nil {
		for _, name := range s.Host.Names() {
			if name != mask {
				names = append(names, name)
			}
		}
	} else {
		for i := 0; i < candidates.Len(); i++ {
			str, ok := starlark.AsString(candidates.Index(i))
			if !ok {
				return nil, fmt.Errorf("%s: candidate %d is not a string", fn.Name(), i)
			}
			names = append(names, str)
		}
	}

	result, err := host.PruneByMask(s.Host, mask, names)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	if s.Log != nil {
		s.Log.Info("macro pruned objects", "mask", mask, "kept", len(result.Kept), "removed", len(result.Removed))
	}

	kept := make(map[string]any, len(result.Kept))
	for name, inter := range result.Kept {
		kept[name] = inter
	}
	return GoToStarlark(map[string]any{
		"kept":    kept,
		"removed": result.Removed,
	})
}

func (s *Session) mirrorParams(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	sheet := "modelParams"
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "sheet?", &sheet); err != nil {
		return nil, err
	}
	if s.Host == nil {
		return nil, fmt.Errorf("%s: session has no host document", fn.Name())
	}
	if err := spreadsheet.MirrorParams(s.Model, s.Host, sheet); err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.None, nil
}

func (s *Session) materialGet(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name, prop string
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "property", &prop); err != nil {
		return nil, err
	}
	if s.Materials == nil {
		return nil, fmt.Errorf("%s: session has no materials database", fn.Name())
	}
	m, err := s.Materials.Find(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	value, err := m.Get(prop)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn.Name(), err)
	}
	return starlark.Float(value), nil
}

func (s *Session) materialNames(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs); err != nil {
		return nil, err
	}
	if s.Materials == nil {
		return nil, fmt.Errorf("%s: session has no materials database", fn.Name())
	}
	return GoToStarlark(s.Materials.Names())
}
