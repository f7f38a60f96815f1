package macro

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.starlark.net/starlark"
)

// Info describes one callable macro export.
type Info struct {
	Namespace string
	Name      string
	Path      string
}

// Ref returns the namespace-qualified name used to invoke the macro.
func (i Info) Ref() string {
	return i.Namespace + "." + i.Name
}

// Runner indexes loaded macro modules and invokes their exported functions.
type Runner struct {
	modules map[string]*LoadedModule

	// out receives macro print() output.
	out io.Writer
}

// NewRunner builds a runner over the given modules. Macro print() output is
// written to out; pass io.Discard to silence it.
func NewRunner(modules []*LoadedModule, out io.Writer) (*Runner, error) {
	index := make(map[string]*LoadedModule, len(modules))
	for _, mod := range modules {
		if _, ok := index[mod.Namespace]; ok {
			return nil, fmt.Errorf("duplicate macro namespace %q", mod.Namespace)
		}
		index[mod.Namespace] = mod
	}
	return &Runner{modules: index, out: out}, nil
}

// List returns every callable export, sorted by namespace then name.
func (r *Runner) List() []Info {
	var infos []Info
	for _, mod := range r.modules {
		for name, value := range mod.Exports {
			if _, ok := value.(starlark.Callable); !ok {
				continue
			}
			infos = append(infos, Info{Namespace: mod.Namespace, Name: name, Path: mod.Path})
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Namespace != infos[j].Namespace {
			return infos[i].Namespace < infos[j].Namespace
		}
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Run invokes a macro by its namespace-qualified reference, e.g.
// "prune.by_mask", passing args positionally. The macro's return value is
// handed back as-is.
func (r *Runner) Run(ref string, args []starlark.Value) (starlark.Value, error) {
	namespace, name, ok := strings.Cut(ref, ".")
	if !ok {
		return nil, fmt.Errorf("macro reference %q must be namespace.function", ref)
	}

	mod, ok := r.modules[namespace]
	if !ok {
		return nil, fmt.Errorf("no macro namespace %q", namespace)
	}
	value, ok := mod.Exports[name]
	if !ok {
		return nil, fmt.Errorf("macro namespace %q has no export %q", namespace, name)
	}
	fn, ok := value.(starlark.Callable)
	if !ok {
		return nil, fmt.Errorf("macro %q is not callable", ref)
	}

	thread := &starlark.Thread{
		Name: "macro:" + ref,
		Print: func(_ *starlark.Thread, msg string) {
			if r.out != nil {
				fmt.Fprintln(r.out, msg)
			}
		},
	}

	result, err := starlark.Call(thread, fn, starlark.Tuple(args), nil)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("macro %s: %s", ref, evalErr.Backtrace())
		}
		return nil, fmt.Errorf("macro %s: %w", ref, err)
	}
	return result, nil
}
