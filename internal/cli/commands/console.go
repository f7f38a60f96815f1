package commands

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/internal/spreadsheet"
	qstarlark "github.com/qmod-labs/qmod/internal/starlark"
)

// NewConsoleCommand creates the console command.
func NewConsoleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "console",
		Short: "Interactive model console",
		Long: `Start an interactive console over the current session.

Input is evaluated as Starlark against the model, host and material
modules. Dot-commands provide shortcuts:

  .params            list geometric parameters
  .objects           list CAD object descriptors
  .set <name> <val>  set a geometric parameter
  .save              save the model document
  .help              show this help
  .quit              exit`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)
			return runConsole(cmd, c)
		},
	}
}

func runConsole(cmd *cobra.Command, c *CommandContext) error {
	doc, err := c.loadOrInitModel()
	if err != nil {
		return err
	}
	materials, err := c.openMaterials()
	if err != nil {
		return err
	}

	session := &qstarlark.Session{
		Model:     doc,
		ModelPath: c.Cfg.ModelPath,
		Materials: materials,
		Log:       c.Logger,
	}
	if geo, err := c.openGeometry(); err == nil {
		session.Host = geo
	} else {
		var nf *host.NotFoundError
		if !errors.As(err, &nf) {
			return err
		}
	}

	// Setup history file (project-local)
	historyFile := filepath.Join(filepath.Dir(c.Cfg.StatePath), "console_history")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "qmod> ",
		HistoryFile:     historyFile,
		AutoComplete:    newConsoleCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize console: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "qmod console (model: %s)\n", c.Cfg.ModelPath)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	// One shared globals dict so definitions persist across inputs
	globals := starlark.StringDict{}
	for name, v := range session.Predeclared() {
		globals[name] = v
	}
	thread := &starlark.Thread{
		Name: "console",
		Print: func(_ *starlark.Thread, msg string) {
			_, _ = fmt.Fprintln(out, msg)
		},
	}

	// REPL loop
	var blockBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			blockBuffer.Reset()
			rl.SetPrompt("qmod> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		// Accumulating a block: blank line terminates it
		if blockBuffer.Len() > 0 {
			if strings.TrimSpace(line) == "" {
				src := blockBuffer.String()
				blockBuffer.Reset()
				rl.SetPrompt("qmod> ")
				evalConsoleInput(cmd, thread, globals, src)
				continue
			}
			blockBuffer.WriteString(line)
			blockBuffer.WriteString("\n")
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(trimmed, ".") {
			quit, err := handleConsoleDotCommand(cmd, c, session, trimmed)
			if err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			if quit {
				break
			}
			continue
		}

		// Lines opening a suite (def, if, for) start a block closed by a
		// blank line
		if strings.HasSuffix(trimmed, ":") {
			blockBuffer.WriteString(line)
			blockBuffer.WriteString("\n")
			rl.SetPrompt("  ...> ")
			continue
		}

		evalConsoleInput(cmd, thread, globals, line)
	}

	return nil
}

// evalConsoleInput evaluates one console input: expressions print their
// value, anything else runs as statements against the shared globals.
func evalConsoleInput(cmd *cobra.Command, thread *starlark.Thread, globals starlark.StringDict, src string) {
	if v, err := starlark.Eval(thread, "<console>", src, globals); err == nil {
		if v != starlark.None {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), v.String())
		}
		return
	}

	newGlobals, err := starlark.ExecFile(thread, "<console>", src, globals)
	if err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", evalErr.Backtrace())
		} else {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return
	}
	for name, v := range newGlobals {
		globals[name] = v
	}
}

// handleConsoleDotCommand runs one dot-command. The first return value
// reports whether the console should exit.
func handleConsoleDotCommand(cmd *cobra.Command, c *CommandContext, session *qstarlark.Session, line string) (bool, error) {
	parts := strings.Fields(line)
	out := cmd.OutOrStdout()

	switch strings.ToLower(parts[0]) {
	case ".quit", ".exit":
		return true, nil

	case ".help":
		_, _ = fmt.Fprintln(out, "Dot-commands:")
		_, _ = fmt.Fprintln(out, "  .params            list geometric parameters")
		_, _ = fmt.Fprintln(out, "  .objects           list CAD object descriptors")
		_, _ = fmt.Fprintln(out, "  .set <name> <val>  set a geometric parameter")
		_, _ = fmt.Fprintln(out, "  .save              save the model document")
		_, _ = fmt.Fprintln(out, "  .quit              exit")
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, "Everything else is evaluated as Starlark, e.g.:")
		_, _ = fmt.Fprintln(out, "  model.param(\"gate_gap\")")
		_, _ = fmt.Fprintln(out, "  host.prune(mask=\"mask\")")
		_, _ = fmt.Fprintln(out, "  material.get(\"InAs\", \"directBandGap\")")
		return false, nil

	case ".params":
		pairs := spreadsheet.Params(session.Model)
		return false, spreadsheet.Render(out, "table", [2]string{"parameter", "value"}, pairs)

	case ".objects":
		ids := make([]string, 0, len(session.Model.FreeCADInfo))
		for id := range session.Model.FreeCADInfo {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for _, id := range ids {
			info := session.Model.FreeCADInfo[id]
			_, _ = fmt.Fprintf(out, "%s\t%s (%s)\n", id, info.Type, info.Label)
		}
		return false, nil

	case ".set":
		if len(parts) != 3 {
			return false, fmt.Errorf("usage: .set <name> <value>")
		}
		v, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return false, fmt.Errorf("invalid value %q", parts[2])
		}
		session.Model.SetParam(parts[1], v)
		return false, nil

	case ".save":
		if err := session.Model.Save(c.Cfg.ModelPath); err != nil {
			return false, err
		}
		if mem, ok := session.Host.(*host.MemDocument); ok {
			if err := mem.SaveFile(c.Cfg.GeometryPath); err != nil {
				return false, err
			}
		}
		_, _ = fmt.Fprintln(out, "saved")
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s (try .help)", parts[0])
	}
}

// newConsoleCompleter completes dot-commands and session module names.
func newConsoleCompleter() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".params"),
		readline.PcItem(".objects"),
		readline.PcItem(".set"),
		readline.PcItem(".save"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
		readline.PcItem("model."),
		readline.PcItem("host."),
		readline.PcItem("material."),
	)
}
