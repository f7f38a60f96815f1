package commands

import (
	"errors"

	"github.com/spf13/cobra"
	"go.starlark.net/starlark"

	"github.com/qmod-labs/qmod/internal/host"
	"github.com/qmod-labs/qmod/internal/macro"
	qstarlark "github.com/qmod-labs/qmod/internal/starlark"
	"github.com/qmod-labs/qmod/internal/state"
)

// NewMacroCommand creates the macro command group.
func NewMacroCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "macro",
		Short: "Run Starlark macros",
		Long: `Run Starlark macros from the macros directory.

Each .star file becomes a namespace named after the file; its top-level
functions are callable as namespace.function. Macros see the model,
host and material modules of the current session.`,
	}

	cmd.AddCommand(newMacroRunCommand())
	cmd.AddCommand(newMacroListCommand())

	return cmd
}

func newMacroRunCommand() *cobra.Command {
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "run <namespace.function> [arg ...]",
		Short: "Run a macro",
		Long: `Run a macro function with the given arguments.

Arguments are parsed as Starlark literals: integers, floats and booleans
are converted, everything else is passed as a string. The invocation is
recorded in the run history unless --no-history is set.`,
		Example: `  qmod macro run example.double_gap
  qmod macro run tune.set_gates -0.25 0.5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			ref := args[0]

			runner, session, err := c.newRunner(cmd)
			if err != nil {
				return err
			}

			sargs := make([]starlark.Value, 0, len(args)-1)
			for _, a := range args[1:] {
				sargs = append(sargs, qstarlark.ParseArg(a))
			}

			// Record the invocation
			var store *state.SQLiteStore
			var runID string
			if !noHistory {
				store, err = c.openStore()
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				run, err := store.CreateRun(ref, args[1:], c.Cfg.ModelPath)
				if err != nil {
					return err
				}
				runID = run.ID
			}

			result, runErr := runner.Run(ref, sargs)

			if store != nil {
				status := state.RunStatusCompleted
				errMsg := ""
				if runErr != nil {
					status = state.RunStatusFailed
					errMsg = runErr.Error()
				}
				if err := store.CompleteRun(runID, status, errMsg); err != nil {
					c.Logger.Warn("failed to record run completion", "error", err)
				}
			}
			if runErr != nil {
				return runErr
			}

			// Persist host mutations; the model is saved by the macro
			// itself via model.save().
			if session.Host != nil {
				if mem, ok := session.Host.(*host.MemDocument); ok {
					if err := mem.SaveFile(c.Cfg.GeometryPath); err != nil {
						return err
					}
				}
			}

			if result != nil && result != starlark.None {
				c.Renderer.Println(result.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in the history")

	return cmd
}

func newMacroListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available macros",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			runner, _, err := c.newRunner(cmd)
			if err != nil {
				return err
			}

			infos := runner.List()
			if len(infos) == 0 {
				c.Renderer.Println("no macros found in " + c.Cfg.MacrosDir)
				return nil
			}
			for _, info := range infos {
				c.Renderer.Println(info.Ref())
			}
			return nil
		},
	}
}

// newRunner assembles a macro runner over a fresh session: the model
// document, the geometry host when the geometry file exists, and the
// materials database.
func (c *CommandContext) newRunner(cmd *cobra.Command) (*macro.Runner, *qstarlark.Session, error) {
	if err := c.Cfg.ValidateMacrosDir(); err != nil {
		return nil, nil, err
	}

	doc, err := c.loadModel()
	if err != nil {
		return nil, nil, err
	}
	materials, err := c.openMaterials()
	if err != nil {
		return nil, nil, err
	}

	session := &qstarlark.Session{
		Model:     doc,
		ModelPath: c.Cfg.ModelPath,
		Materials: materials,
		Log:       c.Logger,
	}

	// The geometry document is optional: macros that never touch the
	// host module run fine without one.
	geo, err := c.openGeometry()
	if err != nil {
		var nf *host.NotFoundError
		if !errors.As(err, &nf) {
			return nil, nil, err
		}
	} else {
		session.Host = geo
	}

	loader := macro.NewLoader(c.Cfg.MacrosDir, session.Predeclared())
	modules, err := loader.Load()
	if err != nil {
		return nil, nil, err
	}

	runner, err := macro.NewRunner(modules, cmd.OutOrStdout())
	if err != nil {
		return nil, nil, err
	}
	return runner, session, nil
}
