package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
)

// NewParamsCommand creates the params command group.
func NewParamsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Manage geometric parameters",
		Long:  `Set and list the named geometric parameters of the model document.`,
	}

	cmd.AddCommand(newParamsSetCommand())
	cmd.AddCommand(newParamsListCommand())

	return cmd
}

func newParamsSetCommand() *cobra.Command {
	var namesFlag string
	var valuesFlag string

	cmd := &cobra.Command{
		Use:   "set [name=value ...]",
		Short: "Set geometric parameters",
		Long: `Set one or more geometric parameters on the model document.

Parameters are given either as name=value arguments or as parallel
comma-separated lists via --names and --values. The two lists must have
the same length.`,
		Example: `  # Positional form
  qmod params set gate_gap=50 wire_width=12.5

  # Parallel list form
  qmod params set --names "A,B" --values "1.0,2.0"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			params, err := collectParams(args, namesFlag, valuesFlag)
			if err != nil {
				return err
			}
			if len(params) == 0 {
				return fmt.Errorf("no parameters given")
			}

			doc, err := c.loadOrInitModel()
			if err != nil {
				return err
			}
			for _, p := range params {
				doc.SetParam(p.name, p.value)
				c.Logger.Debug("set parameter", "name", p.name, "value", p.value)
			}
			if err := doc.Save(c.Cfg.ModelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}

			c.Renderer.Success(fmt.Sprintf("set %d parameter(s)", len(params)))
			return nil
		},
	}

	cmd.Flags().StringVar(&namesFlag, "names", "", "Comma-separated parameter names")
	cmd.Flags().StringVar(&valuesFlag, "values", "", "Comma-separated parameter values")

	return cmd
}

func newParamsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List geometric parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			doc, err := c.loadModel()
			if err != nil {
				return err
			}

			pairs := spreadsheet.Params(doc)
			mode := string(c.Renderer.EffectiveMode())
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"parameter", "value"}, pairs)
		},
	}
}

type param struct {
	name  string
	value float64
}

// collectParams merges the positional name=value form with the parallel
// --names/--values form.
func collectParams(args []string, namesFlag, valuesFlag string) ([]param, error) {
	var params []param

	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q (expected name=value)", arg)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: invalid number %q", name, raw)
		}
		params = append(params, param{name: strings.TrimSpace(name), value: v})
	}

	if namesFlag == "" && valuesFlag == "" {
		return params, nil
	}
	if namesFlag == "" || valuesFlag == "" {
		return nil, fmt.Errorf("--names and --values must be given together")
	}

	names := parseNameList(namesFlag)
	values, err := parseFloatList(valuesFlag)
	if err != nil {
		return nil, err
	}
	if len(names) != len(values) {
		return nil, fmt.Errorf("got %d names but %d values", len(names), len(values))
	}
	for i, name := range names {
		params = append(params, param{name: name, value: values[i]})
	}
	return params, nil
}
