package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/pkg/model"
)

// NewSweepCommand creates the sweep command group.
func NewSweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Record parameter sweeps",
		Long: `Record geometric and physics sweeps on the model document.

A geometric sweep varies one geometric parameter over a list of values.
A physics sweep varies a per-part quantity such as a gate voltage; all
sparse sweep quantities must supply the same number of values.`,
	}

	cmd.AddCommand(newSweepGeomCommand())
	cmd.AddCommand(newSweepPhysicsCommand())

	return cmd
}

func newSweepGeomCommand() *cobra.Command {
	var sweepType string

	cmd := &cobra.Command{
		Use:     "geom <param> <values>",
		Short:   "Record a geometric parameter sweep",
		Example: `  qmod sweep geom gate_gap "40,50,60"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			values, err := parseFloatList(args[1])
			if err != nil {
				return err
			}

			doc, err := c.loadModel()
			if err != nil {
				return err
			}
			// CAD-varied parameters must already exist; script-declared
			// ones ("python") live outside the document.
			if sweepType == model.GeomSweepCAD {
				if _, ok := doc.Param(args[0]); !ok {
					return fmt.Errorf("no geometric parameter %q in model", args[0])
				}
			}
			if err := doc.SetGeomSweep(args[0], values, sweepType); err != nil {
				return err
			}
			if err := doc.Save(c.Cfg.ModelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}

			c.Renderer.Success(fmt.Sprintf("sweep %s over %d values", args[0], len(values)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sweepType, "type", model.GeomSweepCAD, "Parameter kind (freeCAD|python)")

	return cmd
}

func newSweepPhysicsCommand() *cobra.Command {
	var (
		quantity string
		unit     string
		symbol   string
		dense    bool
	)

	cmd := &cobra.Command{
		Use:     "physics <part> <values>",
		Short:   "Record a physics sweep over a part quantity",
		Example: `  qmod sweep physics gate1 "-0.5,0,0.5" --quantity voltage --unit V --symbol Vg1`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			values, err := parseFloatList(args[1])
			if err != nil {
				return err
			}

			doc, err := c.loadModel()
			if err != nil {
				return err
			}
			if err := doc.SetPhysicsSweep(args[0], quantity, values, unit, symbol, dense); err != nil {
				return err
			}
			if err := doc.Save(c.Cfg.ModelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}

			c.Renderer.Success(fmt.Sprintf("sweep %s.%s over %d values", args[0], quantity, len(values)))
			return nil
		},
	}

	cmd.Flags().StringVar(&quantity, "quantity", "voltage", "Swept quantity")
	cmd.Flags().StringVar(&unit, "unit", "V", "Unit of the swept values")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Short symbol for plots (default: the quantity)")
	cmd.Flags().BoolVar(&dense, "dense", false, "Take the outer product with existing sweep quantities")

	return cmd
}
