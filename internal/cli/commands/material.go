package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
	"github.com/qmod-labs/qmod/pkg/material"
)

// NewMaterialCommand creates the material command group.
func NewMaterialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Query the materials database",
		Long: `Query the materials database used for part assignments.

Without --materials the built-in database of common III-V semiconductors
and metals is used. Band energies are reported in the configured energy
unit (meV by default).`,
	}

	cmd.AddCommand(newMaterialShowCommand())
	cmd.AddCommand(newMaterialListCommand())
	cmd.AddCommand(newMaterialInterpCommand())

	return cmd
}

func newMaterialShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show the properties of a material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			db, err := c.openMaterials()
			if err != nil {
				return err
			}
			m, err := db.FindWithUnit(args[0], c.Cfg.EnergyUnit)
			if err != nil {
				return err
			}

			mode := string(c.Renderer.EffectiveMode())
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"property", "value"}, materialPairs(m))
		},
	}
}

func newMaterialListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered materials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			db, err := c.openMaterials()
			if err != nil {
				return err
			}

			names := db.Names()
			pairs := make([]spreadsheet.Pair, 0, len(names))
			for _, name := range names {
				m, err := db.Find(name)
				if err != nil {
					return err
				}
				pairs = append(pairs, spreadsheet.Pair{Name: name, Value: string(m.Kind())})
			}

			mode := string(c.Renderer.EffectiveMode())
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"material", "type"}, pairs)
		},
	}
}

func newMaterialInterpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "interp <alloy>",
		Short: "Interpolate a binary alloy",
		Long: `Synthesize a binary alloy from two registered endpoint materials.

The alloy name carries the composition, e.g. In0.75Ga0.25As interpolates
between InAs and GaAs at x = 0.25 with the registered bowing correction.`,
		Example: `  qmod material interp In0.75Ga0.25As
  qmod material interp InAs0.5Sb0.5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			db, err := c.openMaterials()
			if err != nil {
				return err
			}
			if db.Has(args[0]) {
				return fmt.Errorf("%s is a registered material, not an alloy", args[0])
			}
			m, err := db.FindWithUnit(args[0], c.Cfg.EnergyUnit)
			if err != nil {
				return err
			}

			mode := string(c.Renderer.EffectiveMode())
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"property", "value"}, materialPairs(m))
		},
	}
}

// materialPairs flattens a material into sorted name/value pairs with the
// kind first.
func materialPairs(m *material.Material) []spreadsheet.Pair {
	raw := m.Raw()
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]spreadsheet.Pair, 0, len(keys)+1)
	pairs = append(pairs, spreadsheet.Pair{Name: "type", Value: string(m.Kind())})
	for _, k := range keys {
		// Get applies the configured energy unit to band energies.
		pairs = append(pairs, spreadsheet.Pair{Name: k, Value: m.MustGet(k)})
	}
	return pairs
}
