package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
	"github.com/qmod-labs/qmod/pkg/model"
)

// NewPartCommand creates the part command group.
func NewPartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "part",
		Short: "Manage 3D part definitions",
		Long:  `Add and list the 3D parts built from 2D CAD objects.`,
	}

	cmd.AddCommand(newPartAddCommand())
	cmd.AddCommand(newPartListCommand())

	return cmd
}

func newPartAddCommand() *cobra.Command {
	var (
		fcName     string
		directive  string
		domainType string
		materialN  string
		z0         float64
		thickness  float64
		targetWire string
		depoZone   string
		etchZone   string
		layerNum   int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a 3D part",
		Long: `Add a 3D part definition to the model document and append it to the
build order.

The directive selects the build operation (extrude, wire, wireShell, SAG
or lithography) and the domain type classifies the part for the physics
solver (semiconductor, metalGate, virtual or dielectric).`,
		Example: `  qmod part add substrate --fc-name substrate_sketch --directive extrude \
      --domain semiconductor --material InAs --z0 -2 --thickness 2

  qmod part add shell --fc-name shell_sketch --directive wireShell \
      --domain metalGate --material Al --target-wire nanowire`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			name := args[0]

			part := &model.Part{
				FCName:     fcName,
				Directive:  directive,
				DomainType: domainType,
				Material:   materialN,
				TargetWire: targetWire,
				DepoZone:   depoZone,
				EtchZone:   etchZone,
				LayerNum:   layerNum,
			}
			if cmd.Flags().Changed("z0") {
				part.Z0 = &z0
			}
			if cmd.Flags().Changed("thickness") {
				part.Thickness = &thickness
			}

			// Material names must resolve against the database before
			// they are committed to the document.
			if part.Material != "" {
				db, err := c.openMaterials()
				if err != nil {
					return err
				}
				if _, err := db.Find(part.Material); err != nil {
					return fmt.Errorf("part %s: %w", name, err)
				}
			}

			doc, err := c.loadOrInitModel()
			if err != nil {
				return err
			}
			if err := doc.AddPart(name, part); err != nil {
				return err
			}
			if err := doc.Save(c.Cfg.ModelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}

			c.Renderer.Success(fmt.Sprintf("added part %s (%s)", name, part.Directive))
			return nil
		},
	}

	cmd.Flags().StringVar(&fcName, "fc-name", "", "2D CAD object the part is built from")
	cmd.Flags().StringVar(&directive, "directive", model.DirectiveExtrude, "Build directive (extrude|wire|wireShell|SAG|lithography)")
	cmd.Flags().StringVar(&domainType, "domain", model.DomainSemiconductor, "Domain type (semiconductor|metalGate|virtual|dielectric)")
	cmd.Flags().StringVar(&materialN, "material", "", "Material name from the materials database")
	cmd.Flags().Float64Var(&z0, "z0", 0, "Base z coordinate")
	cmd.Flags().Float64Var(&thickness, "thickness", 0, "Extrusion thickness")
	cmd.Flags().StringVar(&targetWire, "target-wire", "", "Wire part a wireShell wraps")
	cmd.Flags().StringVar(&depoZone, "depo-zone", "", "Deposition zone CAD object")
	cmd.Flags().StringVar(&etchZone, "etch-zone", "", "Etch zone CAD object")
	cmd.Flags().IntVar(&layerNum, "layer-num", 0, "Lithography layer number")
	_ = cmd.MarkFlagRequired("fc-name")

	return cmd
}

func newPartListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List 3D parts in build order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			doc, err := c.loadModel()
			if err != nil {
				return err
			}

			pairs := make([]spreadsheet.Pair, 0, len(doc.BuildOrder))
			for _, name := range doc.BuildOrder {
				part, ok := doc.Parts[name]
				if !ok {
					continue
				}
				desc := part.Directive + "/" + part.DomainType
				if part.Material != "" {
					desc += " " + part.Material
				}
				pairs = append(pairs, spreadsheet.Pair{Name: name, Value: desc})
			}

			mode := string(c.Renderer.EffectiveMode())
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"part", "build"}, pairs)
		},
	}
}
