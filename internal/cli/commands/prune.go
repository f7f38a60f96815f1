package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/host"
)

// NewPruneCommand creates the prune command.
func NewPruneCommand() *cobra.Command {
	var candidatesFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "prune <mask>",
		Short: "Prune geometry objects against a mask",
		Long: `Intersect candidate objects with a mask object and keep only the
overlapping material.

Candidates that do not overlap the mask are removed. Candidates that do
overlap are replaced by their intersection with the mask; the
intersection inherits the candidate's name as its label. The mask itself
is left in place.

By default every object except the mask is a candidate; --candidates
restricts the set. Model document descriptors follow the surviving
objects: removed candidates lose their descriptor and kept ones are
re-keyed to the intersection object.`,
		Example: `  qmod prune mask
  qmod prune mask --candidates "wire,gate1,gate2"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)
			mask := args[0]

			geo, err := c.openGeometry()
			if err != nil {
				return err
			}

			var candidates []string
			if candidatesFlag != "" {
				candidates = parseNameList(candidatesFlag)
			} else {
				for _, name := range geo.Names() {
					if name != mask {
						candidates = append(candidates, name)
					}
				}
			}

			result, err := host.PruneByMask(geo, mask, candidates)
			if err != nil {
				return err
			}

			for _, name := range result.Removed {
				c.Renderer.Printf("removed %s\n", name)
			}
			for label, name := range result.Kept {
				c.Renderer.Printf("kept %s as %s\n", label, name)
			}

			if dryRun {
				c.Renderer.Warning("dry run, nothing written")
				return nil
			}

			if err := geo.SaveFile(c.Cfg.GeometryPath); err != nil {
				return err
			}

			// Keep the model document's object descriptors in step with
			// the surviving geometry.
			doc, err := c.loadOrInitModel()
			if err != nil {
				return err
			}
			changed := false
			for _, name := range result.Removed {
				if _, ok := doc.Object(name); ok {
					delete(doc.FreeCADInfo, name)
					changed = true
				}
			}
			for label, name := range result.Kept {
				if info, ok := doc.Object(label); ok && label != name {
					delete(doc.FreeCADInfo, label)
					if err := doc.SetObject(name, info); err != nil {
						return err
					}
					changed = true
				}
			}
			if changed {
				if err := doc.Save(c.Cfg.ModelPath); err != nil {
					return fmt.Errorf("save model: %w", err)
				}
			}

			c.Renderer.Success(fmt.Sprintf("kept %d, removed %d", len(result.Kept), len(result.Removed)))
			return nil
		},
	}

	cmd.Flags().StringVar(&candidatesFlag, "candidates", "", "Comma-separated candidate objects (default: all except the mask)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without writing")

	return cmd
}
