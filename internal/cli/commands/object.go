package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
	"github.com/qmod-labs/qmod/pkg/model"
)

// NewObjectCommand creates the object command group.
func NewObjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "object",
		Short: "Manage CAD object descriptors",
		Long:  `Register and list the CAD object descriptors tracked by the model document.`,
	}

	cmd.AddCommand(newObjectSetCommand())
	cmd.AddCommand(newObjectListCommand())

	return cmd
}

func newObjectSetCommand() *cobra.Command {
	var label string
	var objType string

	cmd := &cobra.Command{
		Use:   "set <id> [physicsKey=value ...]",
		Short: "Register or update a CAD object descriptor",
		Long: `Register a CAD object descriptor under the given id.

The type tag must be one of background, domain or boundary. Extra
arguments become per-object physics properties; numeric values are
stored as numbers, everything else as strings.`,
		Example: `  qmod object set gate1 --label "Top gate" --type boundary voltage=0.3
  qmod object set vacuum --type background`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			id := args[0]
			info := model.ObjectInfo{Label: label, Type: objType}
			if info.Label == "" {
				info.Label = id
			}

			if len(args) > 1 {
				info.Physics = map[string]any{}
				for _, arg := range args[1:] {
					key, raw, ok := strings.Cut(arg, "=")
					if !ok || key == "" {
						return fmt.Errorf("invalid physics property %q (expected key=value)", arg)
					}
					if v, err := strconv.ParseFloat(raw, 64); err == nil {
						info.Physics[key] = v
					} else {
						info.Physics[key] = raw
					}
				}
			}

			doc, err := c.loadOrInitModel()
			if err != nil {
				return err
			}
			if err := doc.SetObject(id, info); err != nil {
				return err
			}
			if err := doc.Save(c.Cfg.ModelPath); err != nil {
				return fmt.Errorf("save model: %w", err)
			}

			c.Renderer.Success(fmt.Sprintf("registered object %s", id))
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "", "Human-readable object label (default: the id)")
	cmd.Flags().StringVar(&objType, "type", model.ObjectDomain, "Object type (background|domain|boundary)")

	return cmd
}

func newObjectListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [id]",
		Short: "List CAD object descriptors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := NewCommandContext(cmd)

			doc, err := c.loadModel()
			if err != nil {
				return err
			}

			mode := string(c.Renderer.EffectiveMode())

			// Single-object detail view
			if len(args) == 1 {
				info, ok := doc.Object(args[0])
				if !ok {
					return fmt.Errorf("no object %q in model", args[0])
				}
				pairs := spreadsheet.ObjectInfo(info)
				return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"property", "value"}, pairs)
			}

			ids := make([]string, 0, len(doc.FreeCADInfo))
			for id := range doc.FreeCADInfo {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			pairs := make([]spreadsheet.Pair, 0, len(ids))
			for _, id := range ids {
				info := doc.FreeCADInfo[id]
				pairs = append(pairs, spreadsheet.Pair{Name: id, Value: info.Type + " (" + info.Label + ")"})
			}
			return spreadsheet.Render(c.Renderer.Out(), mode, [2]string{"object", "type"}, pairs)
		},
	}
}
