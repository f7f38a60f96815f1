package commands

import (
	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/spreadsheet"
)

// NewTableCommand creates the table command.
func NewTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Render the geometric parameters as a table",
		Long: `Render the model document's geometric parameters as a two-column
table. The -o flag selects the format: table, json, csv or md.`,
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
