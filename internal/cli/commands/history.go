package commands

import (
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/qmod-labs/qmod/internal/state"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int
	var latest bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the macro run history",
		Long:  `Show recent macro invocations recorded in the state database.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := NewCommandContext(cmd)

			store, err := c.openStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var runs []*state.Run
			if latest {
				run, err := store.GetLatestRun()
				if err != nil {
					return err
				}
				if run != nil {
					runs = append(runs, run)
				}
			} else {
				runs, err = store.ListRuns(limit)
				if err != nil {
					return err
				}
			}

			if len(runs) == 0 {
				c.Renderer.Println("no runs recorded")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(c.Renderer.Out())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"started", "macro", "args", "status", "duration"})
			for _, run := range runs {
				t.AppendRow(table.Row{
					run.StartedAt.Local().Format(time.DateTime),
					run.Macro,
					run.Args,
					string(run.Status),
					runDuration(run),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&latest, "latest", false, "Show only the most recent run")

	return cmd
}

func runDuration(run *state.Run) string {
	if run.CompletedAt == nil {
		return "-"
	}
	return run.CompletedAt.Sub(run.StartedAt).Round(time.Millisecond).String()
}
