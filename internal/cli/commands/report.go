package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/cli/output"
	"github.com/greenbelt-labs/dmaic/internal/report"
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "report <project-id>",
		Short: "Print a project summary report",
		Long: `Build the full summary report for one project: overall progress,
expected savings, and per-phase tool completion.`,
		Example: `  # Text report
  dmaic report 4f1c9a2e-...

  # JSON report
  dmaic report 4f1c9a2e-... -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			rep, err := report.Build(cmdCtx.Store, args[0])
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.Mode() == output.ModeJSON {
				return r.JSON(rep)
			}

			r.Printf("%s\n", rep.Name)
			r.Printf("  Status:           %s\n", statusLabel(rep.Status))
			r.Printf("  Current phase:    %s\n", rep.CurrentPhase.Name())
			r.Printf("  Overall progress: %.0f%%\n", rep.Progress)
			r.Printf("  Expected savings: %s\n", rep.ExpectedSavings)
			r.Printf("  Start date:       %s\n", rep.StartDate)
			r.Printf("  Target end:       %s\n", rep.TargetEndDate)

			for _, section := range rep.Phases {
				r.Println("")
				marker := ""
				if section.Complete {
					marker = " (complete)"
				}
				r.Printf("%s: %.0f%%%s\n", section.Name, section.Progress, marker)

				rows := make([]table.Row, 0, len(section.Tools))
				for _, tool := range section.Tools {
					done := "pending"
					if tool.Completed {
						done = "done"
					}
					required := ""
					if tool.Required {
						required = "yes"
					}
					rows = append(rows, table.Row{tool.Name, required, done})
				}
				r.Table(table.Row{"Tool", "Required", "Status"}, rows)
			}
			return nil
		},
	}
}
