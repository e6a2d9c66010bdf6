package commands

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/greenbelt-labs/dmaic/internal/cli/output"
	"github.com/greenbelt-labs/dmaic/internal/dmaic"
	"github.com/greenbelt-labs/dmaic/internal/format"
	"github.com/greenbelt-labs/dmaic/internal/store"
)

var titleCaser = cases.Title(language.English)

// statusLabel turns a stored status like "on_hold" into "On Hold".
func statusLabel(status string) string {
	return titleCaser.String(strings.ReplaceAll(status, "_", " "))
}

// NewProjectCommand creates the project command group.
func NewProjectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Inspect projects in the local store",
	}
	cmd.AddCommand(newProjectListCommand())
	cmd.AddCommand(newProjectShowCommand())
	return cmd
}

func newProjectListCommand() *cobra.Command {
	var userEmail string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's projects",
		Example: `  # List projects for an account
  dmaic project list --user ana@acme.com

  # Machine-readable
  dmaic project list --user ana@acme.com -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if userEmail == "" {
				return fmt.Errorf("--user is required")
			}
			u, err := cmdCtx.Store.GetUserByEmail(userEmail)
			if err != nil {
				return fmt.Errorf("unknown user %s: %w", userEmail, err)
			}

			projects, err := cmdCtx.Store.ListProjects(u.ID)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.Mode() == output.ModeJSON {
				return r.JSON(projects)
			}
			if len(projects) == 0 {
				r.Println("No projects yet.")
				return nil
			}

			rows := make([]table.Row, 0, len(projects))
			for _, p := range projects {
				progress, err := projectProgress(cmdCtx.Store, p.ID)
				if err != nil {
					return err
				}
				rows = append(rows, table.Row{
					p.ID[:8],
					p.Name,
					statusLabel(p.Status),
					p.CurrentPhase.Name(),
					fmt.Sprintf("%.0f%%", progress),
					format.Currency(p.ExpectedSavings),
				})
			}
			r.Table(table.Row{"ID", "Name", "Status", "Phase", "Progress", "Expected Savings"}, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&userEmail, "user", "", "Account email whose projects to list")

	return cmd
}

func newProjectShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project with its phase tools",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			p, err := cmdCtx.Store.GetProject(args[0])
			if err != nil {
				return err
			}
			entries, err := cmdCtx.Store.ListToolEntries(p.ID)
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.Mode() == output.ModeJSON {
				return r.JSON(map[string]any{"project": p, "tools": entries})
			}

			states := store.ToolStates(entries)
			r.Printf("%s\n", p.Name)
			r.Printf("  Status:           %s\n", statusLabel(p.Status))
			r.Printf("  Current phase:    %s\n", p.CurrentPhase.Name())
			r.Printf("  Progress:         %.0f%%\n", dmaic.OverallProgress(states))
			r.Printf("  Expected savings: %s\n", format.Currency(p.ExpectedSavings))
			r.Printf("  Start date:       %s\n", format.DateOrPlaceholder(p.StartDate.Format("2006-01-02")))
			r.Printf("  Target end:       %s\n", format.DateOrPlaceholder(p.TargetEndDate.Format("2006-01-02")))
			r.Println("")

			completed := make(map[dmaic.Phase]map[string]bool)
			for _, e := range entries {
				if completed[e.Phase] == nil {
					completed[e.Phase] = make(map[string]bool)
				}
				completed[e.Phase][e.Key] = e.Completed
			}

			rows := make([]table.Row, 0)
			for _, phase := range dmaic.Phases {
				for _, tool := range dmaic.ToolsFor(phase) {
					done := "pending"
					if completed[phase][tool.Key] {
						done = "done"
					}
					required := ""
					if tool.Required {
						required = "required"
					}
					rows = append(rows, table.Row{phase.Name(), tool.Name, required, done})
				}
			}
			r.Table(table.Row{"Phase", "Tool", "Required", "Status"}, rows)
			return nil
		},
	}
}

func projectProgress(st store.Store, projectID string) (float64, error) {
	entries, err := st.ListToolEntries(projectID)
	if err != nil {
		return 0, err
	}
	return dmaic.OverallProgress(store.ToolStates(entries)), nil
}
