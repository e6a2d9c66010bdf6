package commands

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/greenbelt-labs/dmaic/internal/auth"
	"github.com/greenbelt-labs/dmaic/internal/cli/output"
	"github.com/greenbelt-labs/dmaic/internal/format"
)

// NewUserCommand creates the user command group.
func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage dashboard accounts",
	}
	cmd.AddCommand(newUserCreateCommand())
	cmd.AddCommand(newUserListCommand())
	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var email, name, company, password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard account",
		Long: `Create an account for the web dashboard.

The password is prompted interactively unless --password is given. It must
be at least 8 characters with upper case, lower case and a digit.`,
		Example: `  # Prompt for everything
  dmaic user create

  # Non-interactive
  dmaic user create --email ana@acme.com --name "Ana Souza" --password 'Secret123'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if email == "" {
				email, err = promptLine(cmd, "Email: ")
				if err != nil {
					return err
				}
			}
			if password == "" {
				password, err = promptPassword(cmd, "Password: ")
				if err != nil {
					return err
				}
			}

			svc := auth.NewService(cmdCtx.Store)
			u, err := svc.Register(email, password, name, company)
			if err != nil {
				return err
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("account created: %s (%s)", u.Email, u.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&company, "company", "", "Company name")
	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")

	return cmd
}

func newUserListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List dashboard accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			users, err := cmdCtx.Store.ListUsers()
			if err != nil {
				return err
			}

			r := cmdCtx.Renderer
			if r.Mode() == output.ModeJSON {
				return r.JSON(users)
			}
			if len(users) == 0 {
				r.Println("No accounts yet. Create one with 'dmaic user create'.")
				return nil
			}

			rows := make([]table.Row, 0, len(users))
			for _, u := range users {
				rows = append(rows, table.Row{
					u.Email, u.Name, u.Company,
					format.DateOrPlaceholder(u.CreatedAt.Format("2006-01-02")),
				})
			}
			r.Table(table.Row{"Email", "Name", "Company", "Created"}, rows)
			return nil
		},
	}
}

func promptLine(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptPassword(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		pw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
	// Piped input (tests, scripts).
	return promptLine(cmd, "")
}
