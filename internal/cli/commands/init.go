package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/config"
)

const configTemplate = `# dmaic project configuration
store_path: .dmaic/state.db
output: text

server:
  port: 8765
  # session_secret: set a long random value before exposing the server
  session_max_age_days: 30
  auto_open: true

snapshot:
  dir: .dmaic/snapshots
  watch: true
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a dmaic workspace",
		Long: `Initialize a dmaic workspace with its configuration and data directories.

This creates:
  - dmaic.yaml configuration file
  - .dmaic/ directory for the project store
  - .dmaic/snapshots/ directory for offline snapshot files`,
		Example: `  # Initialize in current directory
  dmaic init

  # Initialize in a new directory
  dmaic init my-workspace

  # Force overwrite existing config
  dmaic init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	cfg := getConfig(cmd.Context())
	r := newRenderer(cmd, cfg)

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.ConfigFileName)
	}
	if err := os.WriteFile(configPath, []byte(configTemplate), 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	for _, sub := range []string{".dmaic", filepath.Join(".dmaic", "snapshots")} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0750); err != nil {
			return fmt.Errorf("failed to create %s: %w", sub, err)
		}
		r.StatusLine(sub+string(os.PathSeparator), "success", "")
	}
	r.StatusLine(config.ConfigFileName, "success", "")

	r.Println("")
	r.Success("dmaic workspace initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Create an account with 'dmaic user create'")
	r.Println("  2. Run 'dmaic serve' to open the dashboard")
	r.Println("  3. Track progress with 'dmaic project list'")

	return nil
}
