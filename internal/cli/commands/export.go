package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/snapshot"
)

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	var userEmail, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's projects to a snapshot file",
		Long: `Write all of a user's projects and tool data to a portable JSON
snapshot. Snapshots can be imported on another machine, or dropped into the
snapshot directory of a running server for automatic sync.`,
		Example: `  # Export to the snapshot directory
  dmaic export --user ana@acme.com

  # Export to an explicit file
  dmaic export --user ana@acme.com --out backup.json

  # Export to stdout
  dmaic export --user ana@acme.com --out -`,
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

			if outPath == "-" {
				return snapshot.Export(cmdCtx.Store, u.ID, cmd.OutOrStdout())
			}

			if outPath == "" {
				dir := cmdCtx.Cfg.GetSnapshot().Dir
				if err := os.MkdirAll(dir, 0750); err != nil {
					return fmt.Errorf("failed to create snapshot directory: %w", err)
				}
				outPath = filepath.Join(dir,
					fmt.Sprintf("dmaic-%s.json", time.Now().UTC().Format("20060102-150405")))
			}

			if err := snapshot.ExportFile(cmdCtx.Store, u.ID, outPath); err != nil {
				return err
			}
			cmdCtx.Renderer.Success(fmt.Sprintf("snapshot written to %s", outPath))
			return nil
		},
	}

	cmd.Flags().StringVar(&userEmail, "user", "", "Account email whose projects to export")
	cmd.Flags().StringVar(&outPath, "out", "", "Output file ('-' for stdout, default: snapshot directory)")

	return cmd
}
