package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenbelt-labs/dmaic/internal/snapshot"
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.json>...",
		Short: "Import snapshot files into the local store",
		Long: `Merge one or more snapshot files into the local store.

Projects already present keep whichever version was updated most recently;
older snapshot copies are skipped.`,
		Example: `  dmaic import backup.json
  dmaic import .dmaic/snapshots/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, cleanup, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			var imported, skipped int
			for _, path := range args {
				res, err := snapshot.ImportFile(cmdCtx.Store, path)
				if err != nil {
					return fmt.Errorf("failed to import %s: %w", path, err)
				}
				imported += res.Imported
				skipped += res.Skipped
				cmdCtx.Renderer.StatusLine(path, "success",
					fmt.Sprintf("%d imported, %d skipped", res.Imported, res.Skipped))
			}

			cmdCtx.Renderer.Success(fmt.Sprintf("%d project(s) imported, %d skipped", imported, skipped))
			return nil
		},
	}
}
