package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/config"
	"github.com/mdiff-dev/mdiff/internal/debug"
	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/ui"
)

// NewSnapshotCommand creates the snapshot command.
func NewSnapshotCommand(cfg *config.Config, st store.Store) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "snapshot <label>",
		Short: "Create or update a snapshot of the project's migrations",
		Long:  "Scan the project tree for migration files and store them as a labeled snapshot. An existing snapshot with the same label is replaced.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshot(cmd.Context(), cfg, st, args[0], path)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root to scan")

	return cmd
}

func runSnapshot(ctx context.Context, cfg *config.Config, st store.Store, label, path string) error {
	label = snapshot.EscapeLabel(label)
	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	scanner := snapshot.NewScanner(config.AppFs, cfg.IgnoreDirs...)
	snap, warnings, err := scanner.Scan(root, label)
	if err != nil {
		return err
	}
	debug.Debug("scan complete",
		"root", root, "apps", len(snap.Groups),
		"files", snap.TotalFiles(), "skipped", len(warnings))
	ui.RenderWarnings(warnings)

	if snap.TotalFiles() == 0 {
		return fmt.Errorf("can't find any migration in %s", root)
	}

	created, err := st.Save(ctx, snap)
	if err != nil {
		return err
	}

	action := "updated"
	if created {
		action = "created"
	}
	ui.PrintSuccess("snapshot %s successfully %s: %d applications, %d migrations",
		label, action, len(snap.Groups), snap.TotalFiles())
	return nil
}
