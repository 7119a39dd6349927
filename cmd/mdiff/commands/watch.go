package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/config"
	"github.com/mdiff-dev/mdiff/internal/diff"
	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/ui"
	"github.com/mdiff-dev/mdiff/internal/watch"
)

// NewWatchCommand creates the watch command.
func NewWatchCommand(cfg *config.Config, st store.Store) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "watch <baseline>",
		Short: "Re-check migration drift whenever migration files change",
		Long:  "Watch the project's migration directories and report the drift against a stored baseline snapshot after every change.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), cfg, st, args[0], path)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project root to watch")

	return cmd
}

func runWatch(ctx context.Context, cfg *config.Config, st store.Store, baseline, path string) error {
	baseline = snapshot.EscapeLabel(baseline)
	base, err := st.Load(ctx, baseline)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	scanner := snapshot.NewScanner(config.AppFs, cfg.IgnoreDirs...)
	dirs, err := scanner.MigrationDirs(root)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("can't find any migration in %s", root)
	}

	check := func() error {
		current, warnings, err := scanner.Scan(root, "working-tree")
		if err != nil {
			return err
		}
		ui.RenderWarnings(warnings)

		result := diff.Compare(base, current)
		if result.HasChanges() {
			ui.PrintWarning("%d differences against snapshot %s (added: %d, removed: %d, modified: %d)",
				result.Stats.Total(), baseline,
				result.Stats.Added, result.Stats.Removed, result.Stats.Modified)
		} else {
			ui.PrintSuccess("in sync with snapshot %s", baseline)
		}
		return nil
	}

	watcher, err := watch.NewWatcher(dirs, check)
	if err != nil {
		return err
	}

	if err := watcher.Start(); err != nil {
		watcher.Stop()
		return err
	}
	ui.PrintInfo("watching %d migration directories, ctrl-c to stop", len(dirs))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	return watcher.Stop()
}
