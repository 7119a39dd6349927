// Package commands implements CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/config"
	"github.com/mdiff-dev/mdiff/internal/debug"
	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/update"
	"github.com/mdiff-dev/mdiff/internal/version"
)

// ExitError carries a specific process exit code without a user-facing
// message. Compare-count mode uses it to signal differences to CI.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// quietMode is set by commands whose output is consumed by scripts; it
// suppresses the daily update check.
var quietMode bool

// Execute is the main entry point for the CLI.
func Execute() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	st, err := store.New(store.Config{
		Type:       cfg.Storage,
		Dir:        cfg.SnapshotsDir,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize snapshot store: %w", err)
	}
	if closer, ok := st.(io.Closer); ok {
		defer closer.Close()
	}

	var debugFlag bool
	rootCmd := &cobra.Command{
		Use:           "mdiff",
		Short:         "Compare Django migration files between snapshots",
		Long:          "mdiff snapshots the migration files of a project tree and compares two snapshots to detect migration drift between branches.",
		Version:       version.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			debug.Init(debugFlag)
		},
	}
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(NewSnapshotCommand(cfg, st))
	rootCmd.AddCommand(NewCompareCommand(st))
	rootCmd.AddCommand(NewListCommand(st))
	rootCmd.AddCommand(NewRemoveCommand(st))
	rootCmd.AddCommand(NewWatchCommand(cfg, st))
	rootCmd.AddCommand(NewVersionCommand(cfg))
	rootCmd.AddCommand(NewDocsCommand())

	err = rootCmd.Execute()

	if err == nil && !quietMode && !cfg.SkipUpdateCheck {
		if dir, dirErr := config.DataDir(); dirErr == nil {
			update.CheckDaily(dir, version.Version)
		}
	}
	return err
}
