package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/debug"
	"github.com/mdiff-dev/mdiff/internal/diff"
	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/ui"
)

// NewCompareCommand creates the compare command.
func NewCompareCommand(st store.Store) *cobra.Command {
	var numberOnly bool
	var showAll bool

	cmd := &cobra.Command{
		Use:   "compare <snapshot-a> <snapshot-b>",
		Short: "Compare migrations between two snapshots",
		Long:  "Compare two stored snapshots and report which migration files were added, removed or changed, per application.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd.Context(), st, args[0], args[1], numberOnly, showAll)
		},
	}

	cmd.Flags().BoolVar(&numberOnly, "number", false, "Print only the number of differences; exit code 2 when differences exist")
	cmd.Flags().BoolVar(&showAll, "all", false, "Include applications and migrations without differences")

	return cmd
}

func runCompare(ctx context.Context, st store.Store, labelA, labelB string, numberOnly, showAll bool) error {
	snapA, err := st.Load(ctx, snapshot.EscapeLabel(labelA))
	if err != nil {
		return err
	}
	snapB, err := st.Load(ctx, snapshot.EscapeLabel(labelB))
	if err != nil {
		return err
	}

	result := diff.Compare(snapA, snapB)
	debug.Debug("comparison complete",
		"apps", len(result.Rows), "added", result.Stats.Added,
		"removed", result.Stats.Removed, "modified", result.Stats.Modified)

	if numberOnly {
		quietMode = true
		fmt.Println(result.Stats.Total())
		if result.HasChanges() {
			return &ExitError{Code: 2}
		}
		return nil
	}

	ui.RenderDiff(result, showAll)
	return nil
}
