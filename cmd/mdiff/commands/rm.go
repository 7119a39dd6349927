package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/ui"
)

// NewRemoveCommand creates the rm command.
func NewRemoveCommand(st store.Store) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm <label>... | all",
		Short: "Remove stored snapshots",
		Long:  "Remove specific snapshots by label, or every snapshot with 'mdiff rm all'.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd.Context(), st, args, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func runRemove(ctx context.Context, st store.Store, labels []string, yes bool) error {
	if len(labels) == 1 && labels[0] == "all" {
		return removeAll(ctx, st, yes)
	}

	for _, label := range labels {
		label = snapshot.EscapeLabel(label)
		switch err := st.Remove(ctx, label); {
		case err == nil:
			ui.PrintSuccess("snapshot %s - deleted", label)
		case errors.Is(err, store.ErrSnapshotNotFound):
			ui.PrintError("snapshot %s - not found", label)
		default:
			return err
		}
	}
	return nil
}

func removeAll(ctx context.Context, st store.Store, yes bool) error {
	infos, err := st.List(ctx)
	if err != nil {
		return err
	}
	if !ui.RenderSnapshotList(infos) {
		return nil
	}

	if !yes {
		confirmed := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Remove all %d snapshots?", len(infos)),
		}
		if err := survey.AskOne(prompt, &confirmed); err != nil {
			return err
		}
		if !confirmed {
			ui.PrintInfo("operation cancelled")
			return nil
		}
	}

	if err := st.RemoveAll(ctx); err != nil {
		return err
	}
	ui.PrintSuccess("OK!")
	return nil
}
