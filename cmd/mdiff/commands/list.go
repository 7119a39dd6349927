package commands

import (
	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/store"
	"github.com/mdiff-dev/mdiff/internal/ui"
)

// NewListCommand creates the list command.
func NewListCommand(st store.Store) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			ui.RenderSnapshotList(infos)
			return nil
		},
	}
}
