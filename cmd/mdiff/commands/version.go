package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/config"
	"github.com/mdiff-dev/mdiff/internal/update"
	"github.com/mdiff-dev/mdiff/internal/version"
)

// NewVersionCommand creates the version command. Unlike the background
// daily check, version always asks the release server.
func NewVersionCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version.Get().FullString())

			if cfg.SkipUpdateCheck {
				return nil
			}
			if dir, err := config.DataDir(); err == nil {
				defer update.MarkChecked(dir)
			}
			quietMode = true // the explicit check below replaces the daily one
			return update.Check(version.Version)
		},
	}
}
