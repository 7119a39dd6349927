package commands

import (
	"github.com/spf13/cobra"

	"github.com/mdiff-dev/mdiff/internal/ui"
)

const usageGuide = `# mdiff

Snapshot the database migration files of a project tree and compare two
snapshots to detect migration drift between branches.

## Typical workflow

1. On the main branch:

   ` + "```" + `
   git checkout master
   mdiff snapshot master
   ` + "```" + `

2. On your feature branch:

   ` + "```" + `
   git checkout feature/my-change
   mdiff snapshot develop
   ` + "```" + `

3. Compare:

   ` + "```" + `
   mdiff compare master develop
   ` + "```" + `

## Commands

| Command | Description |
| --- | --- |
| ` + "`mdiff snapshot <label>`" + ` | Scan the working directory and store a snapshot |
| ` + "`mdiff compare <a> <b>`" + ` | Show a table of added/removed/changed migrations |
| ` + "`mdiff compare <a> <b> --number`" + ` | Print only the difference count (exit code 2 when drift exists) |
| ` + "`mdiff list`" + ` | List stored snapshots |
| ` + "`mdiff rm <label>...`" + ` or ` + "`mdiff rm all`" + ` | Remove snapshots |
| ` + "`mdiff watch <baseline>`" + ` | Re-check drift whenever migration files change |
| ` + "`mdiff version`" + ` | Version info and update check |

## Reading the compare table

- A migration name next to a red ` + "`---`" + ` exists in one snapshot only.
- The same name in yellow on both sides means the file contents differ.
- Identical migrations are hidden unless ` + "`--all`" + ` is given.

## Configuration

mdiff reads ` + "`.mdiff.yaml`" + ` from the working directory, your home
directory or ` + "`~/.config/mdiff`" + `, and ` + "`MDIFF_*`" + ` environment variables:

- ` + "`snapshots_dir`" + ` - where snapshots are stored (default ` + "`~/.mdiff/snapshots`" + `)
- ` + "`storage`" + ` - ` + "`filesystem`" + ` (default) or ` + "`sqlite`" + `
- ` + "`sqlite_path`" + ` - database file for the sqlite backend
- ` + "`ignore_dirs`" + ` - extra directory names to skip while scanning
- ` + "`skip_update_check`" + ` - disable the daily update check
`

// NewDocsCommand creates the docs command.
func NewDocsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "docs",
		Short: "Show the usage guide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.PrintMarkdown(usageGuide)
		},
	}
}
