package ui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/mdiff-dev/mdiff/internal/diff"
	"github.com/mdiff-dev/mdiff/internal/snapshot"
	"github.com/mdiff-dev/mdiff/internal/store"
)

// EmptyCell marks a migration absent from one snapshot.
const EmptyCell = "---"

// TimeFormat is the date layout used in snapshot listings.
const TimeFormat = "02.01.2006 15:04"

// RenderDiff prints the comparison as a table: one column per snapshot,
// one line per differing migration. Migrations present on one side only
// are green next to a red placeholder; same-name-different-content
// migrations are yellow on both sides. By default only applications
// with differences are shown; showAll includes identical entries too.
func RenderDiff(result *diff.Result, showAll bool) {
	if !result.HasChanges() {
		PrintSuccess("snapshots %s and %s are equal!", result.LabelA, result.LabelB)
		return
	}

	rows := result.ChangedRows()
	if showAll {
		rows = result.Rows
	}

	data := pterm.TableData{{
		"APPLICATION",
		strings.ToUpper(result.LabelA),
		strings.ToUpper(result.LabelB),
	}}
	for _, row := range rows {
		for i, line := range diffLines(row, showAll) {
			app := ""
			if i == 0 {
				app = row.App
			}
			data = append(data, []string{app, line.a, line.b})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Render()

	printers := GetColorPrinters()
	fmt.Printf("added: %s  removed: %s  modified: %s\n",
		printers["added"].Sprint(result.Stats.Added),
		printers["removed"].Sprint(result.Stats.Removed),
		printers["modified"].Sprint(result.Stats.Modified),
	)
}

type diffLine struct {
	key  string
	a, b string
}

func diffLines(row diff.Row, showAll bool) []diffLine {
	var lines []diffLine
	for _, name := range row.OnlyA {
		lines = append(lines, diffLine{name, pterm.FgGreen.Sprint(name), pterm.FgRed.Sprint(EmptyCell)})
	}
	for _, name := range row.OnlyB {
		lines = append(lines, diffLine{name, pterm.FgRed.Sprint(EmptyCell), pterm.FgGreen.Sprint(name)})
	}
	for _, name := range row.Changed {
		lines = append(lines, diffLine{name, pterm.FgYellow.Sprint(name), pterm.FgYellow.Sprint(name)})
	}
	if showAll {
		for _, name := range row.Matched {
			lines = append(lines, diffLine{name, name, name})
		}
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].key < lines[j].key })
	return lines
}

// RenderSnapshotList prints the stored snapshots table. It reports
// whether at least one snapshot exists.
func RenderSnapshotList(infos []store.Info) bool {
	if len(infos) == 0 {
		PrintWarning("snapshots are not found")
		return false
	}

	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.Label,
			strconv.Itoa(info.Apps),
			strconv.Itoa(info.Files),
			info.CreatedAt.Local().Format(TimeFormat),
			FormatSize(info.Size),
		})
	}
	PrintTable([]string{"NAME", "APPS", "FILES", "DATE", "SIZE"}, rows)
	return true
}

// RenderWarnings prints the non-fatal paths skipped during a scan.
func RenderWarnings(warnings []snapshot.Warning) {
	for _, w := range warnings {
		PrintWarning("%s", w)
	}
}

// FormatSize humanizes a snapshot size.
func FormatSize(size int64) string {
	if size > 1000 {
		return fmt.Sprintf("%d Kb", size/1000)
	}
	return fmt.Sprintf("%d bytes", size)
}
