package diff

import (
	"sort"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

// Compare diffs two snapshots. Every combination of present and absent
// applications is valid input: an application missing from one side
// contributes all of its migrations to the corresponding only bucket.
func Compare(a, b *snapshot.Snapshot) *Result {
	result := &Result{LabelA: a.Label, LabelB: b.Label}

	for _, app := range unionApps(a, b) {
		row := compareApp(app, a.Groups[app], b.Groups[app])
		result.Stats.Added += len(row.OnlyB)
		result.Stats.Removed += len(row.OnlyA)
		result.Stats.Modified += len(row.Changed)
		result.Rows = append(result.Rows, row)
	}
	return result
}

func compareApp(app string, groupA, groupB *snapshot.AppGroup) Row {
	row := Row{App: app}

	recordsA := records(groupA)
	recordsB := records(groupB)

	for name, recA := range recordsA {
		recB, ok := recordsB[name]
		switch {
		case !ok:
			row.OnlyA = append(row.OnlyA, name)
		case recA.Hash == recB.Hash:
			row.Matched = append(row.Matched, name)
		default:
			row.Changed = append(row.Changed, name)
		}
	}
	for name := range recordsB {
		if _, ok := recordsA[name]; !ok {
			row.OnlyB = append(row.OnlyB, name)
		}
	}

	sort.Strings(row.OnlyA)
	sort.Strings(row.OnlyB)
	sort.Strings(row.Matched)
	sort.Strings(row.Changed)
	return row
}

func records(g *snapshot.AppGroup) map[string]snapshot.Record {
	if g == nil {
		return nil
	}
	return g.Records
}

func unionApps(a, b *snapshot.Snapshot) []string {
	seen := make(map[string]struct{}, len(a.Groups)+len(b.Groups))
	for app := range a.Groups {
		seen[app] = struct{}{}
	}
	for app := range b.Groups {
		seen[app] = struct{}{}
	}
	apps := make([]string, 0, len(seen))
	for app := range seen {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps
}
