package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

// buildSnapshot assembles a snapshot from app -> migration name -> hash.
func buildSnapshot(label string, apps map[string]map[string]string) *snapshot.Snapshot {
	snap := &snapshot.Snapshot{Label: label, Groups: make(map[string]*snapshot.AppGroup)}
	for app, migrations := range apps {
		group := &snapshot.AppGroup{App: app, Records: make(map[string]snapshot.Record)}
		for name, hash := range migrations {
			group.Records[name] = snapshot.Record{Name: name, Hash: hash}
		}
		snap.Groups[app] = group
	}
	return snap
}

func TestCompare_Identity(t *testing.T) {
	snap := buildSnapshot("a", map[string]map[string]string{
		"users":   {"0001_initial": "h1", "0002_email": "h2"},
		"authors": {"0001_initial": "h3"},
	})

	result := Compare(snap, snap)

	assert.Equal(t, Stats{}, result.Stats)
	assert.False(t, result.HasChanges())
	assert.Empty(t, result.ChangedRows())
	for _, row := range result.Rows {
		assert.Empty(t, row.OnlyA)
		assert.Empty(t, row.OnlyB)
		assert.Empty(t, row.Changed)
	}
}

func TestCompare_SwapSymmetry(t *testing.T) {
	a := buildSnapshot("a", map[string]map[string]string{
		"users":   {"0001_initial": "h1", "0003_index": "h3"},
		"authors": {"0001_initial": "h4"},
	})
	b := buildSnapshot("b", map[string]map[string]string{
		"users": {"0001_initial": "h1", "0002_email": "h2"},
		"blog":  {"0001_initial": "h5"},
	})

	ab := Compare(a, b)
	ba := Compare(b, a)

	assert.Equal(t, ab.Stats.Added, ba.Stats.Removed)
	assert.Equal(t, ab.Stats.Removed, ba.Stats.Added)
	assert.Equal(t, ab.Stats.Modified, ba.Stats.Modified)
}

func TestCompare_AppMissingFromOneSide(t *testing.T) {
	a := buildSnapshot("a", map[string]map[string]string{
		"legacy": {"0001_initial": "h1", "0002_cleanup": "h2"},
	})
	b := buildSnapshot("b", map[string]map[string]string{})

	result := Compare(a, b)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "legacy", row.App)
	assert.Equal(t, []string{"0001_initial", "0002_cleanup"}, row.OnlyA)
	assert.Empty(t, row.OnlyB)
	assert.Empty(t, row.Changed)
	assert.Equal(t, Stats{Removed: 2}, result.Stats)
}

func TestCompare_EndToEndScenario(t *testing.T) {
	master := buildSnapshot("master", map[string]map[string]string{
		"authors": {"0004_x": "ha"},
		"users":   {"0003_z": "h-master"},
	})
	develop := buildSnapshot("develop", map[string]map[string]string{
		"authors": {"0005_y": "hb"},
		"users":   {"0003_z": "h-develop"},
	})

	result := Compare(master, develop)

	require.Len(t, result.Rows, 2)

	authors := result.Rows[0]
	assert.Equal(t, "authors", authors.App)
	assert.Equal(t, []string{"0004_x"}, authors.OnlyA)
	assert.Equal(t, []string{"0005_y"}, authors.OnlyB)
	assert.Empty(t, authors.Changed)

	users := result.Rows[1]
	assert.Equal(t, "users", users.App)
	assert.Empty(t, users.OnlyA)
	assert.Empty(t, users.OnlyB)
	assert.Equal(t, []string{"0003_z"}, users.Changed)

	assert.Equal(t, Stats{Added: 1, Removed: 1, Modified: 1}, result.Stats)
}

func TestCompare_BucketsAreExclusive(t *testing.T) {
	a := buildSnapshot("a", map[string]map[string]string{
		"users": {"0001_initial": "h1", "0002_email": "h2", "0003_index": "h3"},
	})
	b := buildSnapshot("b", map[string]map[string]string{
		"users": {"0001_initial": "h1", "0002_email": "changed", "0004_cleanup": "h4"},
	})

	result := Compare(a, b)
	require.Len(t, result.Rows, 1)
	row := result.Rows[0]

	seen := make(map[string]int)
	for _, bucket := range [][]string{row.OnlyA, row.OnlyB, row.Matched, row.Changed} {
		for _, name := range bucket {
			seen[name]++
		}
	}
	for name, count := range seen {
		assert.Equalf(t, 1, count, "migration %s appears in %d buckets", name, count)
	}

	nonIdentical := len(row.OnlyA) + len(row.OnlyB) + len(row.Changed)
	assert.Equal(t, nonIdentical, result.Stats.Total())
}

func TestCompare_RowsSortedByApp(t *testing.T) {
	a := buildSnapshot("a", map[string]map[string]string{
		"zebra": {"0001_initial": "h"},
		"alpha": {"0001_initial": "h"},
		"mango": {"0001_initial": "h"},
	})
	b := buildSnapshot("b", map[string]map[string]string{})

	result := Compare(a, b)

	apps := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		apps = append(apps, row.App)
	}
	assert.Equal(t, []string{"alpha", "mango", "zebra"}, apps)
}

func TestChangedRows_FiltersIdenticalApps(t *testing.T) {
	a := buildSnapshot("a", map[string]map[string]string{
		"same":  {"0001_initial": "h1"},
		"drift": {"0001_initial": "h2"},
	})
	b := buildSnapshot("b", map[string]map[string]string{
		"same":  {"0001_initial": "h1"},
		"drift": {"0001_initial": "other"},
	})

	result := Compare(a, b)
	assert.Len(t, result.Rows, 2)

	changed := result.ChangedRows()
	require.Len(t, changed, 1)
	assert.Equal(t, "drift", changed[0].App)
	assert.True(t, result.HasChanges())
}
