// Package snapshot defines the migration snapshot data model and the
// scanner that produces snapshots from a project tree.
package snapshot

import (
	"sort"
	"strings"
	"time"
)

// Record is one migration file captured at scan time. The hash is a
// SHA-256 fingerprint of the full file contents, computed once during
// scanning so diffing never re-reads the file.
type Record struct {
	Name string `json:"name"`
	Hash string `json:"hash"`
}

// AppGroup holds the migrations owned by one application. Record names
// are unique within a group.
type AppGroup struct {
	App     string            `json:"app"`
	Records map[string]Record `json:"records"`
}

// Names returns the migration names of the group in sorted order.
func (g *AppGroup) Names() []string {
	names := make([]string, 0, len(g.Records))
	for name := range g.Records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot is a labeled picture of every migration file found under a
// project root, grouped by application. Snapshots are never mutated
// after the scanner returns them.
type Snapshot struct {
	Label     string               `json:"label"`
	CreatedAt time.Time            `json:"created_at"`
	Groups    map[string]*AppGroup `json:"groups"`
}

// Apps returns the application names of the snapshot in sorted order.
func (s *Snapshot) Apps() []string {
	apps := make([]string, 0, len(s.Groups))
	for app := range s.Groups {
		apps = append(apps, app)
	}
	sort.Strings(apps)
	return apps
}

// TotalFiles returns the number of migration records across all groups.
func (s *Snapshot) TotalFiles() int {
	total := 0
	for _, g := range s.Groups {
		total += len(g.Records)
	}
	return total
}

// EscapeLabel removes characters that are not safe in a snapshot label.
func EscapeLabel(label string) string {
	return strings.ReplaceAll(label, "/", "-")
}
