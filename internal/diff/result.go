// Package diff computes the structured comparison of two migration
// snapshots. The comparison is a pure in-memory operation; it never
// touches the filesystem and never fails.
package diff

// Row is the comparison of one application across two snapshots. Every
// migration name of the application appears in exactly one of the four
// buckets.
type Row struct {
	App     string   `json:"app"`
	OnlyA   []string `json:"only_a"`
	OnlyB   []string `json:"only_b"`
	Matched []string `json:"matched"`
	Changed []string `json:"changed"`
}

// HasChanges reports whether the row carries any difference.
func (r Row) HasChanges() bool {
	return len(r.OnlyA) > 0 || len(r.OnlyB) > 0 || len(r.Changed) > 0
}

// Stats aggregates differences from the second snapshot's perspective:
// added = present only in B, removed = present only in A, modified =
// same name with differing content.
type Stats struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
}

// Total is the number of non-identical entries across all rows.
func (s Stats) Total() int {
	return s.Added + s.Removed + s.Modified
}

// Result holds the full comparison of two snapshots. Rows are ordered
// lexicographically by application name and include applications that
// are identical in both snapshots; filtering is a presentation concern.
type Result struct {
	LabelA string `json:"label_a"`
	LabelB string `json:"label_b"`
	Rows   []Row  `json:"rows"`
	Stats  Stats  `json:"stats"`
}

// HasChanges reports whether the two snapshots differ at all.
func (r *Result) HasChanges() bool {
	return r.Stats.Total() > 0
}

// ChangedRows returns only the rows with at least one difference. This
// is the default reporting mode; the full row set stays available for
// renderers that want it.
func (r *Result) ChangedRows() []Row {
	var rows []Row
	for _, row := range r.Rows {
		if row.HasChanges() {
			rows = append(rows, row)
		}
	}
	return rows
}
