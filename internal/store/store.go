// Package store persists labeled snapshots and loads them back. The
// store is an injected collaborator: the scanner and differ never touch
// persistence themselves.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

// ErrSnapshotNotFound indicates that no snapshot is persisted under the
// requested label. Callers can check for it with errors.Is.
var ErrSnapshotNotFound = errors.New("mdiff: snapshot not found")

// Info describes one stored snapshot, for listings.
type Info struct {
	Label     string
	Apps      int
	Files     int
	Size      int64
	CreatedAt time.Time
}

// Store persists snapshots under their label.
type Store interface {
	// Save persists snap under its label, replacing any previous
	// snapshot stored with the same label. It reports whether a new
	// record was created; false means an existing one was updated.
	Save(ctx context.Context, snap *snapshot.Snapshot) (created bool, err error)

	// Load returns the snapshot stored under label, or a
	// ErrSnapshotNotFound error when the label is unknown.
	Load(ctx context.Context, label string) (*snapshot.Snapshot, error)

	// List returns metadata for every stored snapshot, sorted by label.
	List(ctx context.Context) ([]Info, error)

	// Remove deletes the snapshot stored under label, or returns an
	// ErrSnapshotNotFound error when the label is unknown.
	Remove(ctx context.Context, label string) error

	// RemoveAll deletes every stored snapshot.
	RemoveAll(ctx context.Context) error
}
