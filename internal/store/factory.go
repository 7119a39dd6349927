package store

import (
	"fmt"

	"github.com/spf13/afero"
)

// Type selects a store backend.
type Type string

const (
	// TypeFilesystem stores one JSON file per snapshot.
	TypeFilesystem Type = "filesystem"

	// TypeSQLite stores snapshots in a single-file database.
	TypeSQLite Type = "sqlite"

	// TypeMemory stores snapshots in memory only.
	TypeMemory Type = "memory"
)

// Config holds store configuration.
type Config struct {
	// Type is the backend to use (filesystem, sqlite, memory).
	Type string

	// Dir is the snapshots directory for the filesystem backend.
	Dir string

	// SQLitePath is the database file for the sqlite backend.
	SQLitePath string

	// Fs is the filesystem for the filesystem backend; defaults to the
	// OS filesystem.
	Fs afero.Fs
}

// New creates a store from config. Stores that hold resources (sqlite)
// implement io.Closer; callers should close them when done.
func New(cfg Config) (Store, error) {
	switch Type(cfg.Type) {
	case TypeFilesystem, "":
		fs := cfg.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewFilesystemStore(fs, cfg.Dir), nil

	case TypeSQLite:
		return OpenSQLiteStore(cfg.SQLitePath)

	case TypeMemory:
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
