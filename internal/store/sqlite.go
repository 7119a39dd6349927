package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Registers the sqlite3 driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS snapshots (
	label      TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	apps       INTEGER NOT NULL,
	files      INTEGER NOT NULL,
	size       INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
)`

// SQLiteStore keeps one row per snapshot label in a single-file SQLite
// database. Counts and size are denormalized so listings do not need to
// decode the payload.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at path and ensures
// the snapshots table exists. Callers own the returned store and must
// Close it.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize snapshot database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save upserts snap under its label.
func (s *SQLiteStore) Save(ctx context.Context, snap *snapshot.Snapshot) (bool, error) {
	payload, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("failed to serialize snapshot %s: %w", snap.Label, err)
	}

	var existing int
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM snapshots WHERE label = ?`, snap.Label).Scan(&existing)
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot %s: %w", snap.Label, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO snapshots (label, payload, apps, files, size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.Label, payload, len(snap.Groups), snap.TotalFiles(), len(payload), snap.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to write snapshot %s: %w", snap.Label, err)
	}
	return existing == 0, nil
}

// Load reads the snapshot stored under label.
func (s *SQLiteStore) Load(ctx context.Context, label string) (*snapshot.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE label = ?`, label).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", label, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot %s: %w", label, err)
	}
	return &snap, nil
}

// List returns metadata for every stored snapshot, sorted by label.
func (s *SQLiteStore) List(ctx context.Context) ([]Info, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, apps, files, size, created_at FROM snapshots ORDER BY label`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var infos []Info
	for rows.Next() {
		var info Info
		var createdAt time.Time
		if err := rows.Scan(&info.Label, &info.Apps, &info.Files, &info.Size, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		info.CreatedAt = createdAt
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return infos, nil
}

// Remove deletes the snapshot stored under label.
func (s *SQLiteStore) Remove(ctx context.Context, label string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM snapshots WHERE label = ?`, label)
	if err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", label, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", label, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
	}
	return nil
}

// RemoveAll deletes every stored snapshot.
func (s *SQLiteStore) RemoveAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
		return fmt.Errorf("failed to remove snapshots: %w", err)
	}
	return nil
}

// Ensure SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)
