package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

const snapshotExt = ".json"

// FilesystemStore keeps one JSON document per snapshot label inside a
// directory. It operates on an afero filesystem so tests run against an
// in-memory fs.
type FilesystemStore struct {
	fs  afero.Fs
	dir string
}

// NewFilesystemStore creates a filesystem store rooted at dir. The
// directory is created lazily on the first save.
func NewFilesystemStore(fs afero.Fs, dir string) *FilesystemStore {
	return &FilesystemStore{fs: fs, dir: dir}
}

func (s *FilesystemStore) path(label string) string {
	return filepath.Join(s.dir, label+snapshotExt)
}

// Save persists snap as <dir>/<label>.json, replacing any previous file.
func (s *FilesystemStore) Save(ctx context.Context, snap *snapshot.Snapshot) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return false, fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	path := s.path(snap.Label)
	existed, err := afero.Exists(s.fs, path)
	if err != nil {
		return false, fmt.Errorf("failed to check snapshot %s: %w", snap.Label, err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to serialize snapshot %s: %w", snap.Label, err)
	}
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return false, fmt.Errorf("failed to write snapshot %s: %w", snap.Label, err)
	}
	return !existed, nil
}

// Load reads the snapshot stored under label.
func (s *FilesystemStore) Load(ctx context.Context, label string) (*snapshot.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := afero.ReadFile(s.fs, s.path(label))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
		}
		return nil, fmt.Errorf("failed to read snapshot %s: %w", label, err)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot %s: %w", label, err)
	}
	return &snap, nil
}

// List returns metadata for every stored snapshot, sorted by label.
func (s *FilesystemStore) List(ctx context.Context) ([]Info, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	var infos []Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), snapshotExt) {
			continue
		}
		label := strings.TrimSuffix(entry.Name(), snapshotExt)
		snap, err := s.Load(ctx, label)
		if err != nil {
			return nil, err
		}
		infos = append(infos, Info{
			Label:     label,
			Apps:      len(snap.Groups),
			Files:     snap.TotalFiles(),
			Size:      entry.Size(),
			CreatedAt: snap.CreatedAt,
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Label < infos[j].Label })
	return infos, nil
}

// Remove deletes the snapshot stored under label.
func (s *FilesystemStore) Remove(ctx context.Context, label string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.fs.Remove(s.path(label)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
		}
		return fmt.Errorf("failed to remove snapshot %s: %w", label, err)
	}
	return nil
}

// RemoveAll deletes the whole snapshots directory.
func (s *FilesystemStore) RemoveAll(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := s.fs.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("failed to remove snapshots: %w", err)
	}
	return nil
}

// Ensure FilesystemStore implements Store.
var _ Store = (*FilesystemStore)(nil)
