package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/mdiff-dev/mdiff/internal/snapshot"
)

// MemoryStore keeps snapshots in memory. It backs tests and short-lived
// modes that never need persistence across invocations.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]memoryEntry
}

type memoryEntry struct {
	payload []byte
	info    Info
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]memoryEntry)}
}

// Save persists snap under its label. Snapshots are stored serialized
// so later loads cannot observe mutations of the original.
func (s *MemoryStore) Save(ctx context.Context, snap *snapshot.Snapshot) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	default:
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("failed to serialize snapshot %s: %w", snap.Label, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, existed := s.snaps[snap.Label]
	s.snaps[snap.Label] = memoryEntry{
		payload: payload,
		info: Info{
			Label:     snap.Label,
			Apps:      len(snap.Groups),
			Files:     snap.TotalFiles(),
			Size:      int64(len(payload)),
			CreatedAt: snap.CreatedAt,
		},
	}
	return !existed, nil
}

// Load returns the snapshot stored under label.
func (s *MemoryStore) Load(ctx context.Context, label string) (*snapshot.Snapshot, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	entry, ok := s.snaps[label]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
	}

	var snap snapshot.Snapshot
	if err := json.Unmarshal(entry.payload, &snap); err != nil {
		return nil, fmt.Errorf("failed to deserialize snapshot %s: %w", label, err)
	}
	return &snap, nil
}

// List returns metadata for every stored snapshot, sorted by label.
func (s *MemoryStore) List(ctx context.Context) ([]Info, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []Info
	for _, entry := range s.snaps {
		infos = append(infos, entry.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Label < infos[j].Label })
	return infos, nil
}

// Remove deletes the snapshot stored under label.
func (s *MemoryStore) Remove(ctx context.Context, label string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snaps[label]; !ok {
		return fmt.Errorf("%w: %s", ErrSnapshotNotFound, label)
	}
	delete(s.snaps, label)
	return nil
}

// RemoveAll deletes every stored snapshot.
func (s *MemoryStore) RemoveAll(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.snaps = make(map[string]memoryEntry)
	return nil
}

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
