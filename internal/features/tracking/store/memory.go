package store

import (
	"context"
	"sort"
	"sync"

	"greek-courier-tracker/internal/features/tracking/domain"
)

// MemoryStore is the default in-process snapshot store. Entries never
// expire on their own; they are removed only on explicit Remove, so
// last-known-good data survives courier outages indefinitely.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]domain.Snapshot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]domain.Snapshot),
	}
}

// Get returns the snapshot for a tracking number, or nil when absent.
func (s *MemoryStore) Get(_ context.Context, trackingNumber string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[trackingNumber]
	if !ok {
		return nil, nil
	}
	out := snap
	return &out, nil
}

// Put atomically replaces the snapshot for its tracking number.
func (s *MemoryStore) Put(_ context.Context, snapshot *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[snapshot.TrackingNumber] = *snapshot
	return nil
}

// Remove deletes the snapshot for a tracking number, if present.
func (s *MemoryStore) Remove(_ context.Context, trackingNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.snapshots, trackingNumber)
	return nil
}

// All returns every stored snapshot, ordered by tracking number.
func (s *MemoryStore) All(_ context.Context) ([]domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TrackingNumber < out[j].TrackingNumber
	})
	return out, nil
}
