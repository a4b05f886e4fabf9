package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"greek-courier-tracker/internal/core/cache"
	"greek-courier-tracker/internal/features/tracking/domain"
)

const snapshotKeyPrefix = "snapshot:"

// RedisStore persists snapshots through the cache port so last-known-good
// data survives process restarts. Values are stored without TTL; lifecycle
// is tied to explicit Remove on deregistration, same as MemoryStore.
type RedisStore struct {
	cache cache.Cache
}

// NewRedisStore creates a RedisStore on top of a cache backend.
func NewRedisStore(c cache.Cache) *RedisStore {
	return &RedisStore{cache: c}
}

func snapshotKey(trackingNumber string) string {
	return snapshotKeyPrefix + trackingNumber
}

// Get returns the snapshot for a tracking number, or nil when absent.
func (s *RedisStore) Get(ctx context.Context, trackingNumber string) (*domain.Snapshot, error) {
	data, err := s.cache.Get(ctx, snapshotKey(trackingNumber))
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Put atomically replaces the snapshot for its tracking number.
func (s *RedisStore) Put(ctx context.Context, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	if err := s.cache.Set(ctx, snapshotKey(snapshot.TrackingNumber), data, 0); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Remove deletes the snapshot for a tracking number, if present.
func (s *RedisStore) Remove(ctx context.Context, trackingNumber string) error {
	if err := s.cache.Delete(ctx, snapshotKey(trackingNumber)); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// All returns every stored snapshot, ordered by tracking number.
func (s *RedisStore) All(ctx context.Context) ([]domain.Snapshot, error) {
	keys, err := s.cache.Keys(ctx, snapshotKeyPrefix+"*")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := make([]domain.Snapshot, 0, len(keys))
	for _, key := range keys {
		data, err := s.cache.Get(ctx, key)
		if err != nil {
			if errors.Is(err, cache.ErrKeyNotFound) {
				// Removed between SCAN and GET.
				continue
			}
			return nil, fmt.Errorf("failed to read snapshot %s: %w", key, err)
		}
		var snap domain.Snapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("failed to unmarshal snapshot %s: %w", key, err)
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TrackingNumber < out[j].TrackingNumber
	})
	return out, nil
}
