package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greek-courier-tracker/internal/features/tracking/domain"
)

func sampleSnapshot(trackingNumber string) *domain.Snapshot {
	return &domain.Snapshot{
		TrackingNumber: trackingNumber,
		Courier:        domain.CourierACS,
		CourierName:    "ACS Courier",
		Status:         "In Transit",
		StatusCategory: domain.CategoryInTransit,
		Events: []domain.TrackingEvent{
			{Date: "2025-01-15", Time: "14:30", Location: "ΑΘΗΝΑ", RawStatus: "Η αποστολή βρίσκεται σε διακίνηση", Status: "In Transit"},
		},
		LastUpdated: time.Date(2025, 1, 15, 15, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore_GetPut(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Get(ctx, "1234567890")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Put(ctx, sampleSnapshot("1234567890")))

	got, err = s.Get(ctx, "1234567890")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "In Transit", got.Status)
	require.Len(t, got.Events, 1)
}

func TestMemoryStore_PutReplaces(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := sampleSnapshot("1234567890")
	first.Events = []domain.TrackingEvent{
		{RawStatus: "a"}, {RawStatus: "b"}, {RawStatus: "c"},
	}
	require.NoError(t, s.Put(ctx, first))

	second := sampleSnapshot("1234567890")
	second.Status = "Delivered"
	second.StatusCategory = domain.CategoryDelivered
	second.Delivered = true
	require.NoError(t, s.Put(ctx, second))

	got, err := s.Get(ctx, "1234567890")
	require.NoError(t, err)
	require.NotNil(t, got)

	// Replace, not merge: the old three events are gone.
	assert.Len(t, got.Events, 1)
	assert.True(t, got.Delivered)
}

func TestMemoryStore_Remove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleSnapshot("1234567890")))
	require.NoError(t, s.Remove(ctx, "1234567890"))

	got, err := s.Get(ctx, "1234567890")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Removing an absent number is a no-op.
	assert.NoError(t, s.Remove(ctx, "1234567890"))
}

func TestMemoryStore_All(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleSnapshot("BN12345678")))
	require.NoError(t, s.Put(ctx, sampleSnapshot("1234567890")))
	require.NoError(t, s.Put(ctx, sampleSnapshot("SE123456789GR")))

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1234567890", all[0].TrackingNumber)
	assert.Equal(t, "BN12345678", all[1].TrackingNumber)
	assert.Equal(t, "SE123456789GR", all[2].TrackingNumber)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, sampleSnapshot("1234567890")))

	got, err := s.Get(ctx, "1234567890")
	require.NoError(t, err)
	got.Status = "mutated"

	again, err := s.Get(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, "In Transit", again.Status)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tn := fmt.Sprintf("%010d", i)
			_ = s.Put(ctx, sampleSnapshot(tn))
			_, _ = s.Get(ctx, tn)
			_, _ = s.All(ctx)
		}(i)
	}
	wg.Wait()

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}
