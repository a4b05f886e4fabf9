package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/detect"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/normalize"
	"greek-courier-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

var (
	// ErrCourierNotSupported is returned when no provider handles the
	// detected courier.
	ErrCourierNotSupported = errors.New("courier not supported")
	// ErrUnrecognizedNumber is returned when the tracking number format
	// matches no known courier.
	ErrUnrecognizedNumber = errors.New("unrecognized tracking number format")
)

// TrackedItem is one configured tracking number with an optional display
// name.
type TrackedItem struct {
	TrackingNumber string `json:"tracking_number"`
	DisplayName    string `json:"name,omitempty"`
}

// ItemResult is the per-item outcome of one refresh cycle.
type ItemResult struct {
	TrackingNumber string
	Courier        domain.Courier
	Snapshot       *domain.Snapshot
	Err            error
}

// Coordinator performs refresh cycles over the configured tracking
// numbers: classify, dispatch the matching adapter, normalize, and write
// the result into the snapshot store. Per-item failures are contained; a
// cycle never fails wholesale because one courier is down.
type Coordinator struct {
	providers    []ports.CourierProvider
	store        ports.SnapshotStore
	fetchTimeout time.Duration
	concurrency  int
	logger       *zap.Logger

	mu    sync.RWMutex
	items map[string]TrackedItem
}

// NewCoordinator creates a Coordinator. fetchTimeout bounds each courier
// request; concurrency bounds parallel fetches within one cycle.
func NewCoordinator(providers []ports.CourierProvider, store ports.SnapshotStore, fetchTimeout time.Duration, concurrency int) *Coordinator {
	if fetchTimeout <= 0 {
		fetchTimeout = 30 * time.Second
	}
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Coordinator{
		providers:    providers,
		store:        store,
		fetchTimeout: fetchTimeout,
		concurrency:  concurrency,
		logger:       logger.Get(),
		items:        make(map[string]TrackedItem),
	}
}

// Configure replaces the set of tracked items. Numbers are trimmed,
// upper-cased and de-duplicated; snapshots of numbers no longer configured
// are removed from the store.
func (c *Coordinator) Configure(ctx context.Context, items []TrackedItem) error {
	next := make(map[string]TrackedItem, len(items))
	for _, item := range items {
		tn := detect.Normalize(item.TrackingNumber)
		if tn == "" {
			continue
		}
		if _, dup := next[tn]; dup {
			continue
		}
		item.TrackingNumber = tn
		next[tn] = item
	}

	c.mu.Lock()
	previous := c.items
	c.items = next
	c.mu.Unlock()

	for tn := range previous {
		if _, still := next[tn]; !still {
			if err := c.store.Remove(ctx, tn); err != nil {
				return fmt.Errorf("failed to prune snapshot %s: %w", tn, err)
			}
		}
	}
	return nil
}

// Register adds items to the tracked set, keeping existing ones.
func (c *Coordinator) Register(items []TrackedItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		tn := detect.Normalize(item.TrackingNumber)
		if tn == "" {
			continue
		}
		item.TrackingNumber = tn
		c.items[tn] = item
	}
}

// Deregister removes a tracking number and its stored snapshot.
func (c *Coordinator) Deregister(ctx context.Context, trackingNumber string) error {
	tn := detect.Normalize(trackingNumber)

	c.mu.Lock()
	delete(c.items, tn)
	c.mu.Unlock()

	if err := c.store.Remove(ctx, tn); err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", tn, err)
	}
	return nil
}

// Items returns the tracked items ordered by tracking number.
func (c *Coordinator) Items() []TrackedItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]TrackedItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TrackingNumber < out[j].TrackingNumber
	})
	return out
}

// Snapshot returns the stored snapshot for a tracking number.
func (c *Coordinator) Snapshot(ctx context.Context, trackingNumber string) (*domain.Snapshot, error) {
	return c.store.Get(ctx, detect.Normalize(trackingNumber))
}

// Snapshots returns every stored snapshot.
func (c *Coordinator) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	return c.store.All(ctx)
}

// RefreshCycle fetches all configured tracking numbers once, each in its
// own goroutine behind a concurrency limit, and joins all outcomes. The
// returned map always contains one entry per configured item; the call
// itself never fails because of a single courier.
func (c *Coordinator) RefreshCycle(ctx context.Context) map[string]ItemResult {
	items := c.Items()
	if len(items) == 0 {
		return map[string]ItemResult{}
	}

	results := make([]ItemResult, len(items))
	sem := make(chan struct{}, c.concurrency)
	var wg sync.WaitGroup

	for i, item := range items {
		wg.Add(1)
		go func(i int, item TrackedItem) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = c.refreshOne(ctx, item)
		}(i, item)
	}
	wg.Wait()

	out := make(map[string]ItemResult, len(results))
	for _, r := range results {
		out[r.TrackingNumber] = r
	}
	return out
}

// refreshOne runs the classify → fetch → normalize → store pipeline for a
// single item.
func (c *Coordinator) refreshOne(ctx context.Context, item TrackedItem) ItemResult {
	result := ItemResult{TrackingNumber: item.TrackingNumber}

	courier := detect.Detect(item.TrackingNumber)
	result.Courier = courier
	if courier == domain.CourierUnknown {
		result.Err = ErrUnrecognizedNumber
		return result
	}

	provider := c.providerFor(courier)
	if provider == nil {
		result.Err = ErrCourierNotSupported
		return result
	}

	fetchCtx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	raw, err := provider.Fetch(fetchCtx, item.TrackingNumber)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			// A confirmed "no such shipment" supersedes stale data; an
			// explicit snapshot is written instead of silently keeping
			// the previous one.
			snap := c.notFoundSnapshot(item, courier)
			if putErr := c.store.Put(ctx, snap); putErr != nil {
				result.Err = putErr
				return result
			}
			result.Snapshot = snap
			return result
		}

		// Transport and parse failures are transient: the previous
		// snapshot stays untouched.
		c.logger.Warn("tracking fetch failed",
			zap.String("tracking_number", item.TrackingNumber),
			zap.String("courier", string(courier)),
			zap.Error(err),
		)
		result.Err = err
		return result
	}

	snap := c.buildSnapshot(item, courier, raw)
	if err := c.store.Put(ctx, snap); err != nil {
		result.Err = err
		return result
	}
	result.Snapshot = snap
	return result
}

func (c *Coordinator) providerFor(courier domain.Courier) ports.CourierProvider {
	for _, p := range c.providers {
		if p.Supports(courier) {
			return p
		}
	}
	return nil
}

// buildSnapshot normalizes a raw adapter result into a fresh snapshot.
func (c *Coordinator) buildSnapshot(item TrackedItem, courier domain.Courier, raw *domain.RawTracking) *domain.Snapshot {
	events := normalize.Apply(courier, raw.Events)
	events = normalize.SortEvents(events)

	base := raw.Status
	if base == "" && len(events) > 0 {
		base = events[len(events)-1].RawStatus
	}

	status, category := normalize.Normalize(courier, base)
	switch {
	case raw.Delivered:
		status, category = "Delivered", domain.CategoryDelivered
	case base == "" && len(events) == 0:
		// Registered shipment with no scan events yet.
		status, category = "Shipment Created", domain.CategoryCreated
	}

	if category == domain.CategoryUnknown && base != "" {
		c.logger.Warn("unknown courier status encountered",
			zap.String("courier", string(courier)),
			zap.String("raw_status", base),
		)
	}

	snap := &domain.Snapshot{
		TrackingNumber: item.TrackingNumber,
		Courier:        courier,
		CourierName:    courier.DisplayName(),
		Status:         status,
		StatusCategory: category,
		Events:         events,
		Delivered:      category == domain.CategoryDelivered,
		LastUpdated:    time.Now(),
	}
	if latest := snap.LatestEvent(); latest != nil {
		snap.LatestDate = latest.Date
		snap.LatestTime = latest.Time
		snap.LatestPlace = latest.Location
	}
	return snap
}

// notFoundSnapshot records a courier-confirmed missing shipment so that
// "had data, now gone" is visible instead of serving stale state forever.
func (c *Coordinator) notFoundSnapshot(item TrackedItem, courier domain.Courier) *domain.Snapshot {
	return &domain.Snapshot{
		TrackingNumber: item.TrackingNumber,
		Courier:        courier,
		CourierName:    courier.DisplayName(),
		Status:         "Not Found",
		StatusCategory: domain.CategoryUnknown,
		Events:         []domain.TrackingEvent{},
		Delivered:      false,
		LastUpdated:    time.Now(),
	}
}
