package ports

import (
	"context"
	"errors"

	"greek-courier-tracker/internal/features/tracking/domain"
)

var (
	// ErrNotFound is returned when the courier explicitly reports that no
	// shipment exists for the tracking number.
	ErrNotFound = errors.New("shipment not found")
	// ErrTransport is returned on network failures, timeouts and non-2xx
	// responses. Transient: the previous snapshot must be preserved.
	ErrTransport = errors.New("courier transport error")
	// ErrParse is returned when the response shape does not match the
	// expected structure. Treated as transient like ErrTransport, since it
	// usually means the courier changed its markup or schema.
	ErrParse = errors.New("courier response parse error")
)

// CourierProvider is implemented by each courier adapter.
type CourierProvider interface {
	// Supports reports whether this provider handles the given courier.
	Supports(courier domain.Courier) bool
	// Fetch retrieves the raw tracking state for a tracking number.
	// An empty event list is a valid result (freshly created shipment);
	// errors wrap ErrNotFound, ErrTransport or ErrParse.
	Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error)
}

// SnapshotStore holds the latest successful snapshot per tracking number.
type SnapshotStore interface {
	// Get returns the snapshot for a tracking number, or nil when absent.
	Get(ctx context.Context, trackingNumber string) (*domain.Snapshot, error)
	// Put atomically replaces the snapshot for its tracking number.
	Put(ctx context.Context, snapshot *domain.Snapshot) error
	// Remove deletes the snapshot for a tracking number, if present.
	Remove(ctx context.Context, trackingNumber string) error
	// All returns every stored snapshot.
	All(ctx context.Context) ([]domain.Snapshot, error)
}
