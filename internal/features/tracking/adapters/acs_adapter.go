package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greek-courier-tracker/internal/core/httpclient"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// ACSAdapter tracks shipments through the ACS Courier parcel API.
type ACSAdapter struct {
	baseURL string
	webURL  string
	client  *http.Client
	logger  *zap.Logger
	now     func() time.Time
}

// NewACSAdapter creates an ACSAdapter. baseURL is the API root, e.g.
// "https://api.acscourier.net".
func NewACSAdapter(baseURL string) *ACSAdapter {
	return &ACSAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		webURL:  "https://www.acscourier.net",
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
		now:     time.Now,
	}
}

// acsResponse is the parcel search payload.
type acsResponse struct {
	Items []struct {
		IsDelivered   bool `json:"isDelivered"`
		StatusHistory []struct {
			ControlPointDate string `json:"controlPointDate"`
			ControlPoint     string `json:"controlPoint"`
			Description      string `json:"description"`
		} `json:"statusHistory"`
	} `json:"items"`
}

// DeriveKey computes the per-request x-encrypted-key header. The key is a
// pure function of the tracking number and the current UTC hour and must
// be recomputed on every call; the API rejects stale keys.
func DeriveKey(trackingNumber string, now time.Time) string {
	seed := fmt.Sprintf("%s|%s", trackingNumber, now.UTC().Format("2006-01-02T15"))
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])
}

// Supports reports whether this adapter handles the given courier.
func (a *ACSAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierACS
}

// Fetch retrieves tracking events from ACS.
func (a *ACSAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	url := fmt.Sprintf("%s/api/parcels/search/%s", a.baseURL, trackingNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Origin", a.webURL)
	req.Header.Set("Referer", a.webURL+"/")
	req.Header.Set("x-country", "GR")
	req.Header.Set("x-encrypted-key", DeriveKey(trackingNumber, a.now()))

	resp, err := doRequest(a.client, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed acsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}

	if len(parsed.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	parcel := parsed.Items[0]
	events := make([]domain.TrackingEvent, 0, len(parcel.StatusHistory))
	for _, h := range parcel.StatusHistory {
		date, clock := splitISOTimestamp(h.ControlPointDate)
		event := domain.TrackingEvent{
			Date:      date,
			Time:      clock,
			Location:  h.ControlPoint,
			RawStatus: h.Description,
		}
		if ts, err := time.Parse("2006-01-02T15:04:05", trimFraction(h.ControlPointDate)); err == nil {
			event.Timestamp = ts
		}
		events = append(events, event)
	}

	a.logger.Debug("acs parcel fetched",
		zap.String("tracking_number", trackingNumber),
		zap.Bool("is_delivered", parcel.IsDelivered),
		zap.Int("events", len(events)),
	)

	return &domain.RawTracking{
		Events:    events,
		Delivered: parcel.IsDelivered,
	}, nil
}

// splitISOTimestamp splits "2025-01-15T13:55:32" into date and HH:MM parts.
func splitISOTimestamp(s string) (string, string) {
	date, rest, found := strings.Cut(s, "T")
	if !found {
		return s, ""
	}
	if len(rest) >= 5 {
		return date, rest[:5]
	}
	return date, rest
}

// trimFraction drops fractional seconds and a trailing Z from a timestamp.
func trimFraction(s string) string {
	s = strings.TrimSuffix(s, "Z")
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i]
	}
	return s
}
