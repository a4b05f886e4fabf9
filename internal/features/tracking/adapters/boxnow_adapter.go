package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"greek-courier-tracker/internal/core/httpclient"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// BoxNowAdapter tracks locker deliveries through the Box Now parcel API.
type BoxNowAdapter struct {
	apiURL string
	webURL string
	client *http.Client
	logger *zap.Logger
}

// NewBoxNowAdapter creates a BoxNowAdapter. apiURL is the full track
// endpoint, e.g. "https://api-production.boxnow.gr/api/v1/parcels:track".
func NewBoxNowAdapter(apiURL string) *BoxNowAdapter {
	return &BoxNowAdapter{
		apiURL: apiURL,
		webURL: "https://boxnow.gr",
		client: httpclient.NewClient(30 * time.Second),
		logger: logger.Get(),
	}
}

type boxNowRequest struct {
	ParcelID string `json:"parcelId"`
}

type boxNowResponse struct {
	Data []struct {
		State  string `json:"state"`
		Events []struct {
			CreateTime          string `json:"createTime"`
			Type                string `json:"type"`
			LocationDisplayName string `json:"locationDisplayName"`
		} `json:"events"`
	} `json:"data"`
}

// Supports reports whether this adapter handles the given courier.
func (a *BoxNowAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierBoxNow
}

// Fetch retrieves tracking events from Box Now.
func (a *BoxNowAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	payload, err := json.Marshal(boxNowRequest{ParcelID: trackingNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", a.webURL)
	req.Header.Set("Referer", a.webURL+"/")

	resp, err := doRequest(a.client, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var parsed boxNowResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}

	if len(parsed.Data) == 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	parcel := parsed.Data[0]
	events := make([]domain.TrackingEvent, 0, len(parcel.Events))
	for _, e := range parcel.Events {
		date, clock := splitISOTimestamp(e.CreateTime)
		event := domain.TrackingEvent{
			Date:      date,
			Time:      clock,
			Location:  e.LocationDisplayName,
			RawStatus: e.Type,
		}
		if ts, err := time.Parse("2006-01-02T15:04:05", trimFraction(e.CreateTime)); err == nil {
			event.Timestamp = ts
		}
		events = append(events, event)
	}

	a.logger.Debug("boxnow parcel fetched",
		zap.String("tracking_number", trackingNumber),
		zap.String("state", parcel.State),
		zap.Int("events", len(events)),
	)

	return &domain.RawTracking{
		Events:    events,
		Status:    parcel.State,
		Delivered: parcel.State == "delivered",
	}, nil
}
