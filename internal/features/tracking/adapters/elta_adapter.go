package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"greek-courier-tracker/internal/core/httpclient"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"

	"go.uber.org/zap"
)

// EltaAdapter tracks shipments through the ELTA Courier form-POST API.
type EltaAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewEltaAdapter creates an EltaAdapter. baseURL is the site root, e.g.
// "https://www.elta-courier.gr".
func NewEltaAdapter(baseURL string) *EltaAdapter {
	return &EltaAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
	}
}

// eltaResponse is the outer JSON envelope of track.php.
type eltaResponse struct {
	Status int             `json:"status"`
	Result json.RawMessage `json:"result"`
}

// eltaEntry is the per-tracking-number payload inside the envelope.
// Status 1 carries an event list, 2 a plain message, anything else means
// the number is unknown to ELTA.
type eltaEntry struct {
	Status int             `json:"status"`
	Result json.RawMessage `json:"result"`
}

type eltaEvent struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Status string `json:"status"`
	Place  string `json:"place"`
}

// Supports reports whether this adapter handles the given courier.
func (a *EltaAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierElta
}

// Fetch retrieves tracking events from ELTA.
func (a *EltaAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	form := fmt.Sprintf("number=%s&s=0", trackingNumber)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		a.baseURL+"/track.php", strings.NewReader(form))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptJSON)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", a.baseURL)
	req.Header.Set("Referer", fmt.Sprintf("%s/search?br=%s", a.baseURL, trackingNumber))

	resp, err := doRequest(a.client, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrTransport, err)
	}

	return a.parseResponse(trackingNumber, body)
}

func (a *EltaAdapter) parseResponse(trackingNumber string, body []byte) (*domain.RawTracking, error) {
	var envelope eltaResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}
	if envelope.Status != 1 {
		return nil, fmt.Errorf("%w: elta envelope status %d", ports.ErrParse, envelope.Status)
	}

	var entries map[string]eltaEntry
	if err := json.Unmarshal(envelope.Result, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}

	entry, ok := entries[trackingNumber]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	switch entry.Status {
	case 1:
		var rawEvents []eltaEvent
		if err := json.Unmarshal(entry.Result, &rawEvents); err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
		}

		events := make([]domain.TrackingEvent, 0, len(rawEvents))
		for _, e := range rawEvents {
			events = append(events, domain.TrackingEvent{
				Date:      e.Date,
				Time:      e.Time,
				Location:  e.Place,
				RawStatus: e.Status,
			})
		}
		return &domain.RawTracking{Events: events}, nil

	case 2:
		// Message-only response: the shipment exists but has no scan
		// events yet.
		var message string
		if err := json.Unmarshal(entry.Result, &message); err != nil {
			return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
		}
		a.logger.Debug("elta returned message-only result",
			zap.String("tracking_number", trackingNumber),
			zap.String("message", message),
		)
		return &domain.RawTracking{Status: message}, nil

	default:
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}
}
