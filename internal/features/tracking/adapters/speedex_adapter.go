package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"greek-courier-tracker/internal/core/httpclient"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// SpeedexAdapter tracks shipments by scraping the SpeedEx track-and-trace
// page. The markup is brittle; missing optional cells must not fail a row.
type SpeedexAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewSpeedexAdapter creates a SpeedexAdapter. baseURL is the tracking page,
// e.g. "http://www.speedex.gr/speedex/NewTrackAndTrace.aspx".
func NewSpeedexAdapter(baseURL string) *SpeedexAdapter {
	return &SpeedexAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
	}
}

// Supports reports whether this adapter handles the given courier.
func (a *SpeedexAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierSpeedex
}

// Fetch retrieves tracking events by scraping the SpeedEx page.
func (a *SpeedexAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	pageURL := fmt.Sprintf("%s?number=%s", a.baseURL, url.QueryEscape(trackingNumber))

	doc, err := fetchDocument(ctx, a.client, pageURL)
	if err != nil {
		return nil, err
	}

	if doc.Find("div.alert-warning").Length() > 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	var events []domain.TrackingEvent
	doc.Find("div.timeline-card").Each(func(_ int, card *goquery.Selection) {
		status := cleanText(card.Find("h4.card-title").Text())
		info := cleanText(card.Find("span.font-small-3").Text())

		// Info text reads "Αθήνα, 15/01/2025 στις 14:30"; any part may
		// be missing.
		var location, date, clock string
		if info != "" {
			place, rest, found := strings.Cut(info, ", ")
			if found {
				location = place
				if d, t, ok := strings.Cut(rest, " στις "); ok {
					date = strings.TrimSpace(d)
					clock = strings.TrimSpace(t)
				} else {
					date = strings.TrimSpace(rest)
				}
			} else {
				date = info
			}
		}

		events = append(events, domain.TrackingEvent{
			Date:      date,
			Time:      clock,
			Location:  location,
			RawStatus: status,
		})
	})

	a.logger.Debug("speedex page scraped",
		zap.String("tracking_number", trackingNumber),
		zap.Int("events", len(events)),
	)

	return &domain.RawTracking{Events: events}, nil
}
