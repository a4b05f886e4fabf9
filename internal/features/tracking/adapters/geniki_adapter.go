package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"greek-courier-tracker/internal/core/httpclient"
	"greek-courier-tracker/internal/core/logger"
	"greek-courier-tracker/internal/features/tracking/domain"
	"greek-courier-tracker/internal/features/tracking/ports"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// GenikiAdapter tracks shipments by scraping the Geniki Taxydromiki
// tracking page.
type GenikiAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewGenikiAdapter creates a GenikiAdapter. baseURL is the site root, e.g.
// "https://www.taxydromiki.com".
func NewGenikiAdapter(baseURL string) *GenikiAdapter {
	return &GenikiAdapter{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
	}
}

// Supports reports whether this adapter handles the given courier.
func (a *GenikiAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierGeniki
}

// Fetch retrieves tracking events by scraping the Geniki page.
func (a *GenikiAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	pageURL := fmt.Sprintf("%s/track/%s", a.baseURL, trackingNumber)

	doc, err := fetchDocument(ctx, a.client, pageURL)
	if err != nil {
		return nil, err
	}

	if doc.Find("div.empty-text").Length() > 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	var events []domain.TrackingEvent
	doc.Find("div.tracking-checkpoint").Each(func(_ int, checkpoint *goquery.Selection) {
		status := cleanText(checkpoint.Find("div.checkpoint-status").Text())
		location := cleanText(checkpoint.Find("div.checkpoint-location").Text())

		// The date cell reads "Δευτέρα, 15/01/2025"; drop the weekday.
		date := cleanText(checkpoint.Find("div.checkpoint-date").Text())
		if _, d, found := strings.Cut(date, ", "); found {
			date = d
		}

		events = append(events, domain.TrackingEvent{
			Date:      date,
			Time:      cleanText(checkpoint.Find("div.checkpoint-time").Text()),
			Location:  location,
			RawStatus: status,
		})
	})

	a.logger.Debug("geniki page scraped",
		zap.String("tracking_number", trackingNumber),
		zap.Int("events", len(events)),
	)

	return &domain.RawTracking{Events: events}, nil
}
