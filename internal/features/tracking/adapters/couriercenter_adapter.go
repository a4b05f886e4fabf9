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

// CourierCenterAdapter tracks shipments by scraping the courier.gr result
// page.
type CourierCenterAdapter struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewCourierCenterAdapter creates a CourierCenterAdapter. baseURL is the
// result page, e.g. "https://courier.gr/track/result".
func NewCourierCenterAdapter(baseURL string) *CourierCenterAdapter {
	return &CourierCenterAdapter{
		baseURL: baseURL,
		client:  httpclient.NewClient(30 * time.Second),
		logger:  logger.Get(),
	}
}

// Supports reports whether this adapter handles the given courier.
func (a *CourierCenterAdapter) Supports(c domain.Courier) bool {
	return c == domain.CourierCenter
}

// Fetch retrieves tracking events by scraping the Courier Center page.
func (a *CourierCenterAdapter) Fetch(ctx context.Context, trackingNumber string) (*domain.RawTracking, error) {
	pageURL := fmt.Sprintf("%s?tracknr=%s", a.baseURL, url.QueryEscape(trackingNumber))

	doc, err := fetchDocument(ctx, a.client, pageURL)
	if err != nil {
		return nil, err
	}

	if doc.Find("h4.error").Length() > 0 {
		return nil, fmt.Errorf("%w: %s", ports.ErrNotFound, trackingNumber)
	}

	var events []domain.TrackingEvent
	doc.Find("div.tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			// Header row.
			return
		}
		date := cleanText(row.Find("div#date").Text())
		if date == "" {
			return
		}
		events = append(events, domain.TrackingEvent{
			Date:      date,
			Time:      cleanText(row.Find("div#time").Text()),
			Location:  cleanText(row.Find("div#area").Text()),
			RawStatus: cleanText(row.Find("div#action").Text()),
		})
	})

	raw := &domain.RawTracking{Events: events}

	// The page carries an overall status banner separate from the rows.
	if banner := cleanText(doc.Find("div.status").Text()); banner != "" {
		raw.Status = banner
		raw.Delivered = strings.Contains(banner, "DeliveryCompleted")
	}

	a.logger.Debug("courier center page scraped",
		zap.String("tracking_number", trackingNumber),
		zap.Int("events", len(events)),
		zap.Bool("delivered", raw.Delivered),
	)

	return raw, nil
}
