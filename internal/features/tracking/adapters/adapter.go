package adapter

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"greek-courier-tracker/internal/features/tracking/ports"

	"github.com/PuerkitoBio/goquery"
)

// The courier endpoints reject requests without browser-like headers.
const (
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	acceptHTML       = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptJSON       = "application/json"
)

// doRequest executes a request and maps transport-level failures to
// ports.ErrTransport. Callers own the response body on success.
func doRequest(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrTransport, resp.StatusCode)
	}
	return resp, nil
}

// fetchDocument GETs an HTML page and parses it with goquery.
func fetchDocument(ctx context.Context, client *http.Client, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", acceptHTML)

	resp, err := doRequest(client, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrParse, err)
	}
	return doc, nil
}

// cleanText collapses whitespace in scraped cell text.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
