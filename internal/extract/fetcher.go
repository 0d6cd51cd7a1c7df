package extract

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Browser-like UA; the careers site serves a stripped page to obvious bots.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// PageFetcher retrieves the careers listing page over HTTP.
type PageFetcher struct {
	baseURL  string
	team     string
	jobType  string
	pageSize int
	client   *http.Client
}

// NewPageFetcher constructs a fetcher with a shared HTTP client.
func NewPageFetcher(baseURL, team, jobType string, pageSize int, timeout time.Duration) *PageFetcher {
	return &PageFetcher{
		baseURL:  baseURL,
		team:     team,
		jobType:  jobType,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
	}
}

// URL returns the full listing URL including the search filters.
func (f *PageFetcher) URL() string {
	params := url.Values{}
	params.Set("search", "")
	params.Set("team", f.team)
	params.Set("jobtype", f.jobType)
	params.Set("pagesize", strconv.Itoa(f.pageSize))
	return f.baseURL + "?" + params.Encode() + "#results"
}

// FetchPage GETs the listing page and returns the raw body. Any transport or
// status error is returned as-is for the caller to classify.
func (f *PageFetcher) FetchPage(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("careers page returned %d", resp.StatusCode)
	}

	return body, nil
}
