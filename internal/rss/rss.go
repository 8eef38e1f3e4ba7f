package rss

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/deusflow/briefing/internal/metrics"
	"github.com/deusflow/briefing/internal/news"
)

const (
	userAgent      = "MorningBriefBot/2.0"
	maxFeedBytes   = 4 << 20
	defaultTimeout = 12 * time.Second
	defaultSummary = 200
)

// Fetcher downloads and parses one Atom or RSS feed per call.
type Fetcher struct {
	client     *http.Client
	summaryMax int
}

// NewFetcher creates a Fetcher whose requests are bounded by timeout.
func NewFetcher(timeout time.Duration, summaryMax int) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if summaryMax <= 0 {
		summaryMax = defaultSummary
	}
	return &Fetcher{
		client:     &http.Client{Timeout: timeout},
		summaryMax: summaryMax,
	}
}

// Fetch returns up to limit items from url. Any network or parse error is
// logged and yields an empty slice so one broken feed never stops the others.
func (f *Fetcher) Fetch(ctx context.Context, url string, limit int) []news.Item {
	items, err := f.fetch(ctx, url, limit)
	if err != nil {
		slog.Warn("RSS fetch failed", "source", url, "error", err)
		metrics.Global.IncrementSourcesFailed()
		return nil
	}
	metrics.Global.IncrementSourcesFetched()
	slog.Debug("Loaded feed", "source", url, "items", len(items))
	return items
}

func (f *Fetcher) fetch(ctx context.Context, url string, limit int) ([]news.Item, error) {
	body, err := f.download(ctx, url)
	if err != nil {
		return nil, err
	}

	// Dialect is decided by the root element; JSON feeds are not accepted.
	if kind := gofeed.DetectFeedType(bytes.NewReader(body)); kind != gofeed.FeedTypeAtom && kind != gofeed.FeedTypeRSS {
		return nil, fmt.Errorf("unsupported feed document")
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []news.Item
	for _, it := range feed.Items {
		if limit > 0 && len(items) >= limit {
			break
		}
		if it == nil {
			continue
		}
		summary := it.Description
		if summary == "" {
			summary = it.Content
		}
		item, ok := news.NewItem(it.Title, itemLink(it), summary, f.summaryMax)
		if !ok {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Debug("Failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func itemLink(it *gofeed.Item) string {
	if it.Link != "" {
		return it.Link
	}
	if len(it.Links) > 0 {
		return it.Links[0]
	}
	return ""
}
