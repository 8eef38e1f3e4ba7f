package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/deusflow/briefing/internal/news"
)

const (
	userAgent          = "Mozilla/5.0 (MorningBriefBot)"
	maxPageBytes       = 4 << 20
	defaultMinTitleLen = 10
)

// Scraper pulls headline anchors out of HTML listing pages for sites that
// have no usable feed.
type Scraper struct {
	client *http.Client
}

// New creates a Scraper with the given request timeout.
func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Scraper{client: &http.Client{Timeout: timeout}}
}

// Scrape returns up to limit items whose links start with linkPrefix.
// Failures are logged and produce an empty slice.
func (s *Scraper) Scrape(ctx context.Context, pageURL, linkPrefix string, minTitleLen, limit int) []news.Item {
	if minTitleLen <= 0 {
		minTitleLen = defaultMinTitleLen
	}

	body, err := s.download(ctx, pageURL)
	if err != nil {
		slog.Warn("Listing scrape failed", "source", pageURL, "error", err)
		return nil
	}

	items := extractBySelector(body, pageURL, linkPrefix, minTitleLen, limit)
	if len(items) == 0 {
		items = extractByPattern(body, pageURL, linkPrefix, minTitleLen, limit)
	}
	slog.Debug("Listing scraped", "source", pageURL, "items", len(items))
	return items
}

func (s *Scraper) download(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
}

// extractBySelector walks anchors matching a[href^=prefix].
func extractBySelector(body []byte, pageURL, prefix string, minTitleLen, limit int) []news.Item {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		slog.Debug("Error parsing HTML", "source", pageURL, "error", err)
		return nil
	}

	c := newCollector(pageURL, minTitleLen, limit)
	doc.Find(fmt.Sprintf("a[href^=%q]", prefix)).EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		return c.add(href, a.Text())
	})
	return c.items
}

// extractByPattern is the last resort for pages goquery cannot make sense of.
func extractByPattern(body []byte, pageURL, prefix string, minTitleLen, limit int) []news.Item {
	re := regexp.MustCompile(`href="(` + regexp.QuoteMeta(prefix) + `[^"]+)"[^>]*>([^<]+)`)

	c := newCollector(pageURL, minTitleLen, limit)
	for _, m := range re.FindAllSubmatch(body, -1) {
		if !c.add(string(m[1]), string(m[2])) {
			break
		}
	}
	return c.items
}

type collector struct {
	base        *url.URL
	minTitleLen int
	limit       int
	seen        news.Seen
	items       []news.Item
}

func newCollector(pageURL string, minTitleLen, limit int) *collector {
	base, _ := url.Parse(pageURL)
	return &collector{base: base, minTitleLen: minTitleLen, limit: limit, seen: news.Seen{}}
}

// add records one anchor and reports whether collection should continue.
func (c *collector) add(href, text string) bool {
	href = strings.TrimSpace(href)
	title := strings.Join(strings.Fields(text), " ")
	if href == "" || utf8.RuneCountInString(title) < c.minTitleLen {
		return true
	}

	item, ok := news.NewItem(title, c.resolve(href), "", 0)
	if !ok || !c.seen.Add(item) {
		return true
	}
	c.items = append(c.items, item)
	return c.limit <= 0 || len(c.items) < c.limit
}

func (c *collector) resolve(href string) string {
	if c.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return c.base.ResolveReference(ref).String()
}
