package news

import (
	"context"
	"log/slog"
)

// ListingScraper extracts headline links from an HTML listing page.
type ListingScraper interface {
	Scrape(ctx context.Context, pageURL, linkPrefix string, minTitleLen, limit int) []Item
}

// FallbackResolver tries a category's secondary feed, then its listing page.
type FallbackResolver struct {
	feeds   SourceFetcher
	listing ListingScraper
}

func NewFallbackResolver(feeds SourceFetcher, listing ListingScraper) *FallbackResolver {
	return &FallbackResolver{feeds: feeds, listing: listing}
}

// Resolve never fails; an empty result means the sector has no news today.
func (r *FallbackResolver) Resolve(ctx context.Context, c Category) []Item {
	fb := c.Fallback
	if fb == nil {
		return nil
	}

	if fb.Feed != "" && r.feeds != nil {
		var items []Item
		seen := Seen{}
		for _, it := range r.feeds.Fetch(ctx, fb.Feed, c.Quota) {
			// Secondary feeds contribute headlines only.
			it.Summary = ""
			if seen.Add(it) {
				items = append(items, it)
			}
		}
		if len(items) > 0 {
			slog.Info("Fallback feed succeeded", "sector", c.Name, "items", len(items))
			return items
		}
	}

	if fb.Listing != "" && r.listing != nil {
		items := r.listing.Scrape(ctx, fb.Listing, fb.LinkPrefix, fb.MinTitleLen, c.Quota)
		if len(items) > 0 {
			slog.Info("Fallback scrape succeeded", "sector", c.Name, "items", len(items))
			return items
		}
	}

	slog.Warn("Fallback found nothing", "sector", c.Name)
	return nil
}
