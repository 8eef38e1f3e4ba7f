package news

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/deusflow/briefing/internal/metrics"
)

// SourceFetcher loads one source. Implementations must never fail the
// caller: errors are logged and reported as an empty slice.
type SourceFetcher interface {
	Fetch(ctx context.Context, url string, limit int) []Item
}

// Resolver provides the secondary acquisition for an empty category.
type Resolver interface {
	Resolve(ctx context.Context, c Category) []Item
}

// Aggregator collects items for categories from their configured sources.
type Aggregator struct {
	fetcher     SourceFetcher
	fallback    Resolver
	concurrency int
}

// NewAggregator creates an Aggregator. fallback may be nil.
func NewAggregator(fetcher SourceFetcher, fallback Resolver, concurrency int) *Aggregator {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Aggregator{fetcher: fetcher, fallback: fallback, concurrency: concurrency}
}

// Collect aggregates every category in order. Categories that end up empty
// go through the fallback resolver exactly once.
func (a *Aggregator) Collect(ctx context.Context, categories []Category) []CategoryNews {
	out := make([]CategoryNews, 0, len(categories))
	for _, c := range categories {
		items := a.Aggregate(ctx, c)
		if len(items) == 0 && a.fallback != nil {
			slog.Info("Sector empty, trying fallback", "sector", c.Name)
			metrics.Global.IncrementFallbacks()
			items = a.fallback.Resolve(ctx, c)
			if len(items) > c.Quota && c.Quota > 0 {
				items = items[:c.Quota]
			}
		}
		slog.Info("Sector collected", "sector", c.Name, "items", len(items))
		out = append(out, CategoryNews{Name: c.Name, Items: items})
	}
	return out
}

// Aggregate fetches all sources of one category through a bounded pool and
// merges the results in source order, dropping duplicates, up to the quota.
// Every source is fetched, so per-source health counters cover sources whose
// items end up past the quota; duplicates are only counted below it.
func (a *Aggregator) Aggregate(ctx context.Context, c Category) []Item {
	results := make([][]Item, len(c.Sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, src := range c.Sources {
		g.Go(func() error {
			results[i] = a.fetcher.Fetch(gctx, src, c.Quota)
			return nil
		})
	}
	// Workers never return errors; Wait only joins them.
	_ = g.Wait()

	return merge(results, c.Quota)
}

func merge(results [][]Item, quota int) []Item {
	seen := Seen{}
	var items []Item
	for _, batch := range results {
		for _, it := range batch {
			if quota > 0 && len(items) >= quota {
				return items
			}
			if !seen.Add(it) {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			items = append(items, it)
		}
	}
	return items
}
