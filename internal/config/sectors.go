package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/deusflow/briefing/internal/news"
)

type sectorsFile struct {
	Sectors []sectorEntry `yaml:"sectors"`
}

type sectorEntry struct {
	Name     string         `yaml:"name"`
	Feeds    []string       `yaml:"feeds"`
	Quota    int            `yaml:"quota"`
	Editions []string       `yaml:"editions"`
	Fallback *fallbackEntry `yaml:"fallback"`
}

type fallbackEntry struct {
	Feed        string `yaml:"feed"`
	Listing     string `yaml:"listing"`
	LinkPrefix  string `yaml:"link_prefix"`
	MinTitleLen int    `yaml:"min_title_len"`
}

// LoadSectors reads the sector catalogue from path. A missing file yields the
// built-in catalogue. quota applies to sectors that do not set their own.
func LoadSectors(path string, quota int) ([]news.Category, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Info("Sectors file not found, using built-in catalogue", "path", path)
		return DefaultSectors(quota), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sectors file: %w", err)
	}
	return ParseSectors(data, quota)
}

func ParseSectors(data []byte, quota int) ([]news.Category, error) {
	var f sectorsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode sectors: %w", err)
	}
	if len(f.Sectors) == 0 {
		return nil, fmt.Errorf("sectors file defines no sectors")
	}

	out := make([]news.Category, 0, len(f.Sectors))
	for i, s := range f.Sectors {
		if s.Name == "" {
			return nil, fmt.Errorf("sector %d has no name", i+1)
		}
		c := news.Category{
			Name:     s.Name,
			Sources:  s.Feeds,
			Quota:    s.Quota,
			Editions: s.Editions,
		}
		if c.Quota <= 0 {
			c.Quota = quota
		}
		if s.Fallback != nil {
			c.Fallback = &news.FallbackSource{
				Feed:        s.Fallback.Feed,
				Listing:     s.Fallback.Listing,
				LinkPrefix:  s.Fallback.LinkPrefix,
				MinTitleLen: s.Fallback.MinTitleLen,
			}
		}
		out = append(out, c)
	}
	return out, nil
}

func bmgeFallback() *news.FallbackSource {
	return &news.FallbackSource{
		Feed:        "https://bm.ge/rss",
		Listing:     "https://bm.ge/category/all",
		LinkPrefix:  "/news/",
		MinTitleLen: 10,
	}
}

// DefaultSectors is the catalogue used when no sectors file exists.
func DefaultSectors(quota int) []news.Category {
	morning := []string{EditionMorning}
	return []news.Category{
		{
			Name:     "🤖 AI & Tech",
			Sources:  []string{"https://techcrunch.com/feed/", "https://www.theverge.com/rss/ai-artificial-intelligence/index.xml"},
			Quota:    quota,
			Editions: morning,
		},
		{
			Name:     "₿ Crypto & Finance",
			Sources:  []string{"https://feeds.feedburner.com/CoinDesk", "https://cointelegraph.com/rss"},
			Quota:    quota,
			Editions: morning,
		},
		{
			Name:     "🚀 Space & Astronomy",
			Sources:  []string{"https://www.nasa.gov/rss/dyn/breaking_news.rss", "https://www.space.com/feeds/all"},
			Quota:    quota,
			Editions: morning,
		},
		{
			Name:     "🛍️ E-commerce & Retail",
			Sources:  []string{"https://feeds.feedburner.com/practicalecommerce", "https://techcrunch.com/tag/e-commerce/feed/"},
			Quota:    quota,
			Editions: morning,
		},
		{
			Name:     "🇬🇪 Georgian Business",
			Sources:  []string{"https://bm.ge/rss", "https://tabula.ge/geo/rss.xml"},
			Quota:    quota,
			Fallback: bmgeFallback(),
			Editions: morning,
		},
		{
			Name:     "📰 BM.ge Top News",
			Quota:    quota,
			Fallback: &news.FallbackSource{Listing: "https://bm.ge/category/all", LinkPrefix: "/news/", MinTitleLen: 10},
			Editions: []string{EditionEnglish},
		},
	}
}
