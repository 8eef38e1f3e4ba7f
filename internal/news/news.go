package news

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// Item is a single normalized headline. Values are never mutated after
// NewItem returns them.
type Item struct {
	Title   string
	Link    string
	Summary string
}

// Category groups the feed sources of one sector.
type Category struct {
	Name     string
	Sources  []string
	Quota    int
	Fallback *FallbackSource
	Editions []string
}

// FallbackSource describes the secondary acquisition used when every primary
// source of a category came back empty.
type FallbackSource struct {
	Feed        string
	Listing     string
	LinkPrefix  string
	MinTitleLen int
}

// InEdition reports whether the category is published in the given edition.
// A category without an explicit edition list is published everywhere.
func (c Category) InEdition(edition string) bool {
	if len(c.Editions) == 0 {
		return true
	}
	for _, e := range c.Editions {
		if strings.EqualFold(e, edition) {
			return true
		}
	}
	return false
}

// CategoryNews is the aggregation result for one category, kept in
// configuration order by every consumer.
type CategoryNews struct {
	Name  string
	Items []Item
}

// NewItem builds an Item from raw feed or page values. It returns false when
// no usable title remains after cleanup.
func NewItem(title, link, summary string, summaryMax int) (Item, bool) {
	title = collapseSpace(PlainText(title))
	if title == "" {
		return Item{}, false
	}
	summary = Truncate(collapseSpace(PlainText(summary)), summaryMax)
	return Item{
		Title:   title,
		Link:    strings.TrimSpace(link),
		Summary: summary,
	}, true
}

// Key is the identity used for de-duplication: the lower-cased link when
// present, otherwise the normalized title.
func (i Item) Key() string {
	if i.Link != "" {
		return "link:" + strings.ToLower(i.Link)
	}
	return "title:" + strings.ToLower(collapseSpace(i.Title))
}

// Seen tracks item identities within a single accumulation.
type Seen map[string]struct{}

// Add records the item and reports whether it was new.
func (s Seen) Add(i Item) bool {
	k := i.Key()
	if _, dup := s[k]; dup {
		return false
	}
	s[k] = struct{}{}
	return true
}

// Truncate cuts s to at most max runes. max <= 0 disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:max]))
}

// PlainText strips markup from feed descriptions, which frequently carry
// escaped HTML.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return doc.Text()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
