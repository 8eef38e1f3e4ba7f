package digest

import (
	"strings"

	"github.com/deusflow/briefing/internal/compose"
	"github.com/deusflow/briefing/internal/news"
)

const (
	rawTitleMax   = 100
	noNewsMessage = "_No news available._"
)

// FormatRaw is the deterministic listing used whenever enrichment is not
// available. Every category gets a header; empty ones get a placeholder.
func FormatRaw(sectors []news.CategoryNews) string {
	var lines []string
	for _, s := range sectors {
		lines = append(lines, "*"+s.Name+"*")
		rendered := 0
		for _, it := range s.Items {
			if line := compose.Link(news.Truncate(it.Title, rawTitleMax), it.Link); line != "" {
				lines = append(lines, line)
				rendered++
			}
		}
		if rendered == 0 {
			lines = append(lines, noNewsMessage)
		}
		lines = append(lines, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
