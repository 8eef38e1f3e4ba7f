package digest

import (
	"fmt"
	"strings"

	"github.com/deusflow/briefing/internal/news"
)

const promptContextMax = 150

// BuildPrompt renders the single batched enrichment request.
func BuildPrompt(recipient string, sectors []news.CategoryNews) string {
	var block strings.Builder
	names := make([]string, 0, len(sectors))
	for _, s := range sectors {
		names = append(names, s.Name)
		fmt.Fprintf(&block, "\n## %s\n", s.Name)
		if len(s.Items) == 0 {
			block.WriteString("No articles available.\n")
			continue
		}
		for i, it := range s.Items {
			fmt.Fprintf(&block, "%d. %s\n", i+1, it.Title)
			if it.Summary != "" {
				fmt.Fprintf(&block, "   Context: %s\n", news.Truncate(it.Summary, promptContextMax))
			}
		}
	}

	var format strings.Builder
	for _, n := range names {
		fmt.Fprintf(&format, "*%s*\n[English summary]\n[Georgian summary]\n\n", n)
	}

	return fmt.Sprintf(`You are a sharp morning news editor writing a daily brief for %[1]s, an entrepreneur who runs a telescope shop and follows tech, crypto, space, e-commerce and Georgian business news.

Here are today's top headlines from %[2]d sectors:
%[3]s
Write a clean morning digest with these exact rules:
1. For each sector with news, write 2-3 sentences summarizing the key stories, first in ENGLISH, then the same summary in GEORGIAN (ქართული).
2. Keep each sector summary tight: what happened and why it matters to an entrepreneur like %[1]s.
3. Use Telegram Markdown: *bold* for sector names, plain text for summaries.
4. Skip sectors with no news gracefully.
5. Add one sentence at the end (in both languages) with a practical "so what?" for %[1]s's business or mindset.

Format:
%[4]s... and so on.

End with:
*💡 Today's Takeaway:*
[English]
[Georgian]`, recipient, len(sectors), block.String(), format.String())
}
