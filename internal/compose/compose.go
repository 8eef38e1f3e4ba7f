// Package compose assembles the final Telegram message for each edition.
package compose

import (
	"fmt"
	"strings"
	"time"

	"github.com/deusflow/briefing/internal/newsapi"
	"github.com/deusflow/briefing/internal/rotation"
)

const separator = "━━━━━━━━━━━━━━━━━━━━"

var georgianWeekdays = [...]string{
	time.Sunday:    "კვირა",
	time.Monday:    "ორშაბათი",
	time.Tuesday:   "სამშაბათი",
	time.Wednesday: "ოთხშაბათი",
	time.Thursday:  "ხუთშაბათი",
	time.Friday:    "პარასკევი",
	time.Saturday:  "შაბათი",
}

var numberEmoji = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣"}

// Composer renders messages. Rotating content is authored and inserted as is;
// only externally sourced strings go through SafeMarkdown.
type Composer struct {
	recipient string
	brand     string
}

func New(recipient, brand string) *Composer {
	return &Composer{recipient: recipient, brand: brand}
}

// GeorgianWeekday returns the Georgian name of the day.
func GeorgianWeekday(d time.Weekday) string {
	return georgianWeekdays[d]
}

// Morning renders the bilingual brief around an already formatted digest.
func (c *Composer) Morning(now time.Time, digest string, e rotation.Entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🌅 *დილა მშვიდობისა! Good Morning, %s!*\n", c.recipient)
	fmt.Fprintf(&b, "📅 %s | %s\n\n", GeorgianWeekday(now.Weekday()), now.Format("January 02, 2006"))

	b.WriteString(separator + "\n")
	b.WriteString("📰 *TODAY'S INTEL:*\n")
	b.WriteString(separator + "\n\n")
	b.WriteString(digest)
	b.WriteString("\n\n")

	b.WriteString(separator + "\n")
	fmt.Fprintf(&b, "🪐 *%s — Top %d Tasks Today:*\n", c.brand, len(e.BrandTasks))
	for i, task := range e.BrandTasks {
		fmt.Fprintf(&b, "%s %s\n", bullet(i), task)
	}
	b.WriteString("\n")

	b.WriteString(separator + "\n")
	b.WriteString("🚀 *დღეს შენი დღეა — Make it count!* 💪")

	return strings.TrimSpace(b.String())
}

// English renders the daily briefing. listing is the raw news listing and
// global the optional NewsAPI headlines.
func (c *Composer) English(now time.Time, e rotation.Entry, listing string, global []newsapi.Headline) string {
	sections := []string{
		fmt.Sprintf("☀️ *Good Morning, %s!*\n\n📅 %s", c.recipient, now.Format("Monday, January 02, 2006")),
		"💬 *Motivational Quote:*\n" + e.Quote,
		"🧠 *Useful Today:*\n" + e.Insight,
		numbered(fmt.Sprintf("✅ *%d Tips for a Better Day:*", len(e.DayTips)), e.DayTips),
		numbered(fmt.Sprintf("🪐 *%d Tips for %s:*", len(e.BrandTips), c.brand), e.BrandTips),
		numbered(fmt.Sprintf("🧾 *%d Tasks to Do Today:*", len(e.Tasks)), e.Tasks),
		newsSection(listing, global),
		"🚀 *Win the day. One clean action at a time.*",
	}
	return strings.TrimSpace(strings.Join(sections, "\n\n"+separator+"\n\n"))
}

func newsSection(listing string, global []newsapi.Headline) string {
	var b strings.Builder
	// listing carries its own sector headers.
	b.WriteString(listing)

	if g := globalSection(global); g != "" {
		b.WriteString("\n\n")
		b.WriteString(g)
	}
	return b.String()
}

func globalSection(global []newsapi.Headline) string {
	if len(global) == 0 {
		return ""
	}
	lines := []string{"🗞️ *Global Headlines (NewsAPI):*", ""}
	for _, h := range global {
		line := Link(h.Title, h.Link)
		if line == "" {
			continue
		}
		lines = append(lines, "*"+strings.ToUpper(h.Topic)+":*", line, "")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func numbered(title string, entries []string) string {
	lines := []string{title}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, e))
	}
	return strings.Join(lines, "\n")
}

func bullet(i int) string {
	if i < len(numberEmoji) {
		return numberEmoji[i]
	}
	return fmt.Sprintf("%d.", i+1)
}
