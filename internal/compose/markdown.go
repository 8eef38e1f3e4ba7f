package compose

import "strings"

// markdownReplacer blanks the characters Telegram's legacy Markdown treats as
// syntax.
var markdownReplacer = strings.NewReplacer(
	"[", " ",
	"]", " ",
	"(", " ",
	")", " ",
	"*", " ",
	"_", " ",
	"`", " ",
)

// SafeMarkdown makes an externally sourced string safe to embed inside
// emphasis or link markup. Authored content must not be passed through it.
func SafeMarkdown(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(markdownReplacer.Replace(text)), " ")
}

var urlReplacer = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")

// Link renders a bullet with an optional markdown link. A title that is
// nothing but markup falls back to the sanitized link as its text; with no
// link either there is nothing to render and Link returns "".
func Link(title, link string) string {
	title = SafeMarkdown(title)
	if title == "" {
		title = SafeMarkdown(link)
	}
	if title == "" {
		return ""
	}
	if link == "" {
		return "• " + title
	}
	return "• [" + title + "](" + urlReplacer.Replace(link) + ")"
}
