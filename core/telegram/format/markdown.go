package format

import "strings"

var markdownReplacer = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes user-supplied text for Telegram legacy Markdown.
func EscapeMarkdown(s string) string {
	return markdownReplacer.Replace(s)
}
