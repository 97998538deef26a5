package retrieval

import (
	"strings"
)

const blockSeparator = "\n\n"

// Render formats ranked documents as prompt context. Each document becomes
//
//	Document: <title>
//	Category: <category>
//	Content: <excerpt>
//
// and blocks are separated by a blank line. No documents render as "".
func Render(ranked []Ranked, cfg Config) string {
	if len(ranked) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(ranked))
	for _, r := range ranked {
		var b strings.Builder
		b.WriteString("Document: ")
		b.WriteString(r.Document.Title)
		b.WriteString("\nCategory: ")
		b.WriteString(r.Document.Category)
		b.WriteString("\nContent: ")
		b.WriteString(Excerpt(r.Document.Content, cfg.ExcerptLength, cfg.Ellipsis))
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, blockSeparator)
}

// Excerpt cuts content to limit runes and appends ellipsis if anything was cut
func Excerpt(content string, limit int, ellipsis string) string {
	if limit < 1 {
		return ""
	}

	count := 0
	for i := range content {
		if count == limit {
			return content[:i] + ellipsis
		}
		count++
	}
	return content
}
