package list

import (
	"html"
	"regexp"
	"strings"
)

// Rich-text columns come back as HTML fragments; these strip them to one line.
var (
	scriptTag    = regexp.MustCompile(`(?is)<(script|style)[^>]*>.*?</(script|style)>`)
	htmlComments = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockTags    = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|tr|td|blockquote|pre|table)[^>]*>`)
	allTags      = regexp.MustCompile(`<[^>]+>`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// PlainText flattens an HTML fragment into a single line of readable text.
// Plain input passes through with only whitespace collapsed.
func PlainText(s string) string {
	if strings.ContainsRune(s, '<') {
		s = scriptTag.ReplaceAllString(s, "")
		s = htmlComments.ReplaceAllString(s, "")
		s = blockTags.ReplaceAllString(s, " ")
		s = allTags.ReplaceAllString(s, "")
	}
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}
