package ingest

import (
	"regexp"
	"strings"
)

// UnknownTitle is the fallback used when no chunk of a document yields a
// title.
const UnknownTitle = "Unknown Title"

// TitleStrategy extracts a document title from one chunk of text.
// Implementations return ok=false when the chunk holds no title; the
// pipeline then moves on to the next chunk.
type TitleStrategy func(chunk string) (title string, ok bool)

var titleLabelRe = regexp.MustCompile(`(?i)title:\s*(.+)`)

// MatchLabel is the default TitleStrategy. It looks for a "title:" label in
// any case and captures the rest of that line, trimmed. The original case of
// the captured title is preserved.
func MatchLabel(chunk string) (string, bool) {
	m := titleLabelRe.FindStringSubmatch(chunk)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return "", false
	}
	return title, true
}
