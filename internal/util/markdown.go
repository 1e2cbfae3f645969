package util

import (
	"html"
	"regexp"
	"strings"
)

// The lesson renderer is deliberately a fixed substitution pass, not a
// markdown parser: bold, italic, headings 1-3 and list items only.
// Input is HTML-escaped first, so author-supplied markup can never reach
// the output verbatim.
var (
	reHeading3 = regexp.MustCompile(`(?m)^### (.+)$`)
	reHeading2 = regexp.MustCompile(`(?m)^## (.+)$`)
	reHeading1 = regexp.MustCompile(`(?m)^# (.+)$`)
	reBold     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic   = regexp.MustCompile(`\*([^*]+)\*`)
	reListItem = regexp.MustCompile(`(?m)^- (.+)$`)
)

// RenderLessonContent converts lesson markup to safe HTML.
func RenderLessonContent(content string) string {
	if content == "" {
		return ""
	}

	out := html.EscapeString(content)

	out = reHeading3.ReplaceAllString(out, "<h3>$1</h3>")
	out = reHeading2.ReplaceAllString(out, "<h2>$1</h2>")
	out = reHeading1.ReplaceAllString(out, "<h1>$1</h1>")
	out = reBold.ReplaceAllString(out, "<strong>$1</strong>")
	out = reItalic.ReplaceAllString(out, "<em>$1</em>")
	out = reListItem.ReplaceAllString(out, "<li>$1</li>")

	var b strings.Builder
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "<h") || strings.HasPrefix(trimmed, "<li>") {
			b.WriteString(trimmed)
			b.WriteString("\n")
			continue
		}
		b.WriteString("<p>")
		b.WriteString(trimmed)
		b.WriteString("</p>\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}
