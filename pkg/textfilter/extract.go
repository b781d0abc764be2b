package textfilter

import (
	"strings"
)

// ExtractJSON pulls a JSON object out of raw model output. It strips
// markdown code fences and any prose before the first '{' or after the
// last '}'. Text without an object is returned trimmed.
func ExtractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.Contains(s[:nl], "{") {
			s = s[nl+1:] // language tag line such as "json"
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

// CleanNarrative normalizes narrator prose for display: trims surrounding
// whitespace and collapses runs of three or more newlines to one blank line.
func CleanNarrative(text string) string {
	s := strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}
	return s
}
