package logger

import "strings"

// Preview returns a one-line excerpt of a response body for debug logs. Runs
// of whitespace collapse to a single space and anything past limit runes is
// cut off and marked with an ellipsis.
func Preview(body []byte, limit int) string {
	if limit <= 0 {
		return ""
	}

	text := strings.Join(strings.Fields(string(body)), " ")
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
