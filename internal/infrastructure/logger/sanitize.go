package logger

import (
	"fmt"
	"strings"
)

// SanitizeForLog escapes control characters so client supplied values such
// as file paths cannot forge log lines or drive the terminal. Printable
// Unicode passes through.
func SanitizeForLog(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range s {
		switch {
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 32 || r == 127:
			fmt.Fprintf(&b, `\x%02x`, r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SanitizePaths renders a selection for a log line, keeping at most limit
// entries.
func SanitizePaths(paths []string, limit int) string {
	shown := paths
	if limit > 0 && len(paths) > limit {
		shown = paths[:limit]
	}

	parts := make([]string, len(shown))
	for i, p := range shown {
		parts[i] = SanitizeForLog(p)
	}
	out := strings.Join(parts, "|")
	if len(shown) < len(paths) {
		out += fmt.Sprintf("|... (%d more)", len(paths)-len(shown))
	}
	return out
}
