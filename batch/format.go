package batch

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// Truncate shortens s to maxWidth terminal cells for progress display,
// keeping the end of the string. For article URLs the end carries the
// distinguishing slug; widths are measured in cells so CJK titles
// line up.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}
	if maxWidth < 4 {
		// Too narrow for an ellipsis prefix.
		return runewidth.Truncate(s, maxWidth, "")
	}

	// A double-width character straddling the cut point makes
	// TruncateLeft cut one cell short, so widen the cut until the
	// result fits.
	cut := width - maxWidth + 3
	out := runewidth.TruncateLeft(s, cut, "...")
	for runewidth.StringWidth(out) > maxWidth {
		cut++
		out = runewidth.TruncateLeft(s, cut, "...")
	}
	return out
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
