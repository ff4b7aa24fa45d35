// Package format renders counts, sizes and durations for the run summary.
package format

import (
	"fmt"
	"time"
)

// Count formats n with a singular or plural noun: "1 line", "3 lines".
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// Lines formats a line count.
func Lines(n int) string {
	return Count(n, "line", "lines")
}

// Size formats a file size in bytes for human display.
// Uses one decimal for KB and MB.
func Size(bytes int64) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/mb)
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/kb)
	case bytes == 1:
		return "1 byte"
	default:
		return fmt.Sprintf("%d bytes", bytes)
	}
}

// Elapsed formats the duration of a pass.
// Sub-second durations are shown in milliseconds, longer ones in seconds
// with one decimal.
func Elapsed(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
