package utils

import (
	"path/filepath"
	"strings"
)

// Truncate returns s truncated to maxLen characters, with "..." appended if truncated.
// If maxLen is 0 or negative, returns s unchanged.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// Preview returns the first n characters of s (rune-safe, no ellipsis).
// If n is 0 or negative, returns s unchanged.
func Preview(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// DownloadName derives the download artifact name for a converted file:
// converted_<base>.txt, where <base> is name without directories or extension.
func DownloadName(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return "converted_" + base + ".txt"
}
