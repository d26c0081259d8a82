// Package text provides helpers for shaping model output before it is sent
// to a chat platform.
package text

import "unicode/utf8"

// Chunk splits s into consecutive pieces of at most limit characters.
// Pieces are cut on rune boundaries, so every piece except possibly the last
// holds exactly limit runes and concatenating them reproduces s. An empty s
// yields no pieces; a non-positive limit yields s as a single piece.
func Chunk(s string, limit int) []string {
	if s == "" {
		return nil
	}
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	chunks := make([]string, 0, utf8.RuneCountInString(s)/limit+1)
	start, count := 0, 0
	for i := range s {
		if count == limit {
			chunks = append(chunks, s[start:i])
			start, count = i, 0
		}
		count++
	}
	return append(chunks, s[start:])
}

// Length returns the number of characters in s, which is how message and
// history limits are measured.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// Truncate shortens s to at most maxLen characters, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}
