package text

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  []string
	}{
		{name: "empty input", input: "", limit: 5, want: nil},
		{name: "shorter than limit", input: "abc", limit: 5, want: []string{"abc"}},
		{name: "exactly limit", input: "abcde", limit: 5, want: []string{"abcde"}},
		{name: "one over limit", input: "abcdef", limit: 5, want: []string{"abcde", "f"}},
		{name: "exact multiple", input: "abcdef", limit: 2, want: []string{"ab", "cd", "ef"}},
		{name: "limit of one", input: "abc", limit: 1, want: []string{"a", "b", "c"}},
		{name: "non-positive limit", input: "abc", limit: 0, want: []string{"abc"}},
		{name: "multi-byte runes", input: "héllo wörld", limit: 4, want: []string{"héll", "o wö", "rld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Chunk(tt.input, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Chunk(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Chunk(%q, %d)[%d] = %q, want %q", tt.input, tt.limit, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestChunkCoversInput(t *testing.T) {
	t.Parallel()

	inputs := []string{
		strings.Repeat("x", 4999),
		strings.Repeat("ab", 2000),
		strings.Repeat("日本語", 700),
		"short",
	}
	limits := []int{1, 7, 2000, 4096}

	for _, input := range inputs {
		for _, limit := range limits {
			chunks := Chunk(input, limit)
			if joined := strings.Join(chunks, ""); joined != input {
				t.Fatalf("Chunk(len=%d, %d) does not reproduce input", len(input), limit)
			}
			for i, c := range chunks {
				n := utf8.RuneCountInString(c)
				if i < len(chunks)-1 && n != limit {
					t.Errorf("Chunk(len=%d, %d)[%d] has %d runes, want %d", len(input), limit, i, n, limit)
				}
				if n > limit {
					t.Errorf("Chunk(len=%d, %d)[%d] has %d runes, exceeds limit", len(input), limit, i, n)
				}
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input  string
		maxLen int
		want   string
	}{
		{"hello", 10, "hello"},
		{"hello world", 8, "hello..."},
		{"hello", 3, "..."},
		{"héllo wörld", 6, "hél..."},
	}

	for _, tt := range tests {
		if got := Truncate(tt.input, tt.maxLen); got != tt.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.want)
		}
	}
}
