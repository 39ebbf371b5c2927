package editor

import (
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Columns are grapheme cluster indices. A line of length n has valid cursor
// columns 0..n, where n is the append position. Byte offsets never leave
// this file.

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset converts a grapheme column to a byte offset into s.
// Columns past the end map to len(s).
func byteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}

	n := 0
	state := -1
	rest := s
	for len(rest) > 0 {
		_, rest, _, state = uniseg.StepString(rest, state)
		n++
		if n == col {
			return len(s) - len(rest)
		}
	}
	return len(s)
}

// SplitAt splits s at grapheme column col. Columns past the end split at len(s).
func SplitAt(s string, col int) (left, right string) {
	i := byteOffset(s, col)
	return s[:i], s[i:]
}

// clusters returns the grapheme clusters of s in order.
func clusters(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// isSpace classifies a cluster by its base rune.
func isSpace(cluster string) bool {
	r, _ := utf8.DecodeRuneInString(cluster)
	return unicode.IsSpace(r)
}

// DisplayWidth returns the number of terminal cells s occupies.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}
