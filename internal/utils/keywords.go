package utils

import (
	"sort"
	"strings"
)

// GenerateKeywords derives the search-prefix index for a piece of display
// text: the text is lowercased, split on whitespace, and every prefix of
// every word (length 1 up to the full word) becomes a keyword. "Milk 2L"
// yields m, mi, mil, milk, 2, 2l.
func GenerateKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		runes := []rune(word)
		for i := 1; i <= len(runes); i++ {
			prefix := string(runes[:i])
			if !seen[prefix] {
				seen[prefix] = true
				keywords = append(keywords, prefix)
			}
		}
	}

	return keywords
}

// MergeKeywords unions the prefix sets of several source fields into one
// deduplicated, sorted index.
func MergeKeywords(texts ...string) []string {
	seen := make(map[string]bool)
	var keywords []string

	for _, text := range texts {
		for _, kw := range GenerateKeywords(text) {
			if !seen[kw] {
				seen[kw] = true
				keywords = append(keywords, kw)
			}
		}
	}

	sort.Strings(keywords)
	return keywords
}
