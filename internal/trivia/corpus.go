package trivia

import (
	"iter"
	"strings"
	"unicode"
)

// StripPunctuation removes punctuation and symbol runes from text.
// Removal is rune-by-rune with no locale sensitivity.
func StripPunctuation(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsStopWord reports whether word is a stop word. Comparison is case-insensitive.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// FilterStopWords strips punctuation from text, splits it on whitespace, and
// yields the words that are not stop words. The returned sequence is lazy and
// restartable.
func FilterStopWords(text string) iter.Seq[string] {
	words := strings.Fields(StripPunctuation(text))
	return func(yield func(string) bool) {
		for _, word := range words {
			if IsStopWord(word) {
				continue
			}
			if !yield(word) {
				return
			}
		}
	}
}

// wordSet collects the significant words of text into a lowercase membership set.
func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for word := range FilterStopWords(text) {
		set[strings.ToLower(word)] = struct{}{}
	}
	return set
}
