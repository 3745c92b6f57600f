package analysis

import (
	"sort"
	"strings"
	"unicode"
)

// WordCount is one word cloud entry
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Tokenize splits text into lower-cased words of at least two characters.
// Letters, digits and inner apostrophes belong to a word.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if len([]rune(f)) < 2 {
			continue
		}
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// WordFrequencies returns the max most frequent non-stopword words of text,
// most frequent first and ties in alphabetical order. max <= 0 keeps all.
func WordFrequencies(text string, stopwords *Stopwords, max int) []WordCount {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if stopwords.Contains(tok) {
			continue
		}
		counts[tok]++
	}

	words := make([]WordCount, 0, len(counts))
	for w, n := range counts {
		words = append(words, WordCount{Word: w, Count: n})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if max > 0 && len(words) > max {
		words = words[:max]
	}
	return words
}
