package analysis

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// defaultStopwords are common English words left out of the word cloud
var defaultStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "am", "an", "and",
	"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
	"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing",
	"down", "during", "each", "few", "for", "from", "further", "had", "has", "have",
	"having", "he", "her", "here", "hers", "herself", "him", "himself", "his", "how",
	"i", "if", "in", "into", "is", "it", "its", "itself", "just", "me", "more", "most",
	"my", "myself", "no", "nor", "not", "now", "of", "off", "on", "once", "only", "or",
	"other", "ought", "our", "ours", "ourselves", "out", "over", "own", "same", "she",
	"should", "so", "some", "such", "than", "that", "the", "their", "theirs", "them",
	"themselves", "then", "there", "these", "they", "this", "those", "through", "to",
	"too", "under", "until", "up", "very", "was", "we", "were", "what", "when", "where",
	"which", "while", "who", "whom", "why", "will", "with", "would", "you", "your",
	"yours", "yourself", "yourselves", "amp", "rt", "https", "http", "co",
}

// Stopwords holds the words to leave out of word frequencies
type Stopwords struct {
	words map[string]bool
	mu    sync.RWMutex
}

// NewStopwords creates an empty stopword set
func NewStopwords() *Stopwords {
	return &Stopwords{
		words: make(map[string]bool),
	}
}

// DefaultStopwords creates a stopword set holding the built-in English list
func DefaultStopwords() *Stopwords {
	sw := NewStopwords()
	for _, w := range defaultStopwords {
		sw.words[w] = true
	}
	return sw
}

// LoadFromFile adds the words of a file, one per line.
// Empty lines and lines starting with # are skipped.
func (sw *Stopwords) LoadFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open stopwords file %s: %w", filename, err)
	}
	defer file.Close()

	sw.mu.Lock()
	defer sw.mu.Unlock()

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		sw.words[strings.ToLower(line)] = true
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading stopwords file %s at line %d: %w", filename, lineNum, err)
	}
	return nil
}

// Contains reports whether word is a stopword, ignoring case
func (sw *Stopwords) Contains(word string) bool {
	if sw == nil {
		return false
	}
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return sw.words[strings.ToLower(word)]
}

// Add adds a single word
func (sw *Stopwords) Add(word string) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	sw.words[strings.ToLower(word)] = true
}

// Len returns the number of stopwords
func (sw *Stopwords) Len() int {
	sw.mu.RLock()
	defer sw.mu.RUnlock()
	return len(sw.words)
}
