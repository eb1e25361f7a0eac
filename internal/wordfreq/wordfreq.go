// Package wordfreq builds case-insensitive word histograms from comment text.
package wordfreq

import (
	"sort"
	"strings"
	"unicode"

	"github.com/evcraddock/comment-analyzer/internal/scanner"
)

// Histogram maps a lowercase word to its number of occurrences.
type Histogram map[string]int

// WordCount is one histogram entry.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Count tokenizes every comment text of records into a Histogram.
func Count(records map[int]*scanner.Record) Histogram {
	h := make(Histogram)
	for _, r := range records {
		for _, text := range r.Texts {
			h.Add(text)
		}
	}
	return h
}

// Add splits text on whitespace and counts each token after removing every
// non-letter and lowercasing it. Tokens left empty are ignored.
func (h Histogram) Add(text string) {
	for _, field := range strings.Fields(text) {
		word := strings.Map(func(r rune) rune {
			if !unicode.IsLetter(r) {
				return -1
			}
			return unicode.ToLower(r)
		}, field)
		if word != "" {
			h[word]++
		}
	}
}

// Top returns the n most frequent words, by count descending then word
// ascending. n <= 0 returns every word.
func (h Histogram) Top(n int) []WordCount {
	words := make([]WordCount, 0, len(h))
	for w, c := range h {
		words = append(words, WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if n > 0 && n < len(words) {
		words = words[:n]
	}
	return words
}
