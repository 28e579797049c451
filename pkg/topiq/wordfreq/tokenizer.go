// Package wordfreq computes simple word-frequency statistics over raw
// disclosure text: top terms with percentages and a keyword-group
// distribution.
package wordfreq

import (
	"strings"
	"unicode"
)

// minTokenLen drops short function-ish words ("a", "of", "to") that
// survive the stoplist.
const minTokenLen = 3

// Tokenizer handles text tokenization and normalization
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	stops := make(map[string]struct{}, len(stopwords))
	for _, w := range stopwords {
		stops[strings.ToLower(w)] = struct{}{}
	}
	return &Tokenizer{stopwords: stops}
}

// Tokenize splits text into normalized tokens, removing stopwords,
// tokens shorter than three characters, and numeric-only tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		if word := t.processToken(current.String()); word != "" {
			tokens = append(tokens, word)
		}
		current.Reset()
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

func (t *Tokenizer) processToken(token string) string {
	word := cleanToken(token)
	if len(word) < minTokenLen {
		return ""
	}
	// Mixed tokens like "10-k" or "q3" carry meaning; pure numbers don't.
	if isNumericOnly(word) {
		return ""
	}
	if _, stop := t.stopwords[word]; stop {
		return ""
	}
	return word
}

// cleanToken strips leading/trailing hyphens and collapses runs of them
func cleanToken(token string) string {
	token = strings.Trim(token, "-")
	for strings.Contains(token, "--") {
		token = strings.ReplaceAll(token, "--", "-")
	}
	return token
}

func isNumericOnly(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && r != '-' {
			return false
		}
	}
	return true
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stopwords[strings.ToLower(word)] = struct{}{}
}
