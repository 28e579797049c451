package wordfreq

import "sort"

// Counter aggregates token frequencies for one or more documents.
type Counter struct {
	counts map[string]int64
	total  int64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int64)}
}

// Process consumes one document's tokens.
func (c *Counter) Process(tokens []string) {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		c.counts[tok]++
		c.total++
	}
}

// Total returns the number of counted tokens.
func (c *Counter) Total() int64 {
	return c.total
}

// Count returns the frequency of a single term.
func (c *Counter) Count(term string) int64 {
	return c.counts[term]
}

// Freq is one entry of a frequency ranking.
type Freq struct {
	Term    string
	Count   int64
	Percent float64 // of all counted tokens
}

// Top returns the n most frequent terms, descending by count. Ties order
// alphabetically so the ranking is deterministic.
func (c *Counter) Top(n int) []Freq {
	terms := make([]string, 0, len(c.counts))
	for term := range c.counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if c.counts[terms[i]] != c.counts[terms[j]] {
			return c.counts[terms[i]] > c.counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if n > 0 && len(terms) > n {
		terms = terms[:n]
	}

	out := make([]Freq, len(terms))
	for i, term := range terms {
		out[i] = Freq{
			Term:    term,
			Count:   c.counts[term],
			Percent: c.percent(c.counts[term]),
		}
	}
	return out
}

func (c *Counter) percent(count int64) float64 {
	if c.total == 0 {
		return 0
	}
	return float64(count) / float64(c.total) * 100
}
