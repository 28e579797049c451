// Package topics parses topic-model dump files produced by upstream
// BERTopic-style tooling. Two textual layouts are recognized; see parser.go.
package topics

import "sort"

// Term is one weighted keyword inside a topic.
type Term struct {
	Text   string
	Weight float64
}

// Topics maps a topic id to its term list, ordered descending by weight.
// Topic ids are unique per document; a retained topic always has at least
// one term.
type Topics map[int][]Term

// sortTerms orders terms descending by weight. The sort is stable so that
// equal weights keep their source order.
func sortTerms(terms []Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return terms[i].Weight > terms[j].Weight
	})
}

// IDs returns the topic ids in ascending order.
func (t Topics) IDs() []int {
	ids := make([]int, 0, len(t))
	for id := range t {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
