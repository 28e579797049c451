package report

import (
	"sort"
	"strings"

	"github.com/cognicore/topiq/pkg/topiq/topics"
)

// Row is one (topic, proportion) entry of a document's distribution.
// Proportion is the maximum term weight within the topic — a stand-in
// score, NOT a document-topic probability; the dumps only carry per-term
// weights, and downstream consumers expect the non-normalized value.
type Row struct {
	TopicID    int
	Name       string
	Proportion float64
}

// topicNameTerms is how many leading terms make up a topic's display name.
const topicNameTerms = 3

// Distribution derives one row per topic, named from its top three terms,
// sorted by proportion descending (ascending topic id on ties).
func Distribution(t topics.Topics) []Row {
	rows := make([]Row, 0, len(t))
	for _, id := range t.IDs() {
		terms := t[id]
		if len(terms) == 0 {
			continue
		}
		rows = append(rows, Row{
			TopicID:    id,
			Name:       topicName(terms),
			Proportion: maxWeight(terms),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Proportion > rows[j].Proportion
	})
	return rows
}

func topicName(terms []topics.Term) string {
	n := len(terms)
	if n > topicNameTerms {
		n = topicNameTerms
	}
	names := make([]string, n)
	for i := 0; i < n; i++ {
		names[i] = terms[i].Text
	}
	return strings.Join(names, ", ")
}

// maxWeight scans the whole list rather than trusting terms[0]; the
// parser sorts descending, but the distribution must hold even for
// hand-built topic maps.
func maxWeight(terms []topics.Term) float64 {
	max := terms[0].Weight
	for _, term := range terms[1:] {
		if term.Weight > max {
			max = term.Weight
		}
	}
	return max
}
