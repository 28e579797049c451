// Package report turns parsed topics into the pipeline's two output
// shapes: the compact text summary handed to the classifier and the
// long-format distribution rows.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cognicore/topiq/pkg/topiq/topics"
)

// Default truncation for summaries sent to the classifier.
const (
	DefaultTopTopics = 8
	DefaultTopTerms  = 8
)

// EmptySummary is emitted for documents where no topics parsed.
const EmptySummary = "No topics parsed."

// BuildSummary renders the strongest topN topics, topM terms each, as
// "Topic <id>: term:0.159, ..." lines. Topics rank by their leading term
// weight; ties break on ascending topic id. The summary is lossy on
// purpose — it exists to give the classifier a compact view, not to
// round-trip the dump.
func BuildSummary(t topics.Topics, topN, topM int) string {
	if len(t) == 0 {
		return EmptySummary
	}
	if topN <= 0 {
		topN = DefaultTopTopics
	}
	if topM <= 0 {
		topM = DefaultTopTerms
	}

	ranked := rankByTopWeight(t)
	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	lines := make([]string, 0, len(ranked))
	for _, id := range ranked {
		terms := t[id]
		if len(terms) > topM {
			terms = terms[:topM]
		}
		parts := make([]string, len(terms))
		for i, term := range terms {
			parts[i] = fmt.Sprintf("%s:%.3f", term.Text, term.Weight)
		}
		lines = append(lines, fmt.Sprintf("Topic %d: %s", id, strings.Join(parts, ", ")))
	}
	return strings.Join(lines, "\n")
}

// rankByTopWeight orders topic ids by leading term weight descending.
// Iterating over ids sorted ascending before the stable sort makes the
// tie order deterministic: equal weights fall back to ascending id.
func rankByTopWeight(t topics.Topics) []int {
	ids := t.IDs()
	sort.SliceStable(ids, func(i, j int) bool {
		return topWeight(t[ids[i]]) > topWeight(t[ids[j]])
	})
	return ids
}

func topWeight(terms []topics.Term) float64 {
	if len(terms) == 0 {
		return 0
	}
	return terms[0].Weight
}
