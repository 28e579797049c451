package wordfreq

import (
	"sort"
	"strings"
)

// Groups maps named keyword sets ("Financial Performance", "Risk/Compliance")
// to the disclosure vocabulary that signals them. Keyword matching is
// exact-token and case-insensitive.
type Groups struct {
	keywords map[string][]string // group name → keywords (lowercase)
}

// NewGroups creates an empty group set.
func NewGroups() *Groups {
	return &Groups{keywords: make(map[string][]string)}
}

// Add registers a group with its keywords.
func (g *Groups) Add(name string, keywords []string) {
	normalized := make([]string, len(keywords))
	for i, kw := range keywords {
		normalized[i] = strings.ToLower(kw)
	}
	g.keywords[name] = normalized
}

// Names returns the group names in sorted order.
func (g *Groups) Names() []string {
	names := make([]string, 0, len(g.keywords))
	for name := range g.keywords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GroupShare is one group's slice of the token mass.
type GroupShare struct {
	Name    string
	Count   int64
	Percent float64 // of all counted tokens
}

// Distribution sums each group's keyword counts against a counter. The
// result is an estimate, not a partition: a token can belong to several
// groups and most tokens belong to none.
func (g *Groups) Distribution(c *Counter) []GroupShare {
	shares := make([]GroupShare, 0, len(g.keywords))
	for _, name := range g.Names() {
		var count int64
		for _, kw := range g.keywords[name] {
			count += c.Count(kw)
		}
		shares = append(shares, GroupShare{
			Name:    name,
			Count:   count,
			Percent: c.percent(count),
		})
	}
	return shares
}
