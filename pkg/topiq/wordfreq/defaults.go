package wordfreq

// DefaultStopwords is the built-in English function-word list used when
// no stoplist file is configured.
var DefaultStopwords = []string{
	"a", "an", "the", "and", "or", "but", "if", "then", "because", "as",
	"in", "on", "at", "by", "for", "of", "to", "from", "with", "about",
	"over", "under", "between", "through", "during", "before", "after",
	"is", "am", "are", "was", "were", "be", "been", "being",
	"have", "has", "had", "do", "does", "did",
	"will", "would", "shall", "should", "may", "might", "must", "can", "could",
	"he", "she", "it", "they", "them", "we", "us", "you", "i", "me",
	"my", "your", "his", "her", "their", "our",
	"this", "that", "these", "those",
	"not", "no", "yes", "just", "too", "also", "very",
}

// DefaultGroups returns the built-in keyword groups for disclosure text.
func DefaultGroups() *Groups {
	g := NewGroups()
	g.Add("Financial Performance", []string{
		"revenue", "profit", "loss", "earnings", "income", "sales", "growth",
	})
	g.Add("Management/Leadership", []string{
		"board", "executive", "director", "ceo", "management", "leadership",
	})
	g.Add("Risk/Compliance", []string{
		"risk", "liability", "regulation", "uncertainty", "lawsuit", "exposure",
	})
	g.Add("Market/Operations", []string{
		"market", "product", "operations", "strategy", "customer", "investment",
	})
	return g
}
