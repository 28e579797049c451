package topics

import (
	"strconv"
	"strings"
)

// A parseStrategy attempts to read one dump layout out of raw text.
// Strategies are tried in order; the first one that yields any topic wins.
type parseStrategy func(text string) Topics

// strategies, in priority order: keyword blocks first, tuple lines as
// fallback. Matches the upstream tooling, which emits keyword blocks in
// newer dumps and tuple lines in older ones.
var strategies = []parseStrategy{parseKeywordBlocks, parseTupleLines}

// Parse extracts topics from a dump in either recognized layout. Unmatched
// text is silently ignored; duplicate topic ids overwrite earlier ones;
// topics without a single well-formed term are dropped. When neither
// strategy matches anything the result is empty — callers treat that as a
// document with zero topics, not as an error.
func Parse(text string) Topics {
	for _, parse := range strategies {
		if topics := parse(text); len(topics) > 0 {
			return topics
		}
	}
	return Topics{}
}

// parseKeywordBlocks reads the block layout:
//
//	🔹 Topic 0:
//	   participant (0.084)
//	   agreement (0.061)
//
// A header line is "Topic <id>:" (case-insensitive, optional 🔹 marker,
// nothing after the colon). Every following line of the form
// "term (weight)" belongs to the most recent header. Lines that are
// neither headers nor well-formed term lines are skipped.
func parseKeywordBlocks(text string) Topics {
	topics := Topics{}
	current := -1
	var terms []Term

	flush := func() {
		if current >= 0 && len(terms) > 0 {
			sortTerms(terms)
			topics[current] = terms
		}
		terms = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if id, ok := parseTopicHeader(line); ok {
			flush()
			current = id
			continue
		}
		if current < 0 {
			continue
		}
		if term, ok := parseTermLine(line); ok {
			terms = append(terms, term)
		}
	}
	flush()
	return topics
}

// parseTopicHeader matches "Topic <id>:" with an optional leading 🔹.
func parseTopicHeader(line string) (int, bool) {
	s := strings.TrimSpace(line)
	s = strings.TrimSpace(strings.TrimPrefix(s, "🔹"))
	if len(s) < len("topic 0:") {
		return 0, false
	}
	if !strings.EqualFold(s[:len("topic")], "topic") {
		return 0, false
	}
	rest := s[len("topic"):]
	if rest[0] != ' ' && rest[0] != '\t' {
		return 0, false
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ":") {
		return 0, false
	}
	return parseTopicID(strings.TrimSpace(strings.TrimSuffix(rest, ":")))
}

// parseTermLine matches "term (weight)" where term is a single
// letter/digit/underscore word and weight is an unsigned decimal.
func parseTermLine(line string) (Term, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasSuffix(s, ")") {
		return Term{}, false
	}
	open := strings.LastIndex(s, "(")
	if open <= 0 {
		return Term{}, false
	}
	word := strings.TrimSpace(s[:open])
	if !isWord(word) {
		return Term{}, false
	}
	weight, ok := parseWeight(s[open+1 : len(s)-1])
	if !ok {
		return Term{}, false
	}
	return Term{Text: word, Weight: weight}, true
}

// parseTupleLines reads the older tuple layout, one topic per line:
//
//	(3, '0.159*"agreement" + 0.113*"target" + 0.090*"share"')
//
// The body holds weight*"term" tokens; separators between tokens are not
// validated, only the tokens themselves. Malformed tokens are skipped.
func parseTupleLines(text string) Topics {
	topics := Topics{}
	for _, line := range strings.Split(text, "\n") {
		id, body, ok := splitTupleLine(line)
		if !ok {
			continue
		}
		terms := parseTupleTerms(body)
		if len(terms) == 0 {
			continue
		}
		sortTerms(terms)
		topics[id] = terms
	}
	return topics
}

// splitTupleLine matches a full line of the form ( <id> , '<body>' ).
func splitTupleLine(line string) (int, string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return 0, "", false
	}
	s = strings.TrimSpace(s[1 : len(s)-1])
	comma := strings.Index(s, ",")
	if comma < 0 {
		return 0, "", false
	}
	id, ok := parseTopicID(strings.TrimSpace(s[:comma]))
	if !ok {
		return 0, "", false
	}
	body := strings.TrimSpace(s[comma+1:])
	if len(body) < 2 || body[0] != '\'' || body[len(body)-1] != '\'' {
		return 0, "", false
	}
	return id, body[1 : len(body)-1], true
}

// parseTupleTerms scans the tuple body for weight*"term" tokens.
func parseTupleTerms(body string) []Term {
	var terms []Term
	rest := body
	for {
		open := strings.Index(rest, `"`)
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open+1:], `"`)
		if closing < 0 {
			break
		}
		text := rest[open+1 : open+1+closing]
		if weight, ok := weightBefore(rest[:open]); ok && text != "" {
			terms = append(terms, Term{Text: text, Weight: weight})
		}
		rest = rest[open+closing+2:]
	}
	return terms
}

// weightBefore extracts the numeric token immediately preceding a '*' at
// the end of prefix, as in `0.113*`.
func weightBefore(prefix string) (float64, bool) {
	s := strings.TrimRight(prefix, " \t")
	if !strings.HasSuffix(s, "*") {
		return 0, false
	}
	s = strings.TrimRight(strings.TrimSuffix(s, "*"), " \t")
	start := len(s)
	for start > 0 && isWeightChar(s[start-1]) {
		start--
	}
	return parseWeight(s[start:])
}

// parseWeight accepts unsigned decimals only: digits with at most one dot.
// Signs, exponents, and empty tokens are malformed.
func parseWeight(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	dots := 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.':
			dots++
			if dots > 1 {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

func parseTopicID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return id, true
}

func isWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		ok := c >= 'a' && c <= 'z' ||
			c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' ||
			c == '_'
		if !ok {
			return false
		}
	}
	return true
}

func isWeightChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.'
}
