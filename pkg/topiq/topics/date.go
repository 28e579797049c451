package topics

import "regexp"

// Filing dates show up in dumps either as ISO (2024-03-15) or US style
// (03/15/2024). Both are normalized to YYYY-MM-DD.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(20\d{2})[-/](0[1-9]|1[0-2])[-/](0[1-9]|[12]\d|3[01])\b`),
	regexp.MustCompile(`\b(0[1-9]|1[0-2])[/-](0[1-9]|[12]\d|3[01])[/-](20\d{2})\b`),
}

// ExtractDate returns the first date found in text, normalized to
// YYYY-MM-DD, or "" when no date is present.
func ExtractDate(text string) string {
	for _, pat := range datePatterns {
		m := pat.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m[1]) == 4 {
			return m[1] + "-" + m[2] + "-" + m[3]
		}
		return m[3] + "-" + m[1] + "-" + m[2]
	}
	return ""
}
