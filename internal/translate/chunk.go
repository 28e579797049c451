// Package translate converts foreign-language filings to English via
// DeepL or Google Cloud Translation, chunking long documents to stay
// under API payload limits.
package translate

import "strings"

// DefaultMaxChars keeps chunks comfortably under both APIs' payload
// limits.
const DefaultMaxChars = 6000

// ChunkText splits text into chunks of at most maxChars characters.
// Paragraph boundaries (blank lines) are preserved where possible;
// oversized paragraphs are hard-split.
func ChunkText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	var buf []string
	bufLen := 0

	flush := func() {
		if len(buf) > 0 {
			chunks = append(chunks, strings.Join(buf, "\n\n"))
			buf = nil
			bufLen = 0
		}
	}

	for _, p := range paragraphs {
		if len(p) > maxChars {
			flush()
			for start := 0; start < len(p); start += maxChars {
				end := start + maxChars
				if end > len(p) {
					end = len(p)
				}
				chunks = append(chunks, p[start:end])
			}
			continue
		}

		extra := 0
		if len(buf) > 0 {
			extra = 2 // joining "\n\n"
		}
		if bufLen+len(p)+extra <= maxChars {
			buf = append(buf, p)
			bufLen += len(p) + extra
		} else {
			flush()
			buf = append(buf, p)
			bufLen = len(p)
		}
	}
	flush()

	return chunks
}
