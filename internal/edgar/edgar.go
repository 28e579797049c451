// Package edgar fetches filing documents from SEC EDGAR and converts
// the HTML bodies to plain text.
package edgar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultBaseURL = "https://www.sec.gov"

// Client downloads filings from EDGAR. SEC requires a descriptive
// User-Agent with contact details on every request.
type Client struct {
	BaseURL   string
	UserAgent string

	// Delay is the pause between consecutive requests. EDGAR rate-limits
	// aggressively; the default is 200ms.
	Delay time.Duration

	HTTPClient *http.Client

	lastRequest time.Time
}

// FetchDocument downloads a single filing document and returns its plain
// text. The path is relative to BaseURL (e.g. "/Archives/edgar/data/...").
func (c *Client) FetchDocument(ctx context.Context, path string) (string, error) {
	if c.UserAgent == "" {
		return "", fmt.Errorf("edgar: User-Agent with contact details required")
	}

	if err := c.throttle(ctx); err != nil {
		return "", err
	}

	url := c.baseURL() + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", fmt.Errorf("edgar: fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("edgar: fetch %s: HTTP %d", path, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("edgar: read %s: %w", path, err)
	}

	body := string(raw)
	if strings.Contains(resp.Header.Get("Content-Type"), "html") || looksLikeHTML(body) {
		return HTMLToText(body), nil
	}
	return strings.TrimSpace(body), nil
}

// throttle enforces the polite delay between requests.
func (c *Client) throttle(ctx context.Context) error {
	wait := c.delay() - time.Since(c.lastRequest)
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastRequest = time.Now()
	return nil
}

func looksLikeHTML(s string) bool {
	head := strings.ToLower(s)
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<html") || strings.Contains(head, "<!doctype html")
}

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText strips markup from a filing body. Script, style and noscript
// subtrees are dropped entirely; block elements become newlines so
// paragraph structure survives for downstream chunking.
func HTMLToText(raw string) string {
	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// Fallback to string if parsing fails
		return strings.TrimSpace(raw)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			case "p", "div", "br", "tr", "li", "h1", "h2", "h3", "h4", "table":
				buf.WriteString("\n")
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	text := buf.String()
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	text = strings.Join(lines, "\n")
	text = blankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return 200 * time.Millisecond
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
