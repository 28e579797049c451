package edgar

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
)

type roundTrip func(*http.Request) *http.Response

func (f roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func fakeClient(fn roundTrip) *http.Client {
	return &http.Client{Transport: fn}
}

func TestFetchDocumentRequiresUserAgent(t *testing.T) {
	c := &Client{}
	if _, err := c.FetchDocument(context.Background(), "/Archives/test.htm"); err == nil {
		t.Fatal("expected error without User-Agent")
	}
}

func TestFetchDocumentSendsUserAgent(t *testing.T) {
	var gotUA string
	c := &Client{
		UserAgent: "topiq research contact@example.com",
		Delay:     1, // no real throttling in tests
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			gotUA = req.Header.Get("User-Agent")
			return &http.Response{
				StatusCode: 200,
				Header:     http.Header{"Content-Type": []string{"text/html"}},
				Body:       io.NopCloser(strings.NewReader("<html><body><p>Item 1. Business</p></body></html>")),
			}
		}),
	}

	text, err := c.FetchDocument(context.Background(), "/Archives/test.htm")
	if err != nil {
		t.Fatalf("FetchDocument failed: %v", err)
	}
	if gotUA != "topiq research contact@example.com" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if text != "Item 1. Business" {
		t.Errorf("text = %q", text)
	}
}

func TestFetchDocumentPlainText(t *testing.T) {
	c := &Client{
		UserAgent: "topiq research contact@example.com",
		Delay:     1,
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: 200,
				Header:     http.Header{"Content-Type": []string{"text/plain"}},
				Body:       io.NopCloser(strings.NewReader("raw filing text\n")),
			}
		}),
	}

	text, err := c.FetchDocument(context.Background(), "/Archives/test.txt")
	if err != nil {
		t.Fatal(err)
	}
	if text != "raw filing text" {
		t.Errorf("text = %q", text)
	}
}

func TestFetchDocumentHTTPError(t *testing.T) {
	c := &Client{
		UserAgent: "topiq research contact@example.com",
		Delay:     1,
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: 403,
				Body:       io.NopCloser(strings.NewReader("forbidden")),
			}
		}),
	}

	_, err := c.FetchDocument(context.Background(), "/Archives/test.htm")
	if err == nil || !strings.Contains(err.Error(), "HTTP 403") {
		t.Errorf("expected HTTP 403 error, got %v", err)
	}
}

func TestHTMLToTextDropsScriptAndStyle(t *testing.T) {
	raw := `<html><head><style>p { color: red }</style></head>
<body><script>alert(1)</script><p>Net income rose.</p><noscript>enable js</noscript></body></html>`

	text := HTMLToText(raw)
	if strings.Contains(text, "alert") || strings.Contains(text, "color") || strings.Contains(text, "enable js") {
		t.Errorf("script/style content leaked: %q", text)
	}
	if !strings.Contains(text, "Net income rose.") {
		t.Errorf("body text missing: %q", text)
	}
}

func TestHTMLToTextCollapsesBlankLines(t *testing.T) {
	raw := "<div>first</div><div></div><div></div><div></div><div>second</div>"

	text := HTMLToText(raw)
	if strings.Contains(text, "\n\n\n") {
		t.Errorf("blank lines not collapsed: %q", text)
	}
	if !strings.Contains(text, "first") || !strings.Contains(text, "second") {
		t.Errorf("content missing: %q", text)
	}
}

func TestHTMLToTextParagraphStructure(t *testing.T) {
	raw := "<p>Item 1. Business</p><p>Item 1A. Risk Factors</p>"

	text := HTMLToText(raw)
	lines := strings.Split(text, "\n")
	var nonEmpty []string
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			nonEmpty = append(nonEmpty, l)
		}
	}
	if len(nonEmpty) != 2 {
		t.Errorf("expected 2 paragraphs, got %v", nonEmpty)
	}
}
