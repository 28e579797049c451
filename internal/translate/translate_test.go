package translate

import (
	"context"
	"encoding/json"
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

func TestChunkTextKeepsShortTextWhole(t *testing.T) {
	chunks := ChunkText("one paragraph", 100)
	if len(chunks) != 1 || chunks[0] != "one paragraph" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestChunkTextPacksParagraphs(t *testing.T) {
	text := "aaaa\n\nbbbb\n\ncccc"

	chunks := ChunkText(text, 10)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %v", chunks)
	}
	// First two paragraphs fit together (4+2+4 = 10).
	if chunks[0] != "aaaa\n\nbbbb" {
		t.Errorf("chunk 0 = %q", chunks[0])
	}
	if chunks[1] != "cccc" {
		t.Errorf("chunk 1 = %q", chunks[1])
	}
}

func TestChunkTextHardSplitsOversizedParagraph(t *testing.T) {
	text := strings.Repeat("x", 25)

	chunks := ChunkText(text, 10)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 10 {
			t.Errorf("chunk %d exceeds max: %d chars", i, len(c))
		}
	}
	if strings.Join(chunks, "") != text {
		t.Error("hard split lost characters")
	}
}

func TestChunkTextDropsBlankParagraphs(t *testing.T) {
	chunks := ChunkText("a\n\n\n\n   \n\nb", 100)
	if len(chunks) != 1 || chunks[0] != "a\n\nb" {
		t.Errorf("chunks = %v", chunks)
	}
}

func TestDeepLTranslate(t *testing.T) {
	var gotAuth, gotBody string
	d := &DeepL{
		APIKey: "test-key",
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			gotAuth = req.Header.Get("Authorization")
			raw, _ := io.ReadAll(req.Body)
			gotBody = string(raw)
			return &http.Response{
				StatusCode: 200,
				Body: io.NopCloser(strings.NewReader(
					`{"translations":[{"text":"net income rose"}]}`)),
			}
		}),
	}

	out, err := d.Translate(context.Background(), "der Nettogewinn stieg")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "net income rose" {
		t.Errorf("out = %q", out)
	}
	if gotAuth != "DeepL-Auth-Key test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if !strings.Contains(gotBody, "target_lang=EN-US") {
		t.Errorf("body missing default target_lang: %q", gotBody)
	}
}

func TestDeepLRetriesOn429(t *testing.T) {
	calls := 0
	d := &DeepL{
		APIKey: "test-key",
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			calls++
			if calls == 1 {
				return &http.Response{
					StatusCode: 429,
					Body:       io.NopCloser(strings.NewReader("slow down")),
				}
			}
			return &http.Response{
				StatusCode: 200,
				Body: io.NopCloser(strings.NewReader(
					`{"translations":[{"text":"ok"}]}`)),
			}
		}),
	}

	out, err := d.Translate(context.Background(), "text")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "ok" || calls != 2 {
		t.Errorf("out = %q, calls = %d", out, calls)
	}
}

func TestDeepLMissingKey(t *testing.T) {
	d := &DeepL{}
	if _, err := d.Translate(context.Background(), "text"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestGoogleTranslate(t *testing.T) {
	var gotURL, gotAuth string
	var gotReq googleRequest
	g := &Google{
		ProjectID:   "proj-1",
		AccessToken: "tok",
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			gotURL = req.URL.String()
			gotAuth = req.Header.Get("Authorization")
			json.NewDecoder(req.Body).Decode(&gotReq)
			return &http.Response{
				StatusCode: 200,
				Body: io.NopCloser(strings.NewReader(
					`{"translations":[{"translatedText":"hello"}]}`)),
			}
		}),
	}

	out, err := g.Translate(context.Background(), "bonjour")
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "hello" {
		t.Errorf("out = %q", out)
	}
	if !strings.Contains(gotURL, "/projects/proj-1/locations/global:translateText") {
		t.Errorf("URL = %q", gotURL)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.TargetLanguageCode != "en" || gotReq.MimeType != "text/plain" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestGoogleNoRetryOn403(t *testing.T) {
	calls := 0
	g := &Google{
		ProjectID:   "proj-1",
		AccessToken: "tok",
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			calls++
			return &http.Response{
				StatusCode: 403,
				Body:       io.NopCloser(strings.NewReader("permission denied")),
			}
		}),
	}

	_, err := g.Translate(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 403)", calls)
	}
}

func TestGoogleMissingCredentials(t *testing.T) {
	g := &Google{ProjectID: "proj-1"}
	if _, err := g.Translate(context.Background(), "text"); err == nil {
		t.Fatal("expected error without access token")
	}
}

func TestTranslateJoinsChunks(t *testing.T) {
	calls := 0
	d := &DeepL{
		APIKey:   "test-key",
		MaxChars: 10,
		HTTPClient: fakeClient(func(req *http.Request) *http.Response {
			calls++
			return &http.Response{
				StatusCode: 200,
				Body: io.NopCloser(strings.NewReader(
					`{"translations":[{"text":"part"}]}`)),
			}
		}),
	}

	out, err := d.Translate(context.Background(), "aaaaaaaa\n\nbbbbbbbb")
	if err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if out != "part\n\npart" {
		t.Errorf("out = %q", out)
	}
}
