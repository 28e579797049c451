package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const googleBaseURL = "https://translation.googleapis.com/v3"

// Google calls the Cloud Translation v3 translateText endpoint. The
// access token is an OAuth2 bearer token (Application Default
// Credentials in production); obtaining it is the caller's problem.
type Google struct {
	BaseURL     string
	ProjectID   string
	Location    string // default "global"
	AccessToken string
	TargetLang  string // default "en"
	SourceLang  string // empty means auto-detect

	MaxChars int
	Delay    time.Duration

	HTTPClient *http.Client
}

type googleRequest struct {
	Contents           []string `json:"contents"`
	MimeType           string   `json:"mimeType"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
	SourceLanguageCode string   `json:"sourceLanguageCode,omitempty"`
}

type googleResponse struct {
	Translations []struct {
		TranslatedText string `json:"translatedText"`
	} `json:"translations"`
}

// Translate chunks the text by paragraph and translates sequentially,
// joining results with blank lines.
func (g *Google) Translate(ctx context.Context, text string) (string, error) {
	if g.ProjectID == "" {
		return "", fmt.Errorf("google translate: project ID required")
	}
	if g.AccessToken == "" {
		return "", fmt.Errorf("google translate: access token required")
	}

	chunks := ChunkText(text, g.MaxChars)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i > 0 && g.Delay > 0 {
			select {
			case <-time.After(g.Delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		translated, err := g.translateChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("google translate: chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, translated)
	}
	return strings.Join(out, "\n\n"), nil
}

func (g *Google) translateChunk(ctx context.Context, chunk string) (string, error) {
	body, err := json.Marshal(googleRequest{
		Contents:           []string{chunk},
		MimeType:           "text/plain",
		TargetLanguageCode: g.targetLang(),
		SourceLanguageCode: g.SourceLang,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/projects/%s/locations/%s:translateText",
		g.baseURL(), g.ProjectID, g.location())

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := g.doRequest(ctx, url, body)
		if err == nil {
			return text, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (g *Google) doRequest(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.AccessToken)

	resp, err := g.httpClient().Do(req)
	if err != nil {
		return "", true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload googleResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Translations) == 0 {
		return "", false, fmt.Errorf("empty response")
	}
	return payload.Translations[0].TranslatedText, false, nil
}

func (g *Google) baseURL() string {
	if g.BaseURL != "" {
		return g.BaseURL
	}
	return googleBaseURL
}

func (g *Google) location() string {
	if g.Location != "" {
		return g.Location
	}
	return "global"
}

func (g *Google) targetLang() string {
	if g.TargetLang != "" {
		return g.TargetLang
	}
	return "en"
}

func (g *Google) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
