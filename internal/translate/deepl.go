package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	deeplFreeURL = "https://api-free.deepl.com/v2/translate"
	deeplPaidURL = "https://api.deepl.com/v2/translate"

	// maxRetries bounds retries for transient failures (429, 5xx,
	// transport errors), mirroring the Gemini client.
	maxRetries = 3
)

// Translator converts a document to the target language.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// DeepL calls the DeepL v2 translate endpoint chunk by chunk.
type DeepL struct {
	BaseURL    string // overrides the free/paid endpoint selection
	APIKey     string
	TargetLang string // default "EN-US"
	SourceLang string // empty means auto-detect
	UsePaid    bool   // paid endpoint is api.deepl.com, free is api-free

	// MaxChars is the chunk size; Delay is the pause between chunks.
	MaxChars int
	Delay    time.Duration

	HTTPClient *http.Client
}

type deeplResponse struct {
	Translations []struct {
		Text string `json:"text"`
	} `json:"translations"`
}

// Translate chunks the text by paragraph and translates sequentially,
// joining results with blank lines.
func (d *DeepL) Translate(ctx context.Context, text string) (string, error) {
	if d.APIKey == "" {
		return "", fmt.Errorf("deepl: API key required")
	}

	chunks := ChunkText(text, d.MaxChars)
	out := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		if i > 0 && d.Delay > 0 {
			select {
			case <-time.After(d.Delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		translated, err := d.translateChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("deepl: chunk %d/%d: %w", i+1, len(chunks), err)
		}
		out = append(out, translated)
	}
	return strings.Join(out, "\n\n"), nil
}

func (d *DeepL) translateChunk(ctx context.Context, chunk string) (string, error) {
	form := url.Values{
		"text":                {chunk},
		"target_lang":         {d.targetLang()},
		"preserve_formatting": {"1"},
	}
	if d.SourceLang != "" {
		form.Set("source_lang", d.SourceLang)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := d.doRequest(ctx, form)
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

func (d *DeepL) doRequest(ctx context.Context, form url.Values) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint(),
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.APIKey)

	resp, err := d.httpClient().Do(req)
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

	var payload deeplResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(payload.Translations) == 0 {
		return "", false, fmt.Errorf("empty response")
	}
	return payload.Translations[0].Text, false, nil
}

func (d *DeepL) endpoint() string {
	if d.BaseURL != "" {
		return d.BaseURL
	}
	if d.UsePaid {
		return deeplPaidURL
	}
	return deeplFreeURL
}

func (d *DeepL) targetLang() string {
	if d.TargetLang != "" {
		return d.TargetLang
	}
	return "EN-US"
}

func (d *DeepL) httpClient() *http.Client {
	if d.HTTPClient != nil {
		return d.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}
