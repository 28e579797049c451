// Package gemini is a minimal REST client for the generateContent
// endpoint, used to categorize and summarize disclosure documents.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cognicore/topiq/pkg/topiq"
	"github.com/cognicore/topiq/pkg/topiq/internalerr"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"

	// maxRetries bounds the retry loop for transient failures (transport
	// errors, 429, 5xx). Backoff doubles per attempt starting at one second.
	maxRetries = 3
)

// Client calls the Gemini generateContent endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	HTTPClient *http.Client
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64                `json:"temperature"`
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// classificationSchema constrains the model to the exact Classification
// shape via responseSchema.
var classificationSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"category":   map[string]interface{}{"type": "string"},
		"confidence": map[string]interface{}{"type": "number"},
		"rationale":  map[string]interface{}{"type": "string"},
	},
	"required": []string{"category", "confidence", "rationale"},
}

// Categorize assigns one concise category to a rendered topic summary.
// Client implements topiq.Classifier.
func (c *Client) Categorize(ctx context.Context, topicSummary string) (topiq.Classification, error) {
	prompt := fmt.Sprintf(
		"You are categorizing documents using their BERTopic topic keyword/weight outputs.\n\n"+
			"Return ONE concise category name.\n\nTopic info:\n%s", topicSummary)

	text, err := c.generate(ctx, prompt, classificationSchema)
	if err != nil {
		return topiq.Classification{}, err
	}

	var out topiq.Classification
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return topiq.Classification{}, fmt.Errorf("gemini: decode classification: %w", err)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return topiq.Classification{}, fmt.Errorf("gemini: confidence %v out of range: %w",
			out.Confidence, internalerr.ErrInvalidInput)
	}
	return out, nil
}

// SummarizeDisclosure produces a short free-text summary of a filing.
func (c *Client) SummarizeDisclosure(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini: empty document: %w", internalerr.ErrInvalidInput)
	}
	prompt := "Summarize the key business events in this financial disclosure in at most three sentences.\n\n" + text
	return c.generate(ctx, prompt, nil)
}

func (c *Client) generate(ctx context.Context, prompt string, schema map[string]interface{}) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("gemini: API key required")
	}

	cfg := generationConfig{Temperature: 0}
	if schema != nil {
		cfg.ResponseMimeType = "application/json"
		cfg.ResponseSchema = schema
	}
	reqBody, err := json.Marshal(generateRequest{
		Contents:         []requestContent{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: cfg,
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL(), c.model(), c.APIKey)

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(1<<uint(attempt-1)) * time.Second):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		text, retryable, err := c.doRequest(ctx, url, reqBody)
		if err == nil {
			return text, nil
		}
		if !retryable {
			return "", err
		}
		lastErr = err
	}
	return "", fmt.Errorf("gemini: max retries exceeded: %w", lastErr)
}

// doRequest performs one attempt. The bool reports whether the failure is
// transient and worth retrying.
func (c *Client) doRequest(ctx context.Context, url string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", true, fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("gemini: read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("gemini: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("gemini: http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload generateResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", false, fmt.Errorf("gemini: decode response: %w", err)
	}
	if payload.Error != nil {
		return "", false, fmt.Errorf("gemini: api error %d: %s", payload.Error.Code, payload.Error.Message)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("gemini: empty response")
	}

	var sb strings.Builder
	for _, p := range payload.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), false, nil
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}

func (c *Client) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModel
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
