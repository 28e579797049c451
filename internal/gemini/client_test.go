package gemini

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/cognicore/topiq/pkg/topiq/internalerr"
)

type roundTrip func(*http.Request) *http.Response

func (rt roundTrip) RoundTrip(req *http.Request) (*http.Response, error) {
	return rt(req), nil
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func TestCategorizeSuccess(t *testing.T) {
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				body, _ := io.ReadAll(req.Body)
				if !strings.Contains(string(body), "responseSchema") {
					t.Fatal("expected responseSchema in request")
				}
				if !strings.Contains(string(body), "agreement:0.159") {
					t.Fatal("expected topic summary in prompt")
				}
				return jsonResponse(200, `{
					"candidates":[{"content":{"parts":[{"text":
						"{\"category\":\"M&A\",\"confidence\":0.87,\"rationale\":\"merger terms\"}"
					}]}}]
				}`)
			}),
		},
	}

	out, err := client.Categorize(context.Background(), "Topic 3: agreement:0.159, target:0.113")
	if err != nil {
		t.Fatalf("Categorize: %v", err)
	}
	if out.Category != "M&A" || out.Confidence != 0.87 || out.Rationale != "merger terms" {
		t.Errorf("unexpected classification: %+v", out)
	}
}

func TestCategorizeConfidenceOutOfRange(t *testing.T) {
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return jsonResponse(200, `{
					"candidates":[{"content":{"parts":[{"text":
						"{\"category\":\"X\",\"confidence\":1.4,\"rationale\":\"r\"}"
					}]}}]
				}`)
			}),
		},
	}
	_, err := client.Categorize(context.Background(), "summary")
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCategorizeRetriesOn429(t *testing.T) {
	calls := 0
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				calls++
				if calls == 1 {
					return jsonResponse(429, `{"error":{"code":429,"message":"slow down"}}`)
				}
				return jsonResponse(200, `{
					"candidates":[{"content":{"parts":[{"text":
						"{\"category\":\"Risk\",\"confidence\":0.5,\"rationale\":\"r\"}"
					}]}}]
				}`)
			}),
		},
	}
	out, err := client.Categorize(context.Background(), "summary")
	if err != nil {
		t.Fatalf("Categorize after retry: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 attempts, got %d", calls)
	}
	if out.Category != "Risk" {
		t.Errorf("unexpected category %q", out.Category)
	}
}

func TestCategorizeNoRetryOn400(t *testing.T) {
	calls := 0
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				calls++
				return jsonResponse(400, `{"error":{"code":400,"message":"bad schema"}}`)
			}),
		},
	}
	if _, err := client.Categorize(context.Background(), "summary"); err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("client errors must not retry; got %d attempts", calls)
	}
}

func TestCategorizeAPIError(t *testing.T) {
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				return jsonResponse(200, `{"error":{"code":403,"message":"forbidden"}}`)
			}),
		},
	}
	if _, err := client.Categorize(context.Background(), "summary"); err == nil ||
		!strings.Contains(err.Error(), "forbidden") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestMissingAPIKey(t *testing.T) {
	client := &Client{}
	if _, err := client.Categorize(context.Background(), "summary"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestSummarizeDisclosureEmpty(t *testing.T) {
	client := &Client{APIKey: "key"}
	if _, err := client.SummarizeDisclosure(context.Background(), "   "); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSummarizeDisclosure(t *testing.T) {
	client := &Client{
		APIKey: "key",
		HTTPClient: &http.Client{
			Transport: roundTrip(func(req *http.Request) *http.Response {
				body, _ := io.ReadAll(req.Body)
				if strings.Contains(string(body), "responseSchema") {
					t.Fatal("summaries must not force a schema")
				}
				return jsonResponse(200, `{"candidates":[{"content":{"parts":[{"text":"A merger closed."}]}}]}`)
			}),
		},
	}
	out, err := client.SummarizeDisclosure(context.Background(), "Acme completed its merger with Beta Corp.")
	if err != nil {
		t.Fatalf("SummarizeDisclosure: %v", err)
	}
	if out != "A merger closed." {
		t.Errorf("unexpected summary %q", out)
	}
}
