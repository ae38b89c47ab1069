package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/rxradar/backend/internal/infrastructure/observability"
	"github.com/rxradar/backend/pkg/config"
	apperrors "github.com/rxradar/backend/pkg/errors"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client implements the alert composer against the Gemini generateContent
// API. It holds an ordered credential list and rotates through it on every
// call: each key gets one attempt with a fresh request, the first success
// wins, and only after every key has failed does the call fail. Failures are
// not inspected, a network error and a non-2xx status both mean "advance to
// the next key".
type Client struct {
	apiKeys    []string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Gemini client.
func NewClient(cfg *config.GeminiConfig) (*Client, error) {
	if cfg == nil || len(cfg.APIKeys) == 0 {
		return nil, errors.New("at least one gemini api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &Client{
		apiKeys: cfg.APIKeys,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
}

type generateCandidate struct {
	Content generateContent `json:"content"`
}

type generateResponse struct {
	Candidates []generateCandidate `json:"candidates"`
}

// Generate sends the prompt and returns the first candidate's text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)

	var lastErr error
	for i, apiKey := range c.apiKeys {
		text, err := c.attempt(ctx, url, body, apiKey)
		if err == nil {
			return text, nil
		}
		lastErr = err
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Int("key_index", i).
			Str("model", c.model).
			Msg("gemini attempt failed, rotating credential")

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", apperrors.NewUnavailableError("all gemini credentials exhausted", lastErr)
}

func (c *Client) attempt(ctx context.Context, url string, body []byte, apiKey string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordGeminiMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := fmt.Errorf("gemini request failed with status %d", resp.StatusCode)
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		err := errors.New("gemini response missing candidate text")
		recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	recordGeminiMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return envelope.Candidates[0].Content.Parts[0].Text, nil
}

type geminiMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

// Generate is called from concurrent pair fan-out, so the lazy init must be
// guarded. The failure path leaves geminiMetricsInit false and metrics stay
// disabled for the process lifetime.
var geminiMetricsOnce sync.Once
var geminiMetricsInit = false
var geminiMetricsState geminiMetrics

func ensureGeminiMetrics() {
	geminiMetricsOnce.Do(initGeminiMetrics)
}

func initGeminiMetrics() {
	meter := otel.Meter("github.com/rxradar/backend/gemini")

	requestCount, err := meter.Int64Counter(
		"ai.gemini.request.count",
		metric.WithDescription("Number of Gemini requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.gemini.request.duration",
		metric.WithDescription("Gemini request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.gemini.request.errors",
		metric.WithDescription("Number of Gemini request errors"),
	)
	if err != nil {
		return
	}

	geminiMetricsState = geminiMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	geminiMetricsInit = true
}

func recordGeminiMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	ensureGeminiMetrics()
	if !geminiMetricsInit {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	geminiMetricsState.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	geminiMetricsState.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		geminiMetricsState.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
