// Package resend is a minimal client for the Resend transactional email API.
// It covers the single send operation this service needs: one POST per
// submission, one attempt, no retry and no queueing.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gtmovel/gtmovel-api/internal/models"
	"github.com/gtmovel/gtmovel-api/pkg/httpclient"
	"github.com/gtmovel/gtmovel-api/pkg/logger"
	"github.com/gtmovel/gtmovel-api/pkg/metrics"
	"go.uber.org/zap"
)

// DefaultEndpoint is the Resend send endpoint. Overridable in config for tests.
const DefaultEndpoint = "https://api.resend.com/emails"

// Email is the outbound payload of the send endpoint.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Client talks to the Resend API with a bearer token.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient httpclient.Client
}

// NewClient creates a Resend client. An empty endpoint falls back to the
// public API URL.
func NewClient(apiKey, endpoint string, httpClient httpclient.Client) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Send issues exactly one send request and maps the provider response into a
// DispatchResult. A non-2xx status is not an error at this level: the caller
// decides how to surface it, and the provider's error body stays in the logs.
func (c *Client) Send(ctx context.Context, email *Email) (*models.DispatchResult, error) {
	start := time.Now()

	payload, err := json.Marshal(email)
	if err != nil {
		return nil, fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build provider request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderRequestTotal.WithLabelValues("send", "error").Inc()
		return nil, fmt.Errorf("provider request failed: %w", err)
	}
	defer resp.Body.Close()

	// Bodies are small; cap the read anyway.
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		metrics.ProviderRequestTotal.WithLabelValues("send", "error").Inc()
		return nil, fmt.Errorf("failed to read provider response: %w", err)
	}

	accepted := resp.StatusCode >= 200 && resp.StatusCode < 300

	status := "error"
	if accepted {
		status = "success"
	}
	duration := metrics.MeasureDuration(start)
	metrics.ProviderRequestTotal.WithLabelValues("send", status).Inc()
	metrics.ProviderRequestDuration.WithLabelValues("send", status).Observe(duration)
	logger.LogAPICall("resend", "send", status, duration,
		zap.Int("status_code", resp.StatusCode))

	result := &models.DispatchResult{
		Accepted:   accepted,
		StatusCode: resp.StatusCode,
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if accepted {
			// Accepted but unparseable: keep the acceptance, lose the id.
			logger.Warn("Unparseable provider response body",
				zap.Int("status_code", resp.StatusCode))
			return result, nil
		}
	}

	if accepted {
		result.MessageID = parsed.ID
		return result, nil
	}

	// Raw provider detail is for diagnostics only, never echoed to callers.
	logger.Error("Provider rejected email",
		zap.Int("status_code", resp.StatusCode),
		zap.String("provider_message", parsed.Message))
	return result, nil
}
