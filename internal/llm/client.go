package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"
)

type EmbeddingClient interface {
	Embed(ctx context.Context, req EmbeddingRequest) (*EmbeddingResponse, error)
}

type Client struct {
	baseURL      string
	apiKey       string
	model        string
	dimensions   int
	httpClient   *http.Client
	timeout      time.Duration
	maxRetries   int
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		baseURL:      URLOpenAI,
		httpClient:   http.DefaultClient,
		timeout:      30 * time.Second,
		maxRetries:   3,
		retryWaitMin: 500 * time.Millisecond,
		retryWaitMax: 30 * time.Second,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) buildURL(path string) string {
	base := strings.TrimRight(c.baseURL, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func (c *Client) newRequest(ctx context.Context, method, path string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.buildURL(path), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	return req, nil
}

func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	// Copy so the shared client's timeout is never mutated.
	client := *c.httpClient
	if c.timeout > 0 {
		client.Timeout = c.timeout
	}
	return client.Do(req)
}

func (c *Client) doRequestWithRetry(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.calculateRetryAfter(attempt - 1)):
			}
		}

		req, err := c.newRequest(ctx, method, path, body)
		if err != nil {
			return nil, err
		}

		resp, err := c.doRequest(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			continue
		}

		if !retryableStatus(resp.StatusCode) {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = &APIError{
			StatusCode: resp.StatusCode,
			Message:    "max retries exceeded",
		}
	}

	return nil, fmt.Errorf("%w: %w", ErrMaxRetries, lastErr)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}

func (c *Client) calculateRetryAfter(attempt int) time.Duration {
	waitTime := c.retryWaitMin * time.Duration(1<<attempt)
	if waitTime > c.retryWaitMax {
		waitTime = c.retryWaitMax
	}

	// +/-10% jitter
	jitter := float64(waitTime) * 0.1 * (rand.Float64()*2 - 1)
	return waitTime + time.Duration(jitter)
}
